// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/bionicop/seo-flow/internal/httputil"
	"github.com/bionicop/seo-flow/pkg/types"
)

// ddgAPIBase is the DuckDuckGo HTML endpoint. Declared as a var so tests
// can substitute an httptest server.
var ddgAPIBase = "https://html.duckduckgo.com/html/"

// DuckDuckGoBackend scrapes the keyless DuckDuckGo HTML results page. It
// serves as a fallback when no Serper API key is configured: organic
// results only, no knowledge graph or People Also Ask.
type DuckDuckGoBackend struct {
	Client  *http.Client
	Limiter *httputil.Limiter
}

// Name returns the backend identifier.
func (b *DuckDuckGoBackend) Name() string { return "duckduckgo" }

var (
	ddgResultRe  = regexp.MustCompile(`(?s)<a[^>]+class="[^"]*result__a[^"]*"[^>]+href="([^"]+)"[^>]*>(.*?)</a>`)
	ddgSnippetRe = regexp.MustCompile(`(?s)<a[^>]+class="[^"]*result__snippet[^"]*"[^>]*>(.*?)</a>`)
	ddgTagRe     = regexp.MustCompile(`<[^>]+>`)
)

// Collect fetches organic results from the DuckDuckGo HTML endpoint.
func (b *DuckDuckGoBackend) Collect(ctx context.Context, query Query, cfg types.CollectConfig) (*types.SERPSnapshot, error) {
	params := url.Values{}
	params.Set("q", query.Keyword)
	if query.Country != "" && query.Language != "" {
		// DuckDuckGo regions are country-language pairs, e.g. us-en.
		params.Set("kl", strings.ToLower(query.Country)+"-"+strings.ToLower(query.Language))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ddgAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	if b.Limiter != nil {
		if err := b.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("DuckDuckGo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DuckDuckGo returned HTTP %d", resp.StatusCode)
	}

	page, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading DuckDuckGo response: %w", err)
	}

	snap := &types.SERPSnapshot{
		Keyword:    query.Keyword,
		FetchedAt:  time.Now().UTC(),
		TimeFilter: query.TimeFilter,
	}

	max := query.MaxResults
	if max <= 0 {
		max = 10
	}

	links := ddgResultRe.FindAllStringSubmatch(string(page), -1)
	snippets := ddgSnippetRe.FindAllStringSubmatch(string(page), -1)

	for i, m := range links {
		if len(snap.Organic) >= max {
			break
		}
		link := resolveDDGRedirect(html.UnescapeString(m[1]))
		if link == "" {
			continue
		}
		snippet := ""
		if i < len(snippets) {
			snippet = stripTags(snippets[i][1])
		}
		snap.Organic = append(snap.Organic, types.SERPResult{
			Position: len(snap.Organic) + 1,
			Title:    stripTags(m[2]),
			URL:      link,
			Snippet:  snippet,
			Domain:   types.Domain(link),
			Source:   "duckduckgo",
		})
	}

	if len(snap.Organic) == 0 {
		return nil, fmt.Errorf("DuckDuckGo returned no parseable results for %q", query.Keyword)
	}
	return snap, nil
}

// resolveDDGRedirect unwraps DuckDuckGo's //duckduckgo.com/l/?uddg=...
// redirect links into the destination URL. Direct links pass through.
func resolveDDGRedirect(link string) string {
	if strings.HasPrefix(link, "//") {
		link = "https:" + link
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	if strings.Contains(u.Path, "/l/") {
		if target := u.Query().Get("uddg"); target != "" {
			if dest, err := url.QueryUnescape(target); err == nil {
				return dest
			}
		}
	}
	if u.Scheme == "" {
		return ""
	}
	return link
}

// stripTags removes HTML tags and unescapes entities from a fragment.
func stripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(ddgTagRe.ReplaceAllString(s, "")))
}
