// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bionicop/seo-flow/internal/httputil"
	"github.com/bionicop/seo-flow/pkg/types"
)

// serperAPIBase is the Serper.dev search endpoint. Declared as a var so
// tests can substitute an httptest server.
var serperAPIBase = "https://google.serper.dev/search"

// SerperBackend queries the Serper.dev API for Google SERP data: organic
// results plus knowledge graph, People Also Ask, and related searches.
type SerperBackend struct {
	Client  *http.Client
	APIKey  string
	Limiter *httputil.Limiter
}

// Name returns the backend identifier.
func (b *SerperBackend) Name() string { return "serper" }

// serperRequest is the POST body for the Serper.dev search endpoint.
type serperRequest struct {
	Q           string `json:"q"`
	Num         int    `json:"num"`
	GL          string `json:"gl"`
	HL          string `json:"hl"`
	Location    string `json:"location,omitempty"`
	TBS         string `json:"tbs,omitempty"`
	Autocorrect bool   `json:"autocorrect"`
}

// Serper API JSON structures.
type serperResponse struct {
	Organic         []serperOrganic       `json:"organic"`
	KnowledgeGraph  *serperKnowledgeGraph `json:"knowledgeGraph"`
	PeopleAlsoAsk   []serperPAA           `json:"peopleAlsoAsk"`
	RelatedSearches []serperRelated       `json:"relatedSearches"`
}

type serperOrganic struct {
	Position  int              `json:"position"`
	Title     string           `json:"title"`
	Link      string           `json:"link"`
	Snippet   string           `json:"snippet"`
	Sitelinks []serperSitelink `json:"sitelinks"`
}

type serperSitelink struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

type serperKnowledgeGraph struct {
	Title       string            `json:"title"`
	Type        string            `json:"type"`
	Description string            `json:"description"`
	Website     string            `json:"website"`
	Attributes  map[string]string `json:"attributes"`
}

type serperPAA struct {
	Question string `json:"question"`
	Snippet  string `json:"snippet"`
	Title    string `json:"title"`
	Link     string `json:"link"`
}

type serperRelated struct {
	Query string `json:"query"`
}

// Collect fetches a full SERP snapshot from Serper.dev.
func (b *SerperBackend) Collect(ctx context.Context, query Query, cfg types.CollectConfig) (*types.SERPSnapshot, error) {
	if b.APIKey == "" {
		return nil, fmt.Errorf("Serper API key not configured")
	}

	num := query.MaxResults
	if num <= 0 {
		num = 10
	}
	if num > 100 {
		num = 100
	}

	body := serperRequest{
		Q:           query.Keyword,
		Num:         num,
		GL:          strings.ToLower(query.Country),
		HL:          strings.ToLower(query.Language),
		Location:    query.Location,
		Autocorrect: true,
	}
	if query.TimeFilter != "" {
		body.TBS = TimeFilters[query.TimeFilter]
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperAPIBase, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-API-KEY", b.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)

	if b.Limiter != nil {
		if err := b.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Serper API request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("Serper API rejected the key: HTTP %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("Serper API returned HTTP %d", resp.StatusCode)
	}

	var sr serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Serper response: %w", err)
	}

	return serperSnapshot(query, &sr), nil
}

// serperSnapshot converts a raw API response into the unified snapshot.
func serperSnapshot(query Query, sr *serperResponse) *types.SERPSnapshot {
	snap := &types.SERPSnapshot{
		Keyword:    query.Keyword,
		FetchedAt:  time.Now().UTC(),
		TimeFilter: query.TimeFilter,
	}

	for i, o := range sr.Organic {
		pos := o.Position
		if pos == 0 && i > 0 {
			// Serper omits the position field on some rows; fall back to order.
			pos = i + 1
		}
		snap.Organic = append(snap.Organic, types.SERPResult{
			Position:     pos,
			Title:        o.Title,
			URL:          o.Link,
			Snippet:      o.Snippet,
			Domain:       types.Domain(o.Link),
			Source:       "serper",
			HasSitelinks: len(o.Sitelinks) > 0,
		})
	}

	if kg := sr.KnowledgeGraph; kg != nil {
		snap.KnowledgeGraph = &types.KnowledgeGraph{
			Title:       kg.Title,
			Type:        kg.Type,
			Description: kg.Description,
			Website:     kg.Website,
			Attributes:  kg.Attributes,
		}
	}

	for _, p := range sr.PeopleAlsoAsk {
		snap.PeopleAlsoAsk = append(snap.PeopleAlsoAsk, types.PAAQuestion{
			Question: p.Question,
			Snippet:  p.Snippet,
			Title:    p.Title,
			URL:      p.Link,
		})
	}

	for _, r := range sr.RelatedSearches {
		q := strings.TrimSpace(r.Query)
		if q != "" {
			snap.RelatedSearches = append(snap.RelatedSearches, q)
		}
	}

	return snap
}

// RelatedKeywords collects a snapshot and returns the related searches
// combined with People Also Ask questions, deduplicated in order. Used for
// keyword expansion.
func (b *SerperBackend) RelatedKeywords(ctx context.Context, query Query, cfg types.CollectConfig, includePAA bool) ([]string, error) {
	snap, err := b.Collect(ctx, query, cfg)
	if err != nil {
		return nil, err
	}

	var keywords []string
	seen := make(map[string]bool)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			keywords = append(keywords, s)
		}
	}

	for _, q := range snap.RelatedSearches {
		add(q)
	}
	if includePAA {
		for _, p := range snap.PeopleAlsoAsk {
			add(p.Question)
		}
	}
	return keywords, nil
}
