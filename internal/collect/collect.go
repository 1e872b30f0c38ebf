// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect queries SERP data sources and returns unified,
// deduplicated results. Each backend (Serper.dev, DuckDuckGo) implements
// the Backend interface; the Search Console client lives here too since
// it shares the HTTP plumbing.
package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bionicop/seo-flow/internal/validate"
	"github.com/bionicop/seo-flow/pkg/types"
)

// Backend collects SERP data from a single source.
type Backend interface {
	Name() string
	Collect(ctx context.Context, query Query, cfg types.CollectConfig) (*types.SERPSnapshot, error)
}

// TimeFilters maps freshness window names to the Google tbs parameter
// values Serper accepts.
var TimeFilters = map[string]string{
	"hour":  "qdr:h",
	"day":   "qdr:d",
	"week":  "qdr:w",
	"month": "qdr:m",
	"year":  "qdr:y",
}

// Query holds the collection parameters.
type Query struct {
	Keyword    string
	Country    string
	Language   string
	Location   string
	TimeFilter string
	MaxResults int
}

// Validate checks the query fields and fills localization defaults from cfg.
func (q *Query) Validate(cfg types.CollectConfig) error {
	keyword, err := validate.Keyword(q.Keyword)
	if err != nil {
		return err
	}
	q.Keyword = keyword
	if q.Country == "" {
		q.Country = cfg.Country
	}
	if q.Language == "" {
		q.Language = cfg.Language
	}
	if q.MaxResults <= 0 {
		q.MaxResults = cfg.MaxResults
	}
	if q.TimeFilter != "" {
		if _, ok := TimeFilters[q.TimeFilter]; !ok {
			return fmt.Errorf("unknown time filter %q: use hour, day, week, month, or year", q.TimeFilter)
		}
	}
	return nil
}

// Output holds the merged snapshot and collection statistics.
type Output struct {
	Snapshot      *types.SERPSnapshot
	DupsRemoved   int
	BackendErrors []string
}

// Collect fans out the query to all backends concurrently, merges organic
// results by normalized URL, and carries SERP features (knowledge graph,
// People Also Ask, related searches) from whichever backend supplied them.
// A backend failure is a warning, not an error, as long as one backend
// succeeds.
func Collect(ctx context.Context, query Query, backends []Backend, cfg types.CollectConfig, w io.Writer) (Output, error) {
	if err := query.Validate(cfg); err != nil {
		return Output{}, err
	}
	if len(backends) == 0 {
		return Output{}, fmt.Errorf("no collector backends configured")
	}

	type backendResult struct {
		snapshot *types.SERPSnapshot
		err      error
		name     string
	}

	ch := make(chan backendResult, len(backends))
	var wg sync.WaitGroup

	for _, b := range backends {
		wg.Add(1)
		go func(b Backend) {
			defer wg.Done()
			snap, err := b.Collect(ctx, query, cfg)
			ch <- backendResult{snapshot: snap, err: err, name: b.Name()}
		}(b)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	merged := &types.SERPSnapshot{
		Keyword:    query.Keyword,
		FetchedAt:  time.Now().UTC(),
		TimeFilter: query.TimeFilter,
	}

	var all []types.SERPResult
	var backendErrors []string
	succeeded := 0
	for br := range ch {
		if br.err != nil {
			msg := fmt.Sprintf("%s: %v", br.name, br.err)
			backendErrors = append(backendErrors, msg)
			fmt.Fprintf(w, "warning: backend %s failed: %v\n", br.name, br.err)
			continue
		}
		succeeded++
		all = append(all, br.snapshot.Organic...)
		if merged.KnowledgeGraph == nil {
			merged.KnowledgeGraph = br.snapshot.KnowledgeGraph
		}
		if len(merged.PeopleAlsoAsk) == 0 {
			merged.PeopleAlsoAsk = br.snapshot.PeopleAlsoAsk
		}
		if len(merged.RelatedSearches) == 0 {
			merged.RelatedSearches = br.snapshot.RelatedSearches
		}
	}

	if succeeded == 0 {
		return Output{BackendErrors: backendErrors},
			fmt.Errorf("all backends failed: %s", strings.Join(backendErrors, "; "))
	}

	deduped, removed := deduplicate(all)
	sortByPosition(deduped)

	if query.MaxResults > 0 && len(deduped) > query.MaxResults {
		deduped = deduped[:query.MaxResults]
	}
	merged.Organic = deduped

	return Output{
		Snapshot:      merged,
		DupsRemoved:   removed,
		BackendErrors: backendErrors,
	}, nil
}

// deduplicate merges results that share a normalized URL, keeping the best
// (lowest) position and joining the source labels.
func deduplicate(results []types.SERPResult) ([]types.SERPResult, int) {
	seen := make(map[string]int) // normalized URL → index in deduped
	var deduped []types.SERPResult
	removed := 0

	for _, r := range results {
		key := normalizeURL(r.URL)
		if key == "" {
			continue
		}
		if idx, ok := seen[key]; ok {
			mergeInto(&deduped[idx], r)
			removed++
			continue
		}
		seen[key] = len(deduped)
		deduped = append(deduped, r)
	}
	return deduped, removed
}

// mergeInto fills empty fields of dst from src, keeps the better position,
// and records each source's own position.
func mergeInto(dst *types.SERPResult, src types.SERPResult) {
	if dst.Positions == nil {
		dst.Positions = map[string]int{dst.Source: dst.Position}
	}
	dst.Positions[src.Source] = src.Position
	if betterPosition(src.Position, dst.Position) {
		dst.Position = src.Position
	}
	if dst.Title == "" && src.Title != "" {
		dst.Title = src.Title
	}
	if dst.Snippet == "" && src.Snippet != "" {
		dst.Snippet = src.Snippet
	}
	if src.HasSitelinks {
		dst.HasSitelinks = true
	}
	if dst.Source != src.Source && !strings.Contains(dst.Source, src.Source) {
		dst.Source = dst.Source + "," + src.Source
	}
}

// betterPosition reports whether a outranks b. Position 0 is a featured
// snippet and outranks everything.
func betterPosition(a, b int) bool {
	return a < b
}

func sortByPosition(results []types.SERPResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Position < results[j].Position
	})
}

// normalizeURL lowercases the URL and strips the scheme, www prefix, and
// trailing slash so the same page collected from two sources merges.
func normalizeURL(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	return strings.TrimSuffix(s, "/")
}

// FormatTable writes the merged results as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	snap := out.Snapshot
	if snap == nil || len(snap.Organic) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-55s  %-30s  %s\n", "Pos", "Title", "Domain", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range snap.Organic {
		title := r.Title
		if len(title) > 55 {
			title = title[:52] + "..."
		}
		domain := r.Domain
		if len(domain) > 30 {
			domain = domain[:27] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-55s  %-30s  %s\n", r.Position, title, domain, r.Source)
	}

	fmt.Fprintf(w, "\n%d results", len(snap.Organic))
	if out.DupsRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", out.DupsRemoved)
	}
	fmt.Fprintln(w)

	if snap.KnowledgeGraph != nil {
		fmt.Fprintf(w, "Knowledge graph: %s\n", snap.KnowledgeGraph.Title)
	}
	if n := len(snap.PeopleAlsoAsk); n > 0 {
		fmt.Fprintf(w, "People Also Ask: %d questions\n", n)
	}
	if n := len(snap.RelatedSearches); n > 0 {
		fmt.Fprintf(w, "Related searches: %d\n", n)
	}
}

// FormatJSON writes the merged snapshot as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Snapshot)
}
