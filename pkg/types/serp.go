// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"net/url"
	"strings"
	"time"
)

// SERPResult is a single organic search result in unified form. Every
// collector backend (Serper, DuckDuckGo) produces these so downstream
// stages never depend on a specific API's shape.
type SERPResult struct {
	// Position is the 1-based rank on the results page. Position 0 marks
	// a featured snippet (Serper only).
	Position int `json:"position" yaml:"position"`

	// Title is the page title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// URL is the landing page URL.
	URL string `json:"url" yaml:"url"`

	// Snippet is the result description text.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`

	// Domain is the www-stripped host of URL.
	Domain string `json:"domain" yaml:"domain"`

	// Source identifies which backend found this result (e.g. "serper",
	// "duckduckgo"). Merged results carry a comma-joined list.
	Source string `json:"source" yaml:"source"`

	// Positions records each source's rank for a result found by more
	// than one backend. Position then holds the best of these. Nil for
	// single-source results.
	Positions map[string]int `json:"positions,omitempty" yaml:"positions,omitempty"`

	// HasSitelinks reports whether the result carried expanded sitelinks.
	HasSitelinks bool `json:"has_sitelinks,omitempty" yaml:"has_sitelinks,omitempty"`
}

// Domain extracts the www-stripped host from a raw URL. Returns "" when
// the URL does not parse.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// KnowledgeGraph is the entity panel Google shows beside branded or
// well-known queries.
type KnowledgeGraph struct {
	Title       string            `json:"title" yaml:"title"`
	Type        string            `json:"type,omitempty" yaml:"type,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Website     string            `json:"website,omitempty" yaml:"website,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// PAAQuestion is a People Also Ask entry on the results page.
type PAAQuestion struct {
	Question string `json:"question" yaml:"question"`
	Snippet  string `json:"snippet,omitempty" yaml:"snippet,omitempty"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
}

// SERPSnapshot is the complete picture of one results page for a keyword:
// organic results plus the SERP features that drive competition scoring.
type SERPSnapshot struct {
	// Keyword is the query that produced this snapshot.
	Keyword string `json:"keyword" yaml:"keyword"`

	// FetchedAt is when the snapshot was collected (UTC).
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`

	// TimeFilter records the freshness window used, if any
	// ("hour", "day", "week", "month", "year").
	TimeFilter string `json:"time_filter,omitempty" yaml:"time_filter,omitempty"`

	// Organic lists the organic results in rank order.
	Organic []SERPResult `json:"organic" yaml:"organic"`

	// KnowledgeGraph is the entity panel, nil when absent.
	KnowledgeGraph *KnowledgeGraph `json:"knowledge_graph,omitempty" yaml:"knowledge_graph,omitempty"`

	// PeopleAlsoAsk lists the PAA questions on the page.
	PeopleAlsoAsk []PAAQuestion `json:"people_also_ask,omitempty" yaml:"people_also_ask,omitempty"`

	// RelatedSearches lists the related query suggestions.
	RelatedSearches []string `json:"related_searches,omitempty" yaml:"related_searches,omitempty"`
}

// TopDomains returns the unique www-stripped domains of the first ten
// organic results, in rank order.
func (s *SERPSnapshot) TopDomains() []string {
	var domains []string
	seen := make(map[string]bool)
	for i, r := range s.Organic {
		if i >= 10 {
			break
		}
		d := r.Domain
		if d == "" {
			d = Domain(r.URL)
		}
		if d != "" && !seen[d] {
			seen[d] = true
			domains = append(domains, d)
		}
	}
	return domains
}

// HasFeaturedSnippet reports whether a position-0 result exists.
func (s *SERPSnapshot) HasFeaturedSnippet() bool {
	for _, r := range s.Organic {
		if r.Position == 0 {
			return true
		}
	}
	return false
}

// HasSitelinks reports whether any organic result carries sitelinks.
func (s *SERPSnapshot) HasSitelinks() bool {
	for _, r := range s.Organic {
		if r.HasSitelinks {
			return true
		}
	}
	return false
}

// FindPosition returns the position of the first organic result whose
// domain contains targetDomain (www-stripped, case-insensitive), or 0
// when the domain does not rank.
func (s *SERPSnapshot) FindPosition(targetDomain string) int {
	target := strings.TrimPrefix(strings.ToLower(targetDomain), "www.")
	if target == "" {
		return 0
	}
	for _, r := range s.Organic {
		d := r.Domain
		if d == "" {
			d = Domain(r.URL)
		}
		if strings.Contains(d, target) {
			return r.Position
		}
	}
	return 0
}
