// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// GSCMetric is one performance row from the Search Console API: a
// (query, page) pair with its click and impression counts over the
// reporting window.
type GSCMetric struct {
	// Query is the search query users typed.
	Query string `json:"query" yaml:"query"`

	// Page is the landing page URL for the row.
	Page string `json:"page,omitempty" yaml:"page,omitempty"`

	// Clicks is the number of clicks over the window.
	Clicks int `json:"clicks" yaml:"clicks"`

	// Impressions is the number of impressions over the window.
	Impressions int `json:"impressions" yaml:"impressions"`

	// CTR is the click-through rate as a fraction in [0,1].
	CTR float64 `json:"ctr" yaml:"ctr"`

	// Position is the average position for the row.
	Position float64 `json:"position" yaml:"position"`
}

// IsFirstPage reports whether the average position is within the first
// results page.
func (m GSCMetric) IsFirstPage() bool {
	return m.Position > 0 && m.Position <= 10
}

// GSCReport aggregates the metric rows for one site over one window.
type GSCReport struct {
	// SiteURL is the Search Console property the rows belong to.
	SiteURL string `json:"site_url" yaml:"site_url"`

	// StartDate and EndDate bound the reporting window (inclusive).
	StartDate string `json:"start_date" yaml:"start_date"`
	EndDate   string `json:"end_date" yaml:"end_date"`

	// Metrics lists the per-row data.
	Metrics []GSCMetric `json:"metrics" yaml:"metrics"`

	// TotalClicks and TotalImpressions sum over all rows.
	TotalClicks      int `json:"total_clicks" yaml:"total_clicks"`
	TotalImpressions int `json:"total_impressions" yaml:"total_impressions"`

	// AverageCTR is total clicks over total impressions, in [0,1].
	AverageCTR float64 `json:"average_ctr" yaml:"average_ctr"`

	// AveragePosition is the impression-weighted mean position.
	AveragePosition float64 `json:"average_position" yaml:"average_position"`

	// FetchedAt is when the report was collected (UTC).
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}

// Aggregate recomputes the report totals from its metric rows.
func (r *GSCReport) Aggregate() {
	r.TotalClicks = 0
	r.TotalImpressions = 0
	var weightedPos float64
	for _, m := range r.Metrics {
		r.TotalClicks += m.Clicks
		r.TotalImpressions += m.Impressions
		weightedPos += m.Position * float64(m.Impressions)
	}
	if r.TotalImpressions > 0 {
		r.AverageCTR = float64(r.TotalClicks) / float64(r.TotalImpressions)
		r.AveragePosition = weightedPos / float64(r.TotalImpressions)
	} else {
		r.AverageCTR = 0
		r.AveragePosition = 0
	}
}
