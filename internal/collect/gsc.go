// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bionicop/seo-flow/internal/httputil"
	"github.com/bionicop/seo-flow/pkg/types"
)

// gscAPIBase is the Search Console API root. Declared as a var so tests
// can substitute an httptest server.
var gscAPIBase = "https://www.googleapis.com/webmasters/v3"

// gscFreshnessLag is how far behind today Search Console data is
// considered complete. The query window ends this many days ago.
const gscFreshnessLag = 3

// GSCClient fetches search analytics from the Google Search Console API
// using an OAuth access token.
type GSCClient struct {
	Client      *http.Client
	AccessToken string
}

type gscQueryRequest struct {
	StartDate  string       `json:"startDate"`
	EndDate    string       `json:"endDate"`
	Dimensions []string     `json:"dimensions"`
	RowLimit   int          `json:"rowLimit"`
	Filters    []gscFilters `json:"dimensionFilterGroups,omitempty"`
}

type gscFilters struct {
	Filters []gscFilter `json:"filters"`
}

type gscFilter struct {
	Dimension  string `json:"dimension"`
	Operator   string `json:"operator"`
	Expression string `json:"expression"`
}

type gscQueryResponse struct {
	Rows []gscRow `json:"rows"`
}

type gscRow struct {
	Keys        []string `json:"keys"`
	Clicks      float64  `json:"clicks"`
	Impressions float64  `json:"impressions"`
	CTR         float64  `json:"ctr"`
	Position    float64  `json:"position"`
}

// Fetch queries search analytics for the configured site, broken down by
// query and page over the trailing window. The window ends three days ago
// because fresher Search Console data is incomplete.
func (c *GSCClient) Fetch(ctx context.Context, cfg types.GSCConfig) (*types.GSCReport, error) {
	if cfg.SiteURL == "" {
		return nil, fmt.Errorf("Search Console site URL not configured")
	}
	if c.AccessToken == "" {
		return nil, fmt.Errorf("Search Console access token not configured")
	}

	windowDays := cfg.WindowDays
	if windowDays <= 0 {
		windowDays = 28
	}
	rowLimit := cfg.RowLimit
	if rowLimit <= 0 {
		rowLimit = 1000
	}

	end := time.Now().UTC().AddDate(0, 0, -gscFreshnessLag)
	start := end.AddDate(0, 0, -windowDays)

	body := gscQueryRequest{
		StartDate:  start.Format("2006-01-02"),
		EndDate:    end.Format("2006-01-02"),
		Dimensions: []string{"query", "page"},
		RowLimit:   rowLimit,
	}
	if cfg.Country != "" {
		body.Filters = []gscFilters{{Filters: []gscFilter{{
			Dimension:  "country",
			Operator:   "equals",
			Expression: cfg.Country,
		}}}}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/sites/%s/searchAnalytics/query", gscAPIBase, url.PathEscape(cfg.SiteURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Search Console request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("Search Console rejected the token: HTTP %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("Search Console returned HTTP %d", resp.StatusCode)
	}

	var qr gscQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return nil, fmt.Errorf("parsing Search Console response: %w", err)
	}

	report := &types.GSCReport{
		SiteURL:   cfg.SiteURL,
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
		FetchedAt: time.Now().UTC(),
	}
	for _, row := range qr.Rows {
		m := types.GSCMetric{
			Clicks:      int(row.Clicks),
			Impressions: int(row.Impressions),
			CTR:         row.CTR,
			Position:    row.Position,
		}
		if len(row.Keys) > 0 {
			m.Query = row.Keys[0]
		}
		if len(row.Keys) > 1 {
			m.Page = row.Keys[1]
		}
		report.Metrics = append(report.Metrics, m)
	}
	report.Aggregate()

	return report, nil
}
