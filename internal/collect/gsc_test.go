// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bionicop/seo-flow/pkg/types"
)

const gscFixture = `{
  "rows": [
    {"keys": ["go tutorial", "https://example.com/go"], "clicks": 120, "impressions": 4000, "ctr": 0.03, "position": 5.2},
    {"keys": ["golang basics", "https://example.com/basics"], "clicks": 30, "impressions": 2000, "ctr": 0.015, "position": 8.7}
  ]
}`

func TestGSCFetch(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody gscQueryRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.Write([]byte(gscFixture))
	}))
	defer server.Close()

	oldBase := gscAPIBase
	gscAPIBase = server.URL
	defer func() { gscAPIBase = oldBase }()

	c := &GSCClient{Client: server.Client(), AccessToken: "tok"}
	cfg := types.GSCConfig{SiteURL: "sc-domain:example.com", WindowDays: 28, RowLimit: 500, Country: "usa"}

	report, err := c.Fetch(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if !strings.Contains(gotPath, "sc-domain:example.com") {
		t.Errorf("path = %q, want site URL embedded", gotPath)
	}

	if len(gotBody.Dimensions) != 2 || gotBody.Dimensions[0] != "query" || gotBody.Dimensions[1] != "page" {
		t.Errorf("dimensions = %v", gotBody.Dimensions)
	}
	if gotBody.RowLimit != 500 {
		t.Errorf("rowLimit = %d", gotBody.RowLimit)
	}
	if len(gotBody.Filters) != 1 || gotBody.Filters[0].Filters[0].Expression != "usa" {
		t.Errorf("country filter not applied: %+v", gotBody.Filters)
	}

	// Window ends three days ago and spans 28 days.
	end, err := time.Parse("2006-01-02", gotBody.EndDate)
	if err != nil {
		t.Fatalf("endDate %q: %v", gotBody.EndDate, err)
	}
	start, err := time.Parse("2006-01-02", gotBody.StartDate)
	if err != nil {
		t.Fatalf("startDate %q: %v", gotBody.StartDate, err)
	}
	if days := int(end.Sub(start).Hours() / 24); days != 28 {
		t.Errorf("window = %d days, want 28", days)
	}
	wantEnd := time.Now().UTC().AddDate(0, 0, -3).Format("2006-01-02")
	if gotBody.EndDate != wantEnd {
		t.Errorf("endDate = %s, want %s", gotBody.EndDate, wantEnd)
	}

	if len(report.Metrics) != 2 {
		t.Fatalf("got %d metrics, want 2", len(report.Metrics))
	}
	m := report.Metrics[0]
	if m.Query != "go tutorial" || m.Page != "https://example.com/go" || m.Clicks != 120 {
		t.Errorf("first metric = %+v", m)
	}
	if report.TotalClicks != 150 || report.TotalImpressions != 6000 {
		t.Errorf("totals = %v clicks, %v impressions", report.TotalClicks, report.TotalImpressions)
	}
}

func TestGSCFetchAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	oldBase := gscAPIBase
	gscAPIBase = server.URL
	defer func() { gscAPIBase = oldBase }()

	c := &GSCClient{Client: server.Client(), AccessToken: "expired"}
	_, err := c.Fetch(context.Background(), types.GSCConfig{SiteURL: "sc-domain:example.com"})
	if err == nil {
		t.Fatal("Fetch() error = nil, want auth error")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error = %v", err)
	}
}

func TestGSCFetchMissingConfig(t *testing.T) {
	c := &GSCClient{Client: http.DefaultClient, AccessToken: "tok"}
	if _, err := c.Fetch(context.Background(), types.GSCConfig{}); err == nil {
		t.Error("want error for missing site URL")
	}

	c = &GSCClient{Client: http.DefaultClient}
	if _, err := c.Fetch(context.Background(), types.GSCConfig{SiteURL: "sc-domain:example.com"}); err == nil {
		t.Error("want error for missing token")
	}
}
