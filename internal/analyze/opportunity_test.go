// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"strings"
	"testing"

	"github.com/bionicop/seo-flow/pkg/types"
)

func gscReport(metrics ...types.GSCMetric) *types.GSCReport {
	r := &types.GSCReport{SiteURL: "sc-domain:example.com", Metrics: metrics}
	r.Aggregate()
	return r
}

func TestDetectFromGSCLowCTR(t *testing.T) {
	report := gscReport(types.GSCMetric{
		Query: "go tutorial", Page: "https://example.com/go",
		Clicks: 10, Impressions: 2000, CTR: 0.005, Position: 3,
	})

	opps := DetectFromGSC(report)

	var lowCTR *types.Opportunity
	for i := range opps {
		if opps[i].Type == types.OppLowCTR {
			lowCTR = &opps[i]
		}
	}
	if lowCTR == nil {
		t.Fatalf("want low_ctr opportunity, got %+v", opps)
	}
	if lowCTR.Priority != types.PriorityHigh {
		t.Errorf("priority = %s", lowCTR.Priority)
	}
	// Expected CTR at position 3 is 11%: 2000 * (0.11 - 0.005) = 210.
	if lowCTR.EstimatedImpact != "+210 clicks/month" {
		t.Errorf("impact = %q", lowCTR.EstimatedImpact)
	}
}

func TestDetectFromGSCStrikingDistance(t *testing.T) {
	report := gscReport(types.GSCMetric{
		Query: "golang basics", Clicks: 40, Impressions: 1000, CTR: 0.04, Position: 6,
	})

	opps := DetectFromGSC(report)

	var sd *types.Opportunity
	for i := range opps {
		if opps[i].Type == types.OppPosition4To10 {
			sd = &opps[i]
		}
	}
	if sd == nil {
		t.Fatalf("want position_4_10 opportunity, got %+v", opps)
	}
	if sd.Priority != types.PriorityHigh {
		t.Errorf("priority = %s, want high", sd.Priority)
	}
	// 1000 * 0.11 - 40 = 70 clicks gained at top 3.
	if !strings.Contains(sd.EstimatedImpact, "+70 clicks") {
		t.Errorf("impact = %q", sd.EstimatedImpact)
	}
}

func TestDetectFromGSCHighImpressions(t *testing.T) {
	report := gscReport(types.GSCMetric{
		Query: "go compiler internals", Clicks: 5, Impressions: 5000, CTR: 0.001, Position: 14,
	})

	opps := DetectFromGSC(report)

	var hi *types.Opportunity
	for i := range opps {
		if opps[i].Type == types.OppHighImpressions {
			hi = &opps[i]
		}
	}
	if hi == nil {
		t.Fatalf("want high_impressions opportunity, got %+v", opps)
	}
	if hi.Priority != types.PriorityMedium {
		t.Errorf("priority = %s, want medium", hi.Priority)
	}
}

func TestDetectFromGSCQuietRows(t *testing.T) {
	report := gscReport(
		// Healthy row: good CTR, top 3.
		types.GSCMetric{Query: "healthy", Clicks: 300, Impressions: 2000, CTR: 0.15, Position: 2},
		// Too few impressions to flag.
		types.GSCMetric{Query: "tiny", Clicks: 0, Impressions: 20, CTR: 0, Position: 5.5},
	)

	opps := DetectFromGSC(report)
	for _, o := range opps {
		if o.Query == "healthy" {
			t.Errorf("healthy row flagged: %+v", o)
		}
		if o.Query == "tiny" && o.Type == types.OppLowCTR {
			t.Errorf("low-impression row flagged for CTR: %+v", o)
		}
	}
}

func TestCTRForPosition(t *testing.T) {
	tests := []struct {
		pos  float64
		want float64
	}{
		{1, 0.28},
		{3.4, 0.11},
		{10, 0.02},
		{25, 0.01},
	}
	for _, tt := range tests {
		if got := ctrForPosition(tt.pos); got != tt.want {
			t.Errorf("ctrForPosition(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestPrioritize(t *testing.T) {
	opps := []types.Opportunity{
		{Query: "low", Priority: types.PriorityLow, CurrentImpressions: 100, CurrentPosition: 15, Confidence: 0.5},
		{Query: "high", Priority: types.PriorityHigh, CurrentImpressions: 5000, CurrentPosition: 5, Confidence: 0.8},
		{Query: "medium", Priority: types.PriorityMedium, CurrentImpressions: 1000, CurrentPosition: 8, Confidence: 0.7},
	}

	sorted := Prioritize(opps)
	want := []string{"high", "medium", "low"}
	for i, q := range want {
		if sorted[i].Query != q {
			t.Errorf("sorted[%d] = %q, want %q", i, sorted[i].Query, q)
		}
	}
	// Input order untouched.
	if opps[0].Query != "low" {
		t.Errorf("Prioritize mutated its input: %+v", opps)
	}
}
