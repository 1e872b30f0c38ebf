// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"fmt"
	"math"
	"sort"

	"github.com/bionicop/seo-flow/pkg/types"
)

// Detection thresholds for Search Console rows.
const (
	lowCTRThreshold        = 0.02
	lowCTRMinImpressions   = 100
	highImpressionsMin     = 1000
	highImpressionsCTRMax  = 0.01
	firstPageMaxPosition   = 10
	strikingDistanceMinPos = 4
)

// expectedCTR is the typical click-through rate by position on the first
// results page. Positions past 10 use a flat floor.
var expectedCTR = [...]float64{0.28, 0.15, 0.11, 0.08, 0.06, 0.05, 0.04, 0.03, 0.03, 0.02}

func ctrForPosition(pos float64) float64 {
	p := int(math.Round(pos))
	if p >= 1 && p <= len(expectedCTR) {
		return expectedCTR[p-1]
	}
	return 0.01
}

// DetectFromGSC scans Search Console rows for actionable opportunities:
// first-page rows with below-par CTR, striking-distance positions 4-10,
// and high-impression rows that convert almost no clicks.
func DetectFromGSC(report *types.GSCReport) []types.Opportunity {
	var opps []types.Opportunity

	for _, m := range report.Metrics {
		if m.Query == "" {
			continue
		}

		if m.CTR < lowCTRThreshold && m.IsFirstPage() && m.Impressions >= lowCTRMinImpressions {
			expected := ctrForPosition(m.Position)
			gained := int(math.Round(float64(m.Impressions) * (expected - m.CTR)))
			if gained < 0 {
				gained = 0
			}
			opps = append(opps, types.Opportunity{
				Query:              m.Query,
				Type:               types.OppLowCTR,
				Priority:           types.PriorityHigh,
				CurrentPosition:    int(math.Round(m.Position)),
				CurrentCTR:         m.CTR,
				CurrentClicks:      m.Clicks,
				CurrentImpressions: m.Impressions,
				EstimatedImpact:    fmt.Sprintf("+%d clicks/month", gained),
				Recommendation:     "Rewrite the title and meta description; the page ranks but earns few clicks.",
				Confidence:         0.8,
			})
		}

		if m.Position >= strikingDistanceMinPos && m.Position <= firstPageMaxPosition {
			top3 := ctrForPosition(3)
			gained := int(math.Round(float64(m.Impressions)*top3)) - m.Clicks
			if gained < 0 {
				gained = 0
			}
			opps = append(opps, types.Opportunity{
				Query:              m.Query,
				Type:               types.OppPosition4To10,
				Priority:           types.PriorityHigh,
				CurrentPosition:    int(math.Round(m.Position)),
				CurrentCTR:         m.CTR,
				CurrentClicks:      m.Clicks,
				CurrentImpressions: m.Impressions,
				EstimatedImpact:    fmt.Sprintf("+%d clicks if top 3", gained),
				Recommendation:     "Strengthen content and internal links to break into the top 3.",
				Confidence:         0.7,
			})
		}

		if m.Impressions >= highImpressionsMin && m.CTR < highImpressionsCTRMax {
			opps = append(opps, types.Opportunity{
				Query:              m.Query,
				Type:               types.OppHighImpressions,
				Priority:           types.PriorityMedium,
				CurrentPosition:    int(math.Round(m.Position)),
				CurrentCTR:         m.CTR,
				CurrentClicks:      m.Clicks,
				CurrentImpressions: m.Impressions,
				EstimatedImpact:    fmt.Sprintf("%d impressions with almost no clicks", m.Impressions),
				Recommendation:     "High demand, no capture: review search intent match and snippet quality.",
				Confidence:         0.75,
			})
		}
	}

	return opps
}

// priorityWeight maps a priority to its scoring weight.
func priorityWeight(p types.Priority) float64 {
	switch p {
	case types.PriorityHigh:
		return 100
	case types.PriorityMedium:
		return 50
	default:
		return 10
	}
}

// score ranks an opportunity for prioritization: priority weight plus
// capped impression volume, position headroom, and confidence.
func score(o types.Opportunity) float64 {
	s := priorityWeight(o.Priority)
	s += math.Min(float64(o.CurrentImpressions)/100, 50)
	s += math.Max(0, 20-float64(o.CurrentPosition))
	s += 20 * o.Confidence
	return s
}

// Prioritize sorts opportunities by descending score, stable within ties.
func Prioritize(opps []types.Opportunity) []types.Opportunity {
	sorted := make([]types.Opportunity, len(opps))
	copy(sorted, opps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return score(sorted[i]) > score(sorted[j])
	})
	return sorted
}
