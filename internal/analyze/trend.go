// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"fmt"
	"sort"
	"time"

	"github.com/bionicop/seo-flow/pkg/types"
)

// trendThreshold is the growth percentage beyond which a trend counts as
// moving rather than stable.
const trendThreshold = 10.0

// SnapshotForTrend reduces a full SERP snapshot to the trend observation
// stored between runs.
func SnapshotForTrend(snap *types.SERPSnapshot) types.TrendSnapshot {
	ts := types.TrendSnapshot{
		Keyword:            snap.Keyword,
		TakenAt:            snap.FetchedAt,
		TimeFilter:         snap.TimeFilter,
		OrganicCount:       len(snap.Organic),
		RelatedCount:       len(snap.RelatedSearches),
		PAACount:           len(snap.PeopleAlsoAsk),
		HasKnowledgeGraph:  snap.KnowledgeGraph != nil,
		HasFeaturedSnippet: snap.HasFeaturedSnippet(),
	}
	if len(snap.Organic) > 0 {
		ts.TopURL = snap.Organic[0].URL
		ts.TopDomain = snap.Organic[0].Domain
	}
	return ts
}

// interestSignal is the per-snapshot proxy for search interest: breadth
// features plus the organic count.
func interestSignal(s types.TrendSnapshot) int {
	return s.RelatedCount + s.PAACount + s.OrganicCount
}

// Trend computes growth and direction across stored snapshots of one
// keyword. At least two snapshots are required; they are compared oldest
// to newest.
func Trend(keyword string, snapshots []types.TrendSnapshot, periodDays int) (*types.TrendAnalysis, error) {
	if len(snapshots) < 2 {
		return nil, fmt.Errorf("trend for %q needs at least 2 snapshots, have %d", keyword, len(snapshots))
	}

	ordered := make([]types.TrendSnapshot, len(snapshots))
	copy(ordered, snapshots)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TakenAt.Before(ordered[j].TakenAt)
	})

	first := interestSignal(ordered[0])
	last := interestSignal(ordered[len(ordered)-1])

	var growth float64
	switch {
	case first > 0:
		growth = float64(last-first) / float64(first) * 100
	case last > 0:
		growth = 100
	}

	direction := types.TrendStable
	switch {
	case growth > trendThreshold:
		direction = types.TrendUp
	case growth < -trendThreshold:
		direction = types.TrendDown
	}

	return &types.TrendAnalysis{
		Keyword:       keyword,
		PeriodDays:    periodDays,
		Snapshots:     ordered,
		GrowthPercent: growth,
		Direction:     direction,
		AnalyzedAt:    time.Now().UTC(),
	}, nil
}
