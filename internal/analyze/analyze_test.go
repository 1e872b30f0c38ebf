// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"testing"
	"time"

	"github.com/bionicop/seo-flow/pkg/types"
)

func makeSnapshot(organic int, kg, sitelinks, snippet bool, related, paa int) *types.SERPSnapshot {
	snap := &types.SERPSnapshot{
		Keyword:   "test keyword",
		FetchedAt: time.Now().UTC(),
	}
	for i := 1; i <= organic; i++ {
		snap.Organic = append(snap.Organic, types.SERPResult{
			Position: i,
			URL:      "https://example.com/page",
			Domain:   "example.com",
			Source:   "serper",
		})
	}
	if snippet && len(snap.Organic) > 0 {
		snap.Organic[0].Position = 0
	}
	if sitelinks && len(snap.Organic) > 0 {
		snap.Organic[0].HasSitelinks = true
	}
	if kg {
		snap.KnowledgeGraph = &types.KnowledgeGraph{Title: "Test"}
	}
	for i := 0; i < related; i++ {
		snap.RelatedSearches = append(snap.RelatedSearches, "related")
	}
	for i := 0; i < paa; i++ {
		snap.PeopleAlsoAsk = append(snap.PeopleAlsoAsk, types.PAAQuestion{Question: "q"})
	}
	return snap
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		snap      *types.SERPSnapshot
		wantScore int
		wantBand  types.Difficulty
	}{
		{
			// 25 (organic) + 20 (kg) + 15 (related cap) + 15 (paa cap) + 15 (sitelinks) + 10 (snippet) = 100
			name:      "everything present",
			snap:      makeSnapshot(10, true, true, true, 8, 6),
			wantScore: 100,
			wantBand:  types.DifficultyHigh,
		},
		{
			// 5 (sparse organic) only
			name:      "sparse page",
			snap:      makeSnapshot(3, false, false, false, 0, 0),
			wantScore: 5,
			wantBand:  types.DifficultyLow,
		},
		{
			// 15 (5-9 organic) + 20 (kg) + 6 (2 related) = 41
			name:      "medium page",
			snap:      makeSnapshot(6, true, false, false, 2, 0),
			wantScore: 41,
			wantBand:  types.DifficultyMedium,
		},
		{
			// 25 + 9 (3 related) + 3 (1 paa) = 37
			name:      "full organic, few features",
			snap:      makeSnapshot(10, false, false, false, 3, 1),
			wantScore: 37,
			wantBand:  types.DifficultyLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Score(tt.snap)
			if m.CompetitionScore != tt.wantScore {
				t.Errorf("CompetitionScore = %d, want %d", m.CompetitionScore, tt.wantScore)
			}
			if m.OpportunityScore != 100-tt.wantScore {
				t.Errorf("OpportunityScore = %d", m.OpportunityScore)
			}
			if m.Difficulty != tt.wantBand {
				t.Errorf("Difficulty = %s, want %s", m.Difficulty, tt.wantBand)
			}
		})
	}
}

func TestAnalyzeTargetRanking(t *testing.T) {
	snap := makeSnapshot(10, false, false, false, 0, 0)
	snap.Organic[4].URL = "https://mysite.com/page"
	snap.Organic[4].Domain = "mysite.com"

	a, err := Analyze(snap, "mysite.com")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !a.IsRanking || a.TargetPosition != 5 {
		t.Errorf("TargetPosition = %d, IsRanking = %v", a.TargetPosition, a.IsRanking)
	}

	var found bool
	for _, o := range a.Opportunities {
		if o.Type == types.OppPosition4To10 {
			found = true
			if o.Priority != types.PriorityHigh {
				t.Errorf("position_4_10 priority = %s", o.Priority)
			}
		}
	}
	if !found {
		t.Errorf("expected position_4_10 opportunity, got %+v", a.Opportunities)
	}
}

func TestAnalyzeOpportunityRules(t *testing.T) {
	tests := []struct {
		name     string
		position int // 0 = not ranking; placed at that organic slot otherwise
		wantType types.OpportunityType
	}{
		{"not ranking", 0, types.OppNotRanking},
		{"top 3", 2, types.OppMaintain},
		{"beyond first page", 15, types.OppPositionImprovement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := makeSnapshot(20, true, true, true, 5, 5) // high competition, no quick win noise
			if tt.position > 0 {
				snap.Organic[tt.position-1].URL = "https://mysite.com/"
				snap.Organic[tt.position-1].Domain = "mysite.com"
			}

			a, err := Analyze(snap, "https://mysite.com")
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			var found bool
			for _, o := range a.Opportunities {
				if o.Type == tt.wantType {
					found = true
				}
			}
			if !found {
				t.Errorf("want %s in %+v", tt.wantType, a.Opportunities)
			}
		})
	}
}

func TestAnalyzeQuickWin(t *testing.T) {
	snap := makeSnapshot(3, false, false, false, 0, 0) // score 5: quick win
	a, err := Analyze(snap, "")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	var found bool
	for _, o := range a.Opportunities {
		if o.Type == types.OppQuickWin {
			found = true
		}
	}
	if !found {
		t.Errorf("want quick_win in %+v", a.Opportunities)
	}
}

func TestAnalyzeKeywordExpansion(t *testing.T) {
	snap := makeSnapshot(10, true, true, true, 5, 0)
	a, err := Analyze(snap, "")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	var found bool
	for _, o := range a.Opportunities {
		if o.Type == types.OppKeywordExpansion {
			found = true
		}
	}
	if !found {
		t.Errorf("want keyword_expansion with 5 related searches, got %+v", a.Opportunities)
	}
}

func TestAnalyzeRejectsBadKeyword(t *testing.T) {
	snap := &types.SERPSnapshot{Keyword: "x"}
	if _, err := Analyze(snap, ""); err == nil {
		t.Error("Analyze() error = nil, want keyword validation error")
	}
}
