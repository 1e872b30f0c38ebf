// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze computes competition metrics, opportunities, and trends
// from collected SERP snapshots and Search Console reports.
package analyze

import (
	"fmt"
	"time"

	"github.com/bionicop/seo-flow/internal/validate"
	"github.com/bionicop/seo-flow/pkg/types"
)

// Competition score bands.
const (
	difficultyHighMin   = 70
	difficultyMediumMin = 40
)

// Score computes a 0-100 competition score from the SERP features of a
// snapshot. Each feature adds a weighted contribution: a full organic page,
// a knowledge graph, sitelinks, and a featured snippet all signal an
// established, contested results page; related searches and People Also
// Ask signal breadth of interest.
func Score(snap *types.SERPSnapshot) types.CompetitionMetrics {
	m := types.CompetitionMetrics{
		Keyword:            snap.Keyword,
		OrganicCount:       len(snap.Organic),
		HasKnowledgeGraph:  snap.KnowledgeGraph != nil,
		HasFeaturedSnippet: snap.HasFeaturedSnippet(),
		HasSitelinks:       snap.HasSitelinks(),
		RelatedCount:       len(snap.RelatedSearches),
		PAACount:           len(snap.PeopleAlsoAsk),
		TopDomains:         snap.TopDomains(),
	}

	score := 0
	switch {
	case m.OrganicCount >= 10:
		score += 25
	case m.OrganicCount >= 5:
		score += 15
	default:
		score += 5
	}
	if m.HasKnowledgeGraph {
		score += 20
	}
	score += min(3*m.RelatedCount, 15)
	score += min(3*m.PAACount, 15)
	if m.HasSitelinks {
		score += 15
	}
	if m.HasFeaturedSnippet {
		score += 10
	}
	if score > 100 {
		score = 100
	}

	m.CompetitionScore = score
	m.OpportunityScore = 100 - score
	switch {
	case score >= difficultyHighMin:
		m.Difficulty = types.DifficultyHigh
	case score >= difficultyMediumMin:
		m.Difficulty = types.DifficultyMedium
	default:
		m.Difficulty = types.DifficultyLow
	}
	return m
}

// Analyze builds the full analysis for one keyword snapshot. targetURL is
// optional; when set the target's ranking position feeds the opportunity
// rules.
func Analyze(snap *types.SERPSnapshot, targetURL string) (*types.KeywordAnalysis, error) {
	if _, err := validate.Keyword(snap.Keyword); err != nil {
		return nil, fmt.Errorf("analyzing %q: %w", snap.Keyword, err)
	}

	a := &types.KeywordAnalysis{
		Keyword:         snap.Keyword,
		Competition:     Score(snap),
		RelatedKeywords: snap.RelatedSearches,
		AnalyzedAt:      time.Now().UTC(),
	}
	for _, p := range snap.PeopleAlsoAsk {
		a.PAAQuestions = append(a.PAAQuestions, p.Question)
	}

	if targetURL != "" {
		normalized, err := validate.NormalizeURL(targetURL)
		if err != nil {
			return nil, fmt.Errorf("target URL: %w", err)
		}
		a.TargetURL = normalized
		a.TargetPosition = snap.FindPosition(types.Domain(normalized))
		a.IsRanking = a.TargetPosition > 0
	}

	a.Opportunities = identifyOpportunities(a)
	return a, nil
}

// identifyOpportunities applies the SERP-side opportunity rules to an
// analysis: ranking position bands, quick-win competition, and keyword
// expansion potential.
func identifyOpportunities(a *types.KeywordAnalysis) []types.Opportunity {
	var opps []types.Opportunity
	pos := a.TargetPosition

	if a.TargetURL != "" {
		switch {
		case !a.IsRanking:
			opps = append(opps, types.Opportunity{
				Query:          a.Keyword,
				Type:           types.OppNotRanking,
				Priority:       types.PriorityMedium,
				Recommendation: "Create targeted content for this keyword; the site does not rank yet.",
				Confidence:     0.8,
			})
		case pos > 10:
			priority := types.PriorityMedium
			if pos <= 20 {
				priority = types.PriorityHigh
			}
			opps = append(opps, types.Opportunity{
				Query:           a.Keyword,
				Type:            types.OppPositionImprovement,
				Priority:        priority,
				CurrentPosition: pos,
				Recommendation:  "Improve on-page relevance and internal links to move onto the first page.",
				Confidence:      0.7,
			})
		case pos <= 3:
			opps = append(opps, types.Opportunity{
				Query:           a.Keyword,
				Type:            types.OppMaintain,
				Priority:        types.PriorityLow,
				CurrentPosition: pos,
				Recommendation:  "Keep content fresh to defend the top-3 position.",
				Confidence:      0.9,
			})
		default: // positions 4-10
			opps = append(opps, types.Opportunity{
				Query:           a.Keyword,
				Type:            types.OppPosition4To10,
				Priority:        types.PriorityHigh,
				CurrentPosition: pos,
				Recommendation:  "Strengthen the page to reach the top 3; small gains yield large CTR jumps here.",
				Confidence:      0.75,
			})
		}
	}

	if a.Competition.IsQuickWin() {
		opps = append(opps, types.Opportunity{
			Query:           a.Keyword,
			Type:            types.OppQuickWin,
			Priority:        types.PriorityHigh,
			CurrentPosition: pos,
			Recommendation:  "Low competition and high opportunity: prioritize this keyword now.",
			Confidence:      0.85,
		})
	}

	if len(a.RelatedKeywords) > 3 {
		opps = append(opps, types.Opportunity{
			Query:           a.Keyword,
			Type:            types.OppKeywordExpansion,
			Priority:        types.PriorityMedium,
			EstimatedImpact: fmt.Sprintf("%d related keywords to target", len(a.RelatedKeywords)),
			Recommendation:  "Expand coverage with the related searches as supporting content.",
			Confidence:      0.6,
		})
	}

	return opps
}
