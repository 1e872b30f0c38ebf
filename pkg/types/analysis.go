// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Priority ranks opportunities for the researcher's attention.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// OpportunityType categorizes an SEO opportunity.
type OpportunityType string

const (
	OppNotRanking          OpportunityType = "not_ranking"
	OppPositionImprovement OpportunityType = "position_improvement"
	OppLowCTR              OpportunityType = "low_ctr"
	OppPosition4To10       OpportunityType = "position_4_10"
	OppQuickWin            OpportunityType = "quick_win"
	OppHighImpressions     OpportunityType = "high_impressions"
	OppKeywordExpansion    OpportunityType = "keyword_expansion"
	OppMaintain            OpportunityType = "maintain"
)

// Opportunity is a single actionable finding with an estimated impact.
type Opportunity struct {
	// Query is the keyword the opportunity applies to.
	Query string `json:"query" yaml:"query"`

	// Type categorizes the opportunity.
	Type OpportunityType `json:"type" yaml:"type"`

	// Priority ranks it against other opportunities.
	Priority Priority `json:"priority" yaml:"priority"`

	// CurrentPosition is the SERP or Search Console position, 0 when unknown.
	CurrentPosition int `json:"current_position,omitempty" yaml:"current_position,omitempty"`

	// CurrentCTR is the click-through rate in [0,1], Search Console rows only.
	CurrentCTR float64 `json:"current_ctr,omitempty" yaml:"current_ctr,omitempty"`

	// CurrentClicks and CurrentImpressions come from Search Console rows.
	CurrentClicks      int `json:"current_clicks,omitempty" yaml:"current_clicks,omitempty"`
	CurrentImpressions int `json:"current_impressions,omitempty" yaml:"current_impressions,omitempty"`

	// EstimatedImpact is a human-readable impact estimate
	// (e.g. "+45 clicks/month").
	EstimatedImpact string `json:"estimated_impact,omitempty" yaml:"estimated_impact,omitempty"`

	// Recommendation is the suggested action.
	Recommendation string `json:"recommendation" yaml:"recommendation"`

	// Confidence is a value in [0,1] indicating detection certainty.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// Difficulty labels a competition score band.
type Difficulty string

const (
	DifficultyLow    Difficulty = "Low"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHigh   Difficulty = "High"
)

// CompetitionMetrics summarizes how contested a keyword's results page is.
// The score is computed from SERP features by the analyze stage.
type CompetitionMetrics struct {
	// Keyword is the query the metrics describe.
	Keyword string `json:"keyword" yaml:"keyword"`

	// CompetitionScore is 0-100; higher means harder to rank.
	CompetitionScore int `json:"competition_score" yaml:"competition_score"`

	// OpportunityScore is 100 minus the competition score.
	OpportunityScore int `json:"opportunity_score" yaml:"opportunity_score"`

	// Difficulty is the score band: Low (<40), Medium (40-69), High (>=70).
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`

	// OrganicCount is the number of organic results observed.
	OrganicCount int `json:"organic_count" yaml:"organic_count"`

	// SERP feature flags that fed the score.
	HasKnowledgeGraph  bool `json:"has_knowledge_graph" yaml:"has_knowledge_graph"`
	HasFeaturedSnippet bool `json:"has_featured_snippet" yaml:"has_featured_snippet"`
	HasSitelinks       bool `json:"has_sitelinks" yaml:"has_sitelinks"`

	// RelatedCount and PAACount are the feature counts that fed the score.
	RelatedCount int `json:"related_count" yaml:"related_count"`
	PAACount     int `json:"paa_count" yaml:"paa_count"`

	// TopDomains lists the ranking domains, strongest first.
	TopDomains []string `json:"top_domains,omitempty" yaml:"top_domains,omitempty"`
}

// IsLowCompetition reports whether the keyword sits in the Low band.
func (c CompetitionMetrics) IsLowCompetition() bool {
	return c.Difficulty == DifficultyLow
}

// IsQuickWin reports whether the keyword is a quick-win candidate:
// low competition with a high opportunity score.
func (c CompetitionMetrics) IsQuickWin() bool {
	return c.CompetitionScore < 40 && c.OpportunityScore > 60
}

// KeywordAnalysis is the complete analysis output for one keyword.
type KeywordAnalysis struct {
	// Keyword is the analyzed query.
	Keyword string `json:"keyword" yaml:"keyword"`

	// TargetURL is the URL whose ranking was checked, empty when none.
	TargetURL string `json:"target_url,omitempty" yaml:"target_url,omitempty"`

	// TargetPosition is the target's position, 0 when not ranking.
	TargetPosition int `json:"target_position,omitempty" yaml:"target_position,omitempty"`

	// IsRanking reports whether the target URL appeared in the results.
	IsRanking bool `json:"is_ranking" yaml:"is_ranking"`

	// Competition holds the computed competition metrics.
	Competition CompetitionMetrics `json:"competition" yaml:"competition"`

	// Opportunities lists the identified opportunities.
	Opportunities []Opportunity `json:"opportunities,omitempty" yaml:"opportunities,omitempty"`

	// RelatedKeywords lists related search queries for expansion.
	RelatedKeywords []string `json:"related_keywords,omitempty" yaml:"related_keywords,omitempty"`

	// PAAQuestions lists People Also Ask questions for content ideas.
	PAAQuestions []string `json:"paa_questions,omitempty" yaml:"paa_questions,omitempty"`

	// AnalyzedAt is when the analysis ran (UTC).
	AnalyzedAt time.Time `json:"analyzed_at" yaml:"analyzed_at"`
}

// TrendSnapshot is one point-in-time observation of a keyword's results
// page, recorded for trend analysis.
type TrendSnapshot struct {
	// Keyword is the observed query.
	Keyword string `json:"keyword" yaml:"keyword"`

	// TakenAt is when the snapshot was recorded (UTC).
	TakenAt time.Time `json:"taken_at" yaml:"taken_at"`

	// TimeFilter records the freshness window used, if any.
	TimeFilter string `json:"time_filter,omitempty" yaml:"time_filter,omitempty"`

	// OrganicCount is the number of organic results observed.
	OrganicCount int `json:"organic_count" yaml:"organic_count"`

	// TopURL and TopDomain describe the top organic result.
	TopURL    string `json:"top_url,omitempty" yaml:"top_url,omitempty"`
	TopDomain string `json:"top_domain,omitempty" yaml:"top_domain,omitempty"`

	// RelatedCount and PAACount are interest signals.
	RelatedCount int `json:"related_count" yaml:"related_count"`
	PAACount     int `json:"paa_count" yaml:"paa_count"`

	// Feature flags at snapshot time.
	HasKnowledgeGraph  bool `json:"has_knowledge_graph" yaml:"has_knowledge_graph"`
	HasFeaturedSnippet bool `json:"has_featured_snippet" yaml:"has_featured_snippet"`
}

// TrendDirection labels the movement of a keyword's interest signals.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// TrendAnalysis summarizes a keyword's movement across stored snapshots.
type TrendAnalysis struct {
	// Keyword is the analyzed query.
	Keyword string `json:"keyword" yaml:"keyword"`

	// PeriodDays is the history window in days.
	PeriodDays int `json:"period_days" yaml:"period_days"`

	// Snapshots are the observations inside the window, oldest first.
	Snapshots []TrendSnapshot `json:"snapshots" yaml:"snapshots"`

	// GrowthPercent is the change in the interest signal between the
	// first and last snapshot, as a percentage.
	GrowthPercent float64 `json:"growth_percent" yaml:"growth_percent"`

	// Direction is up (> +10%), down (< -10%), or stable.
	Direction TrendDirection `json:"direction" yaml:"direction"`

	// AnalyzedAt is when the trend was computed (UTC).
	AnalyzedAt time.Time `json:"analyzed_at" yaml:"analyzed_at"`
}

// Insight is the AI-generated summary of an analysis.
type Insight struct {
	// Keyword is the analyzed query.
	Keyword string `json:"keyword" yaml:"keyword"`

	// Model is the AI model that produced the insight.
	Model string `json:"model" yaml:"model"`

	// Summary is a short narrative of the keyword's situation.
	Summary string `json:"summary" yaml:"summary"`

	// Findings are individual observations with confidence scores.
	Findings []InsightFinding `json:"findings,omitempty" yaml:"findings,omitempty"`

	// Recommendations are prioritized next actions.
	Recommendations []InsightRecommendation `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`

	// GeneratedAt is when the insight was produced (UTC).
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

// InsightFinding is one AI observation about the analysis.
type InsightFinding struct {
	// Text is the observation.
	Text string `json:"text" yaml:"text"`

	// Confidence is a value in [0,1].
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// InsightRecommendation is one AI-suggested action.
type InsightRecommendation struct {
	// Action is the suggested step.
	Action string `json:"action" yaml:"action"`

	// Priority ranks the action: high, medium, or low.
	Priority Priority `json:"priority" yaml:"priority"`
}
