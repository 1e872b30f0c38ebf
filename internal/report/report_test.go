// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bionicop/seo-flow/pkg/types"
)

func testData() Data {
	return Data{
		Analysis: &types.KeywordAnalysis{
			Keyword:        "go generics",
			TargetURL:      "https://example.com",
			TargetPosition: 5,
			IsRanking:      true,
			Competition: types.CompetitionMetrics{
				Keyword:          "go generics",
				CompetitionScore: 45,
				OpportunityScore: 55,
				Difficulty:       types.DifficultyMedium,
				OrganicCount:     10,
				TopDomains:       []string{"go.dev", "en.wikipedia.org"},
			},
			RelatedKeywords: []string{"go type parameters"},
			PAAQuestions:    []string{"What are Go generics?"},
			AnalyzedAt:      time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC),
		},
		Opportunities: []types.Opportunity{
			{
				Query:           "go generics",
				Type:            types.OppPosition4To10,
				Priority:        types.PriorityHigh,
				CurrentPosition: 5,
				EstimatedImpact: "+70 clicks if top 3",
				Recommendation:  "Strengthen the page.",
				Confidence:      0.7,
			},
		},
		Trend: &types.TrendAnalysis{
			Keyword:       "go generics",
			PeriodDays:    30,
			Snapshots:     make([]types.TrendSnapshot, 3),
			GrowthPercent: 25,
			Direction:     types.TrendUp,
		},
		Insight: &types.Insight{
			Keyword: "go generics",
			Model:   "gemini-2.0-flash",
			Summary: "Solid opportunity with moderate competition.",
			Findings: []types.InsightFinding{
				{Text: "Position 5 is striking distance.", Confidence: 0.8},
			},
			Recommendations: []types.InsightRecommendation{
				{Action: "Refresh the article.", Priority: types.PriorityHigh},
			},
		},
		GeneratedAt: time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestWriteBothFormats(t *testing.T) {
	dir := t.TempDir()
	paths, err := Write(testData(), types.ReportConfig{ReportsDir: dir, Format: types.FormatBoth})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2: %v", len(paths), paths)
	}

	md, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("reading markdown: %v", err)
	}
	for _, want := range []string{
		"# SEO Report: go generics",
		"45/100",
		"ranking at position 5",
		"+70 clicks if top 3",
		"interest is up (+25.0%)",
		"Solid opportunity",
		"confidence 80.0%",
		"go type parameters",
	} {
		if !strings.Contains(string(md), want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	html, err := os.ReadFile(paths[1])
	if err != nil {
		t.Fatalf("reading html: %v", err)
	}
	for _, want := range []string{
		"<title>SEO Report: go generics</title>",
		`class="high"`,
		"Refresh the article.",
	} {
		if !strings.Contains(string(html), want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestWriteMarkdownOnly(t *testing.T) {
	dir := t.TempDir()
	paths, err := Write(testData(), types.ReportConfig{ReportsDir: dir, Format: types.FormatMarkdown})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if len(paths) != 1 || filepath.Ext(paths[0]) != ".md" {
		t.Errorf("paths = %v", paths)
	}
	if base := filepath.Base(paths[0]); base != "go-generics-2026-08-15.md" {
		t.Errorf("file name = %q", base)
	}
}

func TestWriteMinimalData(t *testing.T) {
	dir := t.TempDir()
	data := Data{
		Analysis: &types.KeywordAnalysis{
			Keyword:     "niche query",
			Competition: types.CompetitionMetrics{Keyword: "niche query", Difficulty: types.DifficultyLow},
		},
	}
	paths, err := Write(data, types.ReportConfig{ReportsDir: dir, Format: types.FormatMarkdown})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	md, _ := os.ReadFile(paths[0])
	if strings.Contains(string(md), "AI Insight") || strings.Contains(string(md), "## Trend") {
		t.Error("optional sections rendered without data")
	}
}

func TestWriteRequiresAnalysis(t *testing.T) {
	if _, err := Write(Data{}, types.ReportConfig{ReportsDir: t.TempDir()}); err == nil {
		t.Error("Write() error = nil, want missing-analysis error")
	}
}

func TestHTMLEscapesContent(t *testing.T) {
	dir := t.TempDir()
	data := Data{
		Analysis: &types.KeywordAnalysis{
			Keyword:     "query <script>alert(1)</script>",
			Competition: types.CompetitionMetrics{Difficulty: types.DifficultyLow},
		},
	}
	paths, err := Write(data, types.ReportConfig{ReportsDir: dir, Format: types.FormatHTML})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	html, _ := os.ReadFile(paths[0])
	if strings.Contains(string(html), "<script>alert(1)</script>") {
		t.Error("keyword not escaped in HTML output")
	}
}
