// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

var tmplFuncs = map[string]any{
	"pct": func(v float64) string {
		return fmt.Sprintf("%.1f%%", v*100)
	},
	"growth": func(v float64) string {
		return fmt.Sprintf("%+.1f%%", v)
	},
	"join": strings.Join,
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}

const markdownSource = `# SEO Report: {{.Analysis.Keyword}}

Generated {{.GeneratedAt.Format "2006-01-02 15:04"}} UTC

## Competition

| Metric | Value |
|---|---|
| Competition score | {{.Analysis.Competition.CompetitionScore}}/100 |
| Opportunity score | {{.Analysis.Competition.OpportunityScore}}/100 |
| Difficulty | {{.Analysis.Competition.Difficulty}} |
| Organic results | {{.Analysis.Competition.OrganicCount}} |
| Knowledge graph | {{if .Analysis.Competition.HasKnowledgeGraph}}yes{{else}}no{{end}} |
| Featured snippet | {{if .Analysis.Competition.HasFeaturedSnippet}}yes{{else}}no{{end}} |
{{- if .Analysis.TargetURL}}

Target {{.Analysis.TargetURL}} is {{if .Analysis.IsRanking}}ranking at position {{.Analysis.TargetPosition}}{{else}}not ranking{{end}}.
{{- end}}
{{- if .Analysis.Competition.TopDomains}}

Top domains: {{join .Analysis.Competition.TopDomains ", "}}
{{- end}}
{{- if .Opportunities}}

## Opportunities

| Priority | Type | Query | Position | Impact |
|---|---|---|---|---|
{{- range .Opportunities}}
| {{title (printf "%s" .Priority)}} | {{.Type}} | {{.Query}} | {{if .CurrentPosition}}{{.CurrentPosition}}{{else}}-{{end}} | {{if .EstimatedImpact}}{{.EstimatedImpact}}{{else}}-{{end}} |
{{- end}}

{{range .Opportunities}}- **{{.Query}}** ({{.Type}}): {{.Recommendation}}
{{end}}
{{- end}}
{{- if .Trend}}

## Trend

{{len .Trend.Snapshots}} snapshots over {{.Trend.PeriodDays}} days: interest is {{.Trend.Direction}} ({{growth .Trend.GrowthPercent}}).
{{- end}}
{{- if .Insight}}

## AI Insight ({{.Insight.Model}})

{{.Insight.Summary}}
{{- if .Insight.Findings}}

{{range .Insight.Findings}}- {{.Text}} _(confidence {{pct .Confidence}})_
{{end}}
{{- end}}
{{- if .Insight.Recommendations}}
### Recommended actions

{{range .Insight.Recommendations}}1. [{{.Priority}}] {{.Action}}
{{end}}
{{- end}}
{{- end}}
{{- if .Analysis.RelatedKeywords}}

## Related keywords

{{range .Analysis.RelatedKeywords}}- {{.}}
{{end}}
{{- end}}
{{- if .Analysis.PAAQuestions}}

## People Also Ask

{{range .Analysis.PAAQuestions}}- {{.}}
{{end}}
{{- end}}
`

const htmlSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>SEO Report: {{.Analysis.Keyword}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; color: #1a1a1a; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: left; }
th { background: #f3f3f3; }
.high { color: #b00020; font-weight: 600; }
.medium { color: #b36b00; }
.low { color: #2e7d32; }
</style>
</head>
<body>
<h1>SEO Report: {{.Analysis.Keyword}}</h1>
<p>Generated {{.GeneratedAt.Format "2006-01-02 15:04"}} UTC</p>

<h2>Competition</h2>
<table>
<tr><th>Metric</th><th>Value</th></tr>
<tr><td>Competition score</td><td>{{.Analysis.Competition.CompetitionScore}}/100</td></tr>
<tr><td>Opportunity score</td><td>{{.Analysis.Competition.OpportunityScore}}/100</td></tr>
<tr><td>Difficulty</td><td>{{.Analysis.Competition.Difficulty}}</td></tr>
<tr><td>Organic results</td><td>{{.Analysis.Competition.OrganicCount}}</td></tr>
</table>
{{if .Analysis.TargetURL}}<p>Target {{.Analysis.TargetURL}} is {{if .Analysis.IsRanking}}ranking at position {{.Analysis.TargetPosition}}{{else}}not ranking{{end}}.</p>{{end}}

{{if .Opportunities}}
<h2>Opportunities</h2>
<table>
<tr><th>Priority</th><th>Type</th><th>Query</th><th>Position</th><th>Impact</th><th>Recommendation</th></tr>
{{range .Opportunities}}
<tr>
<td class="{{.Priority}}">{{title (printf "%s" .Priority)}}</td>
<td>{{.Type}}</td>
<td>{{.Query}}</td>
<td>{{if .CurrentPosition}}{{.CurrentPosition}}{{else}}-{{end}}</td>
<td>{{if .EstimatedImpact}}{{.EstimatedImpact}}{{else}}-{{end}}</td>
<td>{{.Recommendation}}</td>
</tr>
{{end}}
</table>
{{end}}

{{if .Trend}}
<h2>Trend</h2>
<p>{{len .Trend.Snapshots}} snapshots over {{.Trend.PeriodDays}} days: interest is {{.Trend.Direction}} ({{growth .Trend.GrowthPercent}}).</p>
{{end}}

{{if .Insight}}
<h2>AI Insight ({{.Insight.Model}})</h2>
<p>{{.Insight.Summary}}</p>
{{if .Insight.Findings}}
<ul>
{{range .Insight.Findings}}<li>{{.Text}} <em>(confidence {{pct .Confidence}})</em></li>{{end}}
</ul>
{{end}}
{{if .Insight.Recommendations}}
<h3>Recommended actions</h3>
<ol>
{{range .Insight.Recommendations}}<li class="{{.Priority}}">{{.Action}}</li>{{end}}
</ol>
{{end}}
{{end}}

{{if .Analysis.RelatedKeywords}}
<h2>Related keywords</h2>
<ul>
{{range .Analysis.RelatedKeywords}}<li>{{.}}</li>{{end}}
</ul>
{{end}}
</body>
</html>
`

var (
	markdownTmpl = texttemplate.Must(texttemplate.New("markdown").Funcs(tmplFuncs).Parse(markdownSource))
	htmlTmpl     = htmltemplate.Must(htmltemplate.New("html").Funcs(tmplFuncs).Parse(htmlSource))
)
