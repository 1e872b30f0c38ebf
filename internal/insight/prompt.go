// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package insight

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/bionicop/seo-flow/pkg/types"
)

const promptTemplate = `You are an SEO analyst. Analyze the keyword data below and respond with ONLY a JSON object, no markdown fences, matching this shape:

{
  "summary": "two or three sentences on the keyword's situation",
  "findings": [{"text": "one observation", "confidence": 0.0}],
  "recommendations": [{"action": "one concrete step", "priority": "high|medium|low"}]
}

Rules:
- confidence is a number between 0 and 1
- priority is exactly one of: high, medium, low
- at most 5 findings and 5 recommendations
- base every statement on the data, do not invent metrics

Keyword analysis data:
{{.AnalysisJSON}}
`

var promptTmpl = template.Must(template.New("insight").Parse(promptTemplate))

// BuildPrompt renders the generation prompt for one keyword analysis.
func BuildPrompt(analysis *types.KeywordAnalysis) (string, error) {
	if analysis == nil {
		return "", fmt.Errorf("no analysis to summarize")
	}

	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling analysis: %w", err)
	}

	var b strings.Builder
	err = promptTmpl.Execute(&b, struct{ AnalysisJSON string }{AnalysisJSON: string(data)})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return b.String(), nil
}
