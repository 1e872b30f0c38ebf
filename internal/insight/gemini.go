// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bionicop/seo-flow/internal/httputil"
	"github.com/bionicop/seo-flow/pkg/types"
)

// geminiAPIBase is the Gemini generateContent endpoint root. Declared as a
// var so tests can substitute an httptest server.
var geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta"

// DefaultGeminiModel is used when the config does not name a model.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiBackend generates insights through the Google Gemini API.
type GeminiBackend struct {
	Client *http.Client
	APIKey string
	Model  string
}

// Name returns the backend identifier.
func (b *GeminiBackend) Name() string { return "gemini" }

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
	Config   geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the prompt to Gemini and parses the JSON reply into an
// insight. The request pins a JSON response MIME type and low temperature
// so output stays parseable.
func (b *GeminiBackend) Generate(ctx context.Context, prompt string) (*types.Insight, error) {
	if b.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key not configured")
	}

	model := b.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		Config: geminiGenConfig{
			Temperature:      0.2,
			ResponseMimeType: "application/json",
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", geminiAPIBase, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-goog-api-key", b.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Gemini API request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("Gemini API rejected the key: HTTP %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("Gemini API returned HTTP %d", resp.StatusCode)
	}

	var gr geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("parsing Gemini response: %w", err)
	}
	if gr.Error != nil {
		return nil, fmt.Errorf("Gemini API error %d: %s", gr.Error.Code, gr.Error.Message)
	}
	if len(gr.Candidates) == 0 {
		return nil, fmt.Errorf("Gemini returned no candidates")
	}

	var text strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}

	ins, err := parseInsightJSON(text.String())
	if err != nil {
		return nil, err
	}
	ins.Model = model
	return ins, nil
}

// parseInsightJSON decodes the model's reply. Markdown code fences are
// stripped first since models add them despite instructions.
func parseInsightJSON(raw string) (*types.Insight, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	var ins types.Insight
	if err := json.Unmarshal([]byte(s), &ins); err != nil {
		return nil, fmt.Errorf("model reply is not valid JSON: %w", err)
	}
	return &ins, nil
}
