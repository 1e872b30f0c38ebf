// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bionicop/seo-flow/pkg/types"
)

const geminiFixture = `{
  "candidates": [
    {"content": {"parts": [{"text": "{\"summary\": \"Strong opportunity.\", \"findings\": [{\"text\": \"Low competition.\", \"confidence\": 0.9}], \"recommendations\": [{\"action\": \"Write a guide.\", \"priority\": \"high\"}]}"}]}}
  ]
}`

func TestGeminiGenerate(t *testing.T) {
	var gotKey, gotPath string
	var gotBody geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.Write([]byte(geminiFixture))
	}))
	defer server.Close()

	oldBase := geminiAPIBase
	geminiAPIBase = server.URL
	defer func() { geminiAPIBase = oldBase }()

	b := &GeminiBackend{Client: server.Client(), APIKey: "test-key", Model: "gemini-2.0-flash"}
	ins, err := b.Generate(context.Background(), "analyze this")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if gotKey != "test-key" {
		t.Errorf("x-goog-api-key = %q", gotKey)
	}
	if !strings.Contains(gotPath, "gemini-2.0-flash:generateContent") {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody.Config.ResponseMimeType != "application/json" {
		t.Errorf("responseMimeType = %q", gotBody.Config.ResponseMimeType)
	}
	if len(gotBody.Contents) != 1 || gotBody.Contents[0].Parts[0].Text != "analyze this" {
		t.Errorf("contents = %+v", gotBody.Contents)
	}

	if ins.Summary != "Strong opportunity." {
		t.Errorf("Summary = %q", ins.Summary)
	}
	if len(ins.Findings) != 1 || ins.Findings[0].Confidence != 0.9 {
		t.Errorf("Findings = %+v", ins.Findings)
	}
	if len(ins.Recommendations) != 1 || ins.Recommendations[0].Priority != types.PriorityHigh {
		t.Errorf("Recommendations = %+v", ins.Recommendations)
	}
	if ins.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q", ins.Model)
	}
}

func TestGeminiGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"code": 400, "message": "invalid argument"}}`))
	}))
	defer server.Close()

	oldBase := geminiAPIBase
	geminiAPIBase = server.URL
	defer func() { geminiAPIBase = oldBase }()

	b := &GeminiBackend{Client: server.Client(), APIKey: "test-key"}
	_, err := b.Generate(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "invalid argument") {
		t.Errorf("error = %v", err)
	}
}

func TestGeminiGenerateAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	oldBase := geminiAPIBase
	geminiAPIBase = server.URL
	defer func() { geminiAPIBase = oldBase }()

	b := &GeminiBackend{Client: server.Client(), APIKey: "bad"}
	if _, err := b.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("Generate() error = nil, want auth error")
	}
}

func TestGeminiGenerateNoKey(t *testing.T) {
	b := &GeminiBackend{Client: http.DefaultClient}
	if _, err := b.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("Generate() error = nil, want missing-key error")
	}
}

func TestParseInsightJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"plain", `{"summary": "ok"}`, false},
		{"fenced", "```json\n{\"summary\": \"ok\"}\n```", false},
		{"bare fence", "```\n{\"summary\": \"ok\"}\n```", false},
		{"not json", "I think this keyword is great!", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, err := parseInsightJSON(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && ins.Summary != "ok" {
				t.Errorf("Summary = %q", ins.Summary)
			}
		})
	}
}
