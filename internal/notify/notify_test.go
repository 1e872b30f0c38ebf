// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bionicop/seo-flow/pkg/types"
)

func TestSend(t *testing.T) {
	var got Payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	payload := Payload{Event: "analysis.completed", Keyword: "go generics"}
	cfg := types.WebhookConfig{URL: server.URL}
	cfg.UserAgent = "seo-flow-test"

	if err := Send(context.Background(), server.Client(), cfg, payload); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if got.Keyword != "go generics" || got.Event != "analysis.completed" {
		t.Errorf("payload = %+v", got)
	}
}

func TestSendNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := types.WebhookConfig{URL: server.URL}
	err := Send(context.Background(), server.Client(), cfg, Payload{Event: "x"})
	if err == nil {
		t.Fatal("Send() error = nil, want HTTP error")
	}
}

func TestSendMissingURL(t *testing.T) {
	err := Send(context.Background(), http.DefaultClient, types.WebhookConfig{}, Payload{})
	if err == nil {
		t.Fatal("Send() error = nil, want missing-URL error")
	}
}

func TestFromAnalysis(t *testing.T) {
	a := &types.KeywordAnalysis{
		Keyword: "go generics",
		Competition: types.CompetitionMetrics{
			CompetitionScore: 35,
			OpportunityScore: 65,
			Difficulty:       types.DifficultyLow,
		},
		Opportunities: []types.Opportunity{
			{Priority: types.PriorityHigh, Recommendation: "Do the big thing."},
			{Priority: types.PriorityLow, Recommendation: "Do the small thing."},
		},
	}
	ins := &types.Insight{Summary: "Looks promising."}

	p := FromAnalysis(a, ins, []string{"reports/go-generics-2026-08-15.md"})
	if p.Keyword != "go generics" || p.Difficulty != types.DifficultyLow {
		t.Errorf("payload = %+v", p)
	}
	if len(p.TopActions) != 1 || p.TopActions[0] != "Do the big thing." {
		t.Errorf("TopActions = %v", p.TopActions)
	}
	if p.Summary != "Looks promising." {
		t.Errorf("Summary = %q", p.Summary)
	}
	if p.SentAt.IsZero() {
		t.Error("SentAt not set")
	}
}
