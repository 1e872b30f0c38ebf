// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notify posts run summaries to an n8n webhook so downstream
// automations can pick them up.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bionicop/seo-flow/internal/httputil"
	"github.com/bionicop/seo-flow/pkg/types"
)

// Payload is the webhook body for one completed run.
type Payload struct {
	Event       string           `json:"event"`
	Keyword     string           `json:"keyword"`
	Difficulty  types.Difficulty `json:"difficulty,omitempty"`
	Competition int              `json:"competition_score,omitempty"`
	Opportunity int              `json:"opportunity_score,omitempty"`
	TopActions  []string         `json:"top_actions,omitempty"`
	ReportPaths []string         `json:"report_paths,omitempty"`
	Summary     string           `json:"summary,omitempty"`
	SentAt      time.Time        `json:"sent_at"`
}

// FromAnalysis builds a webhook payload from the run artifacts. ins may
// be nil.
func FromAnalysis(a *types.KeywordAnalysis, ins *types.Insight, reportPaths []string) Payload {
	p := Payload{
		Event:       "analysis.completed",
		Keyword:     a.Keyword,
		Difficulty:  a.Competition.Difficulty,
		Competition: a.Competition.CompetitionScore,
		Opportunity: a.Competition.OpportunityScore,
		ReportPaths: reportPaths,
		SentAt:      time.Now().UTC(),
	}
	for _, o := range a.Opportunities {
		if o.Priority == types.PriorityHigh {
			p.TopActions = append(p.TopActions, o.Recommendation)
		}
	}
	if ins != nil {
		p.Summary = ins.Summary
	}
	return p
}

// Send posts the payload to the configured webhook URL. Non-2xx responses
// are errors.
func Send(ctx context.Context, client *http.Client, cfg types.WebhookConfig, payload Payload) error {
	if cfg.URL == "" {
		return fmt.Errorf("webhook URL not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
