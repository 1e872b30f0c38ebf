// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package insight turns a keyword analysis into an AI-generated narrative:
// a summary, individual findings with confidence scores, and prioritized
// recommendations.
package insight

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bionicop/seo-flow/pkg/types"
)

// backoffBase is the base delay between generation retries. Tests override
// this to avoid real sleeps.
var backoffBase = 2 * time.Second

// AIBackend generates structured insight text from a prompt.
type AIBackend interface {
	Name() string
	Generate(ctx context.Context, prompt string) (*types.Insight, error)
}

// Generate builds the prompt for an analysis and calls the backend,
// retrying transient failures with exponential backoff. The returned
// insight is validated before it is accepted.
func Generate(ctx context.Context, backend AIBackend, analysis *types.KeywordAnalysis, cfg types.InsightConfig) (*types.Insight, error) {
	prompt, err := BuildPrompt(analysis)
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffBase * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		ins, err := backend.Generate(ctx, prompt)
		if err != nil {
			lastErr = err
			continue
		}
		if err := validateInsight(ins); err != nil {
			lastErr = err
			continue
		}

		ins.Keyword = analysis.Keyword
		ins.GeneratedAt = time.Now().UTC()
		return ins, nil
	}
	return nil, fmt.Errorf("insight generation failed after %d attempts: %w", maxRetries, lastErr)
}

// validateInsight rejects structurally invalid model output so a retry can
// ask again instead of propagating junk.
func validateInsight(ins *types.Insight) error {
	if ins == nil {
		return fmt.Errorf("empty insight")
	}
	if strings.TrimSpace(ins.Summary) == "" {
		return fmt.Errorf("insight has no summary")
	}
	for i, f := range ins.Findings {
		if strings.TrimSpace(f.Text) == "" {
			return fmt.Errorf("finding %d has no text", i)
		}
		if f.Confidence < 0 || f.Confidence > 1 {
			return fmt.Errorf("finding %d confidence %v out of range", i, f.Confidence)
		}
	}
	for i, r := range ins.Recommendations {
		if strings.TrimSpace(r.Action) == "" {
			return fmt.Errorf("recommendation %d has no action", i)
		}
		switch r.Priority {
		case types.PriorityHigh, types.PriorityMedium, types.PriorityLow:
		default:
			return fmt.Errorf("recommendation %d has invalid priority %q", i, r.Priority)
		}
	}
	return nil
}
