// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bionicop/seo-flow/internal/insight"
	"github.com/bionicop/seo-flow/internal/store"
)

var insightCmd = &cobra.Command{
	Use:   "insight [keyword]",
	Short: "Generate an AI insight for a previously analyzed keyword",
	Long: `Insight sends the latest stored analysis of a keyword to the Gemini API
and prints the structured reply: a summary, findings with confidence
scores, and prioritized recommendations. The insight is recorded in the
local database for report generation.

Requires a gemini-api-key secret. Run analyze first so an analysis exists.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInsight,
}

func runInsight(cmd *cobra.Command, args []string) error {
	keyword := strings.Join(args, " ")
	cfg := insightConfig()
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.Model = model
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("Gemini API key required: add gemini-api-key to .secrets/ or set insight.api_key")
	}

	ctx := context.Background()
	s, err := store.NewStore(dataDir())
	if err != nil {
		return err
	}
	defer s.Close()

	a, err := s.LatestAnalysis(ctx, keyword)
	if err != nil {
		return fmt.Errorf("%w: run analyze first", err)
	}

	backend := &insight.GeminiBackend{
		Client: httpClient(),
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
	}
	ins, err := insight.Generate(ctx, backend, a, cfg)
	if err != nil {
		return err
	}

	if err := s.RecordInsight(ctx, ins); err != nil {
		return fmt.Errorf("recording insight: %w", err)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return insight.FormatJSON(ins, os.Stdout)
	}
	insight.FormatText(ins, os.Stdout)
	return nil
}

func init() {
	insightCmd.Flags().String("model", "", "Gemini model to use (default from config)")
	insightCmd.Flags().Bool("json", false, "output the insight as JSON")

	rootCmd.AddCommand(insightCmd)
}
