// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bionicop/seo-flow/internal/analyze"
	"github.com/bionicop/seo-flow/internal/report"
	"github.com/bionicop/seo-flow/internal/store"
	"github.com/bionicop/seo-flow/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report [keyword]",
	Short: "Render a Markdown/HTML report for an analyzed keyword",
	Long: `Report assembles everything stored for a keyword — the latest analysis,
the trend across snapshots, and the latest AI insight — and renders it to
Markdown and/or HTML files under the reports directory. Sections without
stored data are omitted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	keyword := strings.Join(args, " ")

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

	data := report.Data{
		Analysis:      a,
		Opportunities: a.Opportunities,
		GeneratedAt:   time.Now().UTC(),
	}

	// Trend and insight are optional sections.
	days, _ := cmd.Flags().GetInt("trend-days")
	since := time.Now().UTC().AddDate(0, 0, -days)
	if snapshots, err := s.Snapshots(ctx, keyword, since); err == nil && len(snapshots) >= 2 {
		if ta, err := analyze.Trend(keyword, snapshots, days); err == nil {
			data.Trend = ta
		}
	}
	if ins, err := s.LatestInsight(ctx, keyword); err == nil {
		data.Insight = ins
	}

	cfg := reportConfig()
	if format, _ := cmd.Flags().GetString("format"); format != "" {
		switch types.ReportFormat(format) {
		case types.FormatMarkdown, types.FormatHTML, types.FormatBoth:
			cfg.Format = types.ReportFormat(format)
		default:
			return fmt.Errorf("unsupported format %q: use markdown, html, or both", format)
		}
	}

	paths, err := report.Write(data, cfg)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(os.Stdout, "Wrote", p)
	}
	return nil
}

func init() {
	reportCmd.Flags().String("format", "", "output format: markdown, html, both (default from config)")
	reportCmd.Flags().Int("trend-days", 30, "trend window in days for the trend section")

	rootCmd.AddCommand(reportCmd)
}
