// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bionicop/seo-flow/internal/analyze"
	"github.com/bionicop/seo-flow/internal/collect"
	"github.com/bionicop/seo-flow/internal/store"
	"github.com/bionicop/seo-flow/pkg/types"
)

var trendCmd = &cobra.Command{
	Use:   "trend [keyword]",
	Short: "Track a keyword's interest trend",
	Long: `Trend collects a fresh SERP snapshot for the keyword, records it, and
compares the snapshots stored over the trailing window (default 30 days)
to report whether interest is growing, declining, or stable. At least two
snapshots inside the window are required; --stored-only skips collection
and reads the history alone.

Without a keyword, trend lists the keywords that have stored snapshots.`,
	Args: cobra.ArbitraryArgs,
	RunE: runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	s, err := store.NewStore(dataDir())
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	if len(args) == 0 {
		return listTrackedKeywords(ctx, s)
	}

	keyword := strings.Join(args, " ")
	days, _ := cmd.Flags().GetInt("days")

	if storedOnly, _ := cmd.Flags().GetBool("stored-only"); !storedOnly {
		backends, err := buildBackends("all")
		if err != nil {
			return err
		}
		out, err := collect.Collect(ctx, collect.Query{Keyword: keyword}, backends, collectConfig(), os.Stderr)
		if err != nil {
			return err
		}
		if err := s.RecordSnapshot(ctx, analyze.SnapshotForTrend(out.Snapshot)); err != nil {
			return fmt.Errorf("recording trend snapshot: %w", err)
		}
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	snapshots, err := s.Snapshots(ctx, keyword, since)
	if err != nil {
		return err
	}

	ta, err := analyze.Trend(keyword, snapshots, days)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ta)
	}

	formatTrend(ta)
	return nil
}

func listTrackedKeywords(ctx context.Context, s *store.Store) error {
	keywords, err := s.Keywords(ctx)
	if err != nil {
		return err
	}
	if len(keywords) == 0 {
		fmt.Println("No tracked keywords. Run analyze or trend with a keyword first.")
		return nil
	}
	fmt.Printf("Tracked keywords (%d):\n", len(keywords))
	for _, kw := range keywords {
		fmt.Printf("  %s\n", kw)
	}
	return nil
}

func formatTrend(ta *types.TrendAnalysis) {
	fmt.Printf("Trend for %q over %d days: %s (%+.1f%%)\n\n",
		ta.Keyword, ta.PeriodDays, ta.Direction, ta.GrowthPercent)

	fmt.Printf("%-12s  %7s  %7s  %5s  %s\n", "Date", "Organic", "Related", "PAA", "Top domain")
	fmt.Println(strings.Repeat("-", 60))
	for _, snap := range ta.Snapshots {
		fmt.Printf("%-12s  %7d  %7d  %5d  %s\n",
			snap.TakenAt.Format("2006-01-02"), snap.OrganicCount,
			snap.RelatedCount, snap.PAACount, snap.TopDomain)
	}
}

func init() {
	trendCmd.Flags().Int("days", 30, "history window in days")
	trendCmd.Flags().Bool("stored-only", false, "skip collection and read stored snapshots only")
	trendCmd.Flags().Bool("json", false, "output the trend as JSON")

	rootCmd.AddCommand(trendCmd)
}
