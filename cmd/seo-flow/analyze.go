// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bionicop/seo-flow/internal/analyze"
	"github.com/bionicop/seo-flow/internal/collect"
	"github.com/bionicop/seo-flow/internal/store"
	"github.com/bionicop/seo-flow/pkg/types"
)

var (
	highColor   = color.New(color.FgRed, color.Bold)
	mediumColor = color.New(color.FgYellow)
	lowColor    = color.New(color.FgGreen)
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [keyword]",
	Short: "Score keyword competition and identify opportunities",
	Long: `Analyze collects a SERP snapshot for the keyword (or loads one saved with
collect --save via --snapshot), computes a 0-100 competition score from the
page's features, checks where the --target site ranks, and identifies
opportunities. The analysis is recorded in the local database and also
feeds a trend snapshot.`,
	Args: cobra.ArbitraryArgs,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if history, _ := cmd.Flags().GetInt("history"); history > 0 {
		if len(args) == 0 {
			return fmt.Errorf("keyword required with --history")
		}
		return showHistory(strings.Join(args, " "), history)
	}

	snapshotPath, _ := cmd.Flags().GetString("snapshot")

	var snap *types.SERPSnapshot
	switch {
	case snapshotPath != "":
		loaded, err := collect.LoadSnapshot(snapshotPath)
		if err != nil {
			return err
		}
		snap = loaded
	case len(args) > 0:
		backends, err := buildBackends("all")
		if err != nil {
			return err
		}
		query, err := queryFromFlags(cmd, args)
		if err != nil {
			return err
		}
		out, err := collect.Collect(context.Background(), query, backends, collectConfig(), os.Stderr)
		if err != nil {
			return err
		}
		snap = out.Snapshot
	default:
		return fmt.Errorf("keyword or --snapshot required")
	}

	target, _ := cmd.Flags().GetString("target")
	a, err := analyze.Analyze(snap, target)
	if err != nil {
		return err
	}

	ctx := context.Background()
	s, err := store.NewStore(dataDir())
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.RecordAnalysis(ctx, a); err != nil {
		return fmt.Errorf("recording analysis: %w", err)
	}
	if err := s.RecordSnapshot(ctx, analyze.SnapshotForTrend(snap)); err != nil {
		return fmt.Errorf("recording trend snapshot: %w", err)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}

	formatAnalysis(a)
	return nil
}

func difficultySprint(d types.Difficulty) string {
	switch d {
	case types.DifficultyHigh:
		return highColor.Sprint(d)
	case types.DifficultyMedium:
		return mediumColor.Sprint(d)
	default:
		return lowColor.Sprint(d)
	}
}

func prioritySprint(p types.Priority) string {
	switch p {
	case types.PriorityHigh:
		return highColor.Sprint(p)
	case types.PriorityMedium:
		return mediumColor.Sprint(p)
	default:
		return lowColor.Sprint(p)
	}
}

func formatAnalysis(a *types.KeywordAnalysis) {
	c := a.Competition
	fmt.Printf("Keyword: %s\n", a.Keyword)
	fmt.Printf("Competition: %d/100  Opportunity: %d/100  Difficulty: %s\n",
		c.CompetitionScore, c.OpportunityScore, difficultySprint(c.Difficulty))

	var features []string
	if c.HasKnowledgeGraph {
		features = append(features, "knowledge graph")
	}
	if c.HasFeaturedSnippet {
		features = append(features, "featured snippet")
	}
	if c.HasSitelinks {
		features = append(features, "sitelinks")
	}
	if len(features) > 0 {
		fmt.Printf("SERP features: %s\n", strings.Join(features, ", "))
	}
	if a.TargetURL != "" {
		if a.IsRanking {
			fmt.Printf("Target %s ranks at position %d\n", a.TargetURL, a.TargetPosition)
		} else {
			fmt.Printf("Target %s is not ranking\n", a.TargetURL)
		}
	}
	if len(c.TopDomains) > 0 {
		fmt.Printf("Top domains: %s\n", strings.Join(c.TopDomains, ", "))
	}

	if len(a.Opportunities) > 0 {
		fmt.Println("\nOpportunities:")
		for _, o := range a.Opportunities {
			fmt.Printf("  [%s] %s: %s\n", prioritySprint(o.Priority), o.Type, o.Recommendation)
		}
	}
	if len(a.RelatedKeywords) > 0 {
		fmt.Printf("\nRelated keywords (%d): %s\n", len(a.RelatedKeywords), strings.Join(a.RelatedKeywords, ", "))
	}
}

// showHistory prints past competition scores for a keyword, newest first.
func showHistory(keyword string, limit int) error {
	s, err := store.NewStore(dataDir())
	if err != nil {
		return err
	}
	defer s.Close()

	analyses, err := s.History(context.Background(), keyword, limit)
	if err != nil {
		return err
	}
	if len(analyses) == 0 {
		fmt.Println("No stored analyses.")
		return nil
	}

	fmt.Printf("%-12s  %11s  %11s  %s\n", "Date", "Competition", "Opportunity", "Difficulty")
	fmt.Println(strings.Repeat("-", 50))
	for _, a := range analyses {
		fmt.Printf("%-12s  %11d  %11d  %s\n",
			a.AnalyzedAt.Format("2006-01-02"),
			a.Competition.CompetitionScore, a.Competition.OpportunityScore,
			difficultySprint(a.Competition.Difficulty))
	}
	return nil
}

func init() {
	analyzeCmd.Flags().String("target", "", "site URL to check ranking for")
	analyzeCmd.Flags().Int("history", 0, "show the last N stored analyses instead of analyzing")
	analyzeCmd.Flags().String("snapshot", "", "analyze a saved snapshot file instead of collecting")
	analyzeCmd.Flags().String("country", "", "two-letter country code (default from config)")
	analyzeCmd.Flags().String("language", "", "two-letter language code (default from config)")
	analyzeCmd.Flags().String("location", "", "location string for localized results (Serper only)")
	analyzeCmd.Flags().String("time-filter", "", "freshness window: hour, day, week, month, year")
	analyzeCmd.Flags().Int("max-results", 0, "maximum organic results (0 = use config)")
	analyzeCmd.Flags().Bool("json", false, "output the analysis as JSON")

	rootCmd.AddCommand(analyzeCmd)
}
