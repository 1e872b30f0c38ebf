// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bionicop/seo-flow/internal/analyze"
	"github.com/bionicop/seo-flow/internal/collect"
	"github.com/bionicop/seo-flow/pkg/types"
)

var opportunitiesCmd = &cobra.Command{
	Use:   "opportunities",
	Short: "Detect ranking opportunities from Search Console data",
	Long: `Opportunities scans Search Console metrics for actionable findings: pages
ranking well but earning few clicks, striking-distance positions 4-10, and
high-impression queries that convert almost nothing. Results are ranked by
a priority score.

Reads from the API by default; --report analyzes a YAML file saved with
gsc --save instead.`,
	RunE: runOpportunities,
}

func runOpportunities(cmd *cobra.Command, args []string) error {
	reportPath, _ := cmd.Flags().GetString("report")

	var report *types.GSCReport
	if reportPath != "" {
		loaded, err := collect.LoadGSCReport(reportPath)
		if err != nil {
			return err
		}
		report = loaded
	} else {
		cfg := gscConfig()
		client := &collect.GSCClient{Client: httpClient(), AccessToken: cfg.AccessToken}
		fetched, err := client.Fetch(context.Background(), cfg)
		if err != nil {
			return err
		}
		report = fetched
	}

	opps := analyze.Prioritize(analyze.DetectFromGSC(report))

	limit, _ := cmd.Flags().GetInt("limit")
	if limit > 0 && len(opps) > limit {
		opps = opps[:limit]
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(opps)
	}

	formatOpportunities(opps)
	return nil
}

func formatOpportunities(opps []types.Opportunity) {
	if len(opps) == 0 {
		fmt.Println("No opportunities found.")
		return
	}

	fmt.Printf("%-8s  %-20s  %-35s  %4s  %s\n", "Priority", "Type", "Query", "Pos", "Impact")
	fmt.Println(strings.Repeat("-", 95))

	for _, o := range opps {
		query := o.Query
		if len(query) > 35 {
			query = query[:32] + "..."
		}
		pos := "-"
		if o.CurrentPosition > 0 {
			pos = fmt.Sprintf("%d", o.CurrentPosition)
		}
		fmt.Printf("%-8s  %-20s  %-35s  %4s  %s\n",
			prioritySprint(o.Priority), o.Type, query, pos, o.EstimatedImpact)
	}

	fmt.Printf("\n%d opportunities\n", len(opps))
}

func init() {
	opportunitiesCmd.Flags().String("report", "", "analyze a saved Search Console YAML file instead of fetching")
	opportunitiesCmd.Flags().Int("limit", 0, "maximum opportunities to show (0 = all)")
	opportunitiesCmd.Flags().Bool("json", false, "output opportunities as JSON")

	rootCmd.AddCommand(opportunitiesCmd)
}
