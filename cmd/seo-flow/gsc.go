// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bionicop/seo-flow/internal/collect"
	"github.com/bionicop/seo-flow/pkg/types"
)

var gscCmd = &cobra.Command{
	Use:   "gsc",
	Short: "Fetch performance metrics from Google Search Console",
	Long: `Gsc queries the Search Console API for query and page metrics over the
trailing reporting window (default 28 days, ending three days ago since
fresher data is incomplete). Requires a gsc-access-token secret and a
configured site URL.

With --save the report is written as YAML under the data directory so the
opportunities command can reuse it without refetching.`,
	RunE: runGSC,
}

func runGSC(cmd *cobra.Command, args []string) error {
	cfg := gscConfig()
	if site, _ := cmd.Flags().GetString("site"); site != "" {
		cfg.SiteURL = site
	}
	if days, _ := cmd.Flags().GetInt("window-days"); days > 0 {
		cfg.WindowDays = days
	}
	if limit, _ := cmd.Flags().GetInt("row-limit"); limit > 0 {
		cfg.RowLimit = limit
	}

	client := &collect.GSCClient{Client: httpClient(), AccessToken: cfg.AccessToken}
	report, err := client.Fetch(context.Background(), cfg)
	if err != nil {
		return err
	}

	save, _ := cmd.Flags().GetBool("save")
	if save {
		path, err := collect.SaveGSCReport(dataDir(), report)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Saved report:", path)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	formatGSCReport(report)
	return nil
}

func formatGSCReport(report *types.GSCReport) {
	fmt.Printf("Search Console: %s (%s to %s)\n\n", report.SiteURL, report.StartDate, report.EndDate)

	fmt.Printf("%-40s  %7s  %11s  %6s  %8s\n", "Query", "Clicks", "Impressions", "CTR", "Position")
	fmt.Println(strings.Repeat("-", 80))

	for _, m := range report.Metrics {
		query := m.Query
		if len(query) > 40 {
			query = query[:37] + "..."
		}
		fmt.Printf("%-40s  %7d  %11d  %5.1f%%  %8.1f\n",
			query, m.Clicks, m.Impressions, m.CTR*100, m.Position)
	}

	fmt.Printf("\n%d rows, %d clicks, %d impressions, average CTR %.1f%%, average position %.1f\n",
		len(report.Metrics), report.TotalClicks, report.TotalImpressions,
		report.AverageCTR*100, report.AveragePosition)
}

func init() {
	gscCmd.Flags().String("site", "", "Search Console property (e.g. sc-domain:example.com)")
	gscCmd.Flags().Int("window-days", 0, "reporting window in days (0 = use config)")
	gscCmd.Flags().Int("row-limit", 0, "maximum rows to fetch (0 = use config)")
	gscCmd.Flags().Bool("save", false, "save the report as YAML under the data directory")
	gscCmd.Flags().Bool("json", false, "output the report as JSON")

	rootCmd.AddCommand(gscCmd)
}
