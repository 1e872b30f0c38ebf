// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bionicop/seo-flow/internal/notify"
	"github.com/bionicop/seo-flow/internal/store"
	"github.com/bionicop/seo-flow/pkg/types"
)

var notifyCmd = &cobra.Command{
	Use:   "notify [keyword]",
	Short: "Post a run summary to the configured n8n webhook",
	Long: `Notify posts the latest stored analysis of a keyword (plus the latest AI
insight, when one exists) as JSON to the configured webhook URL, so n8n
workflows can route it onward. Requires an n8n-webhook-url secret or
webhook.url config entry.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNotify,
}

func runNotify(cmd *cobra.Command, args []string) error {
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

	var ins *types.Insight
	if latest, err := s.LatestInsight(ctx, keyword); err == nil {
		ins = latest
	}

	reportPaths, _ := cmd.Flags().GetStringSlice("report-path")
	payload := notify.FromAnalysis(a, ins, reportPaths)

	if err := notify.Send(ctx, httpClient(), webhookConfig(), payload); err != nil {
		return err
	}
	fmt.Println("Notification sent.")
	return nil
}

func init() {
	notifyCmd.Flags().StringSlice("report-path", nil, "report file paths to include in the payload")

	rootCmd.AddCommand(notifyCmd)
}
