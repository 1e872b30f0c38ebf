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
	"github.com/bionicop/seo-flow/internal/httputil"
)

var expandCmd = &cobra.Command{
	Use:   "expand [keyword]",
	Short: "Expand a seed keyword into related keyword candidates",
	Long: `Expand queries Serper for the seed keyword and returns the related
searches and People Also Ask questions as keyword candidates, one per
line. Requires a Serper API key.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExpand,
}

func runExpand(cmd *cobra.Command, args []string) error {
	cfg := collectConfig()
	if cfg.SerperAPIKey == "" {
		return fmt.Errorf("expand requires a Serper API key: add serper-api-key to .secrets/ or set collect.serper_api_key")
	}

	backend := &collect.SerperBackend{
		Client:  httpClient(),
		APIKey:  cfg.SerperAPIKey,
		Limiter: httputil.NewLimiter(cfg.MinRequestInterval),
	}

	includePAA, _ := cmd.Flags().GetBool("paa")
	query := collect.Query{Keyword: strings.Join(args, " ")}
	keywords, err := backend.RelatedKeywords(context.Background(), query, cfg, includePAA)
	if err != nil {
		return err
	}
	if len(keywords) == 0 {
		fmt.Fprintln(os.Stderr, "No related keywords found.")
		return nil
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(keywords)
	}
	for _, kw := range keywords {
		fmt.Println(kw)
	}
	return nil
}

func init() {
	expandCmd.Flags().Bool("paa", true, "include People Also Ask questions as candidates")
	expandCmd.Flags().Bool("json", false, "output the candidates as JSON")

	rootCmd.AddCommand(expandCmd)
}
