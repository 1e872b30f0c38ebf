// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bionicop/seo-flow/internal/collect"
	"github.com/bionicop/seo-flow/internal/httputil"
	"github.com/bionicop/seo-flow/internal/validate"
)

var collectCmd = &cobra.Command{
	Use:   "collect [keyword]",
	Short: "Collect SERP data for a keyword",
	Long: `Collect queries the configured SERP backends (Serper.dev when an API key
is available, DuckDuckGo otherwise or additionally) for a keyword and
prints the merged, deduplicated organic results together with SERP
features: knowledge graph, People Also Ask, and related searches.

With --save the snapshot is written as YAML under the data directory for
later analysis.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCollect,
}

// buildBackends assembles the collector backends from config. Serper needs
// an API key; DuckDuckGo is keyless. The --backend flag narrows the set.
func buildBackends(selector string) ([]collect.Backend, error) {
	cfg := collectConfig()
	client := httpClient()

	var backends []collect.Backend
	useSerper := selector == "serper" || (selector == "all" && cfg.EnableSerper)
	useDDG := selector == "duckduckgo" || (selector == "all" && cfg.EnableDuckDuckGo)

	// Each backend talks to its own host, so each gets its own limiter.
	if useSerper && cfg.SerperAPIKey != "" {
		backends = append(backends, &collect.SerperBackend{
			Client:  client,
			APIKey:  cfg.SerperAPIKey,
			Limiter: httputil.NewLimiter(cfg.MinRequestInterval),
		})
	}
	if useDDG {
		backends = append(backends, &collect.DuckDuckGoBackend{
			Client:  client,
			Limiter: httputil.NewLimiter(cfg.MinRequestInterval),
		})
	}

	if len(backends) == 0 {
		if selector == "serper" {
			return nil, fmt.Errorf("serper backend requires an API key: add serper-api-key to .secrets/ or set collect.serper_api_key")
		}
		return nil, fmt.Errorf("no backends available for selector %q", selector)
	}
	return backends, nil
}

// queryFromFlags builds a collection query from the shared localization
// flags. Country and language codes fail fast here, before any backend
// sees them.
func queryFromFlags(cmd *cobra.Command, args []string) (collect.Query, error) {
	country, _ := cmd.Flags().GetString("country")
	language, _ := cmd.Flags().GetString("language")
	location, _ := cmd.Flags().GetString("location")
	timeFilter, _ := cmd.Flags().GetString("time-filter")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	var err error
	if country != "" {
		if country, err = validate.CountryCode(country); err != nil {
			return collect.Query{}, err
		}
	}
	if language != "" {
		if language, err = validate.LanguageCode(language); err != nil {
			return collect.Query{}, err
		}
	}

	return collect.Query{
		Keyword:    strings.Join(args, " "),
		Country:    country,
		Language:   language,
		Location:   location,
		TimeFilter: timeFilter,
		MaxResults: maxResults,
	}, nil
}

func runCollect(cmd *cobra.Command, args []string) error {
	selector, _ := cmd.Flags().GetString("backend")
	backends, err := buildBackends(selector)
	if err != nil {
		return err
	}

	// Comma- or newline-separated input collects each keyword in turn.
	keywords, err := validate.SplitKeywords(strings.Join(args, " "))
	if err != nil {
		return err
	}

	for i, keyword := range keywords {
		query, err := queryFromFlags(cmd, args)
		if err != nil {
			return err
		}
		query.Keyword = keyword

		out, err := collect.Collect(context.Background(), query, backends, collectConfig(), os.Stderr)
		if err != nil {
			return err
		}

		save, _ := cmd.Flags().GetBool("save")
		if save {
			path, err := collect.SaveSnapshot(dataDir(), out.Snapshot)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Saved snapshot:", path)
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			if err := collect.FormatJSON(out, os.Stdout); err != nil {
				return err
			}
			continue
		}
		if i > 0 {
			fmt.Println()
		}
		collect.FormatTable(out, os.Stdout)
	}
	return nil
}

func init() {
	collectCmd.Flags().String("country", "", "two-letter country code (default from config)")
	collectCmd.Flags().String("language", "", "two-letter language code (default from config)")
	collectCmd.Flags().String("location", "", "location string for localized results (Serper only)")
	collectCmd.Flags().String("time-filter", "", "freshness window: hour, day, week, month, year")
	collectCmd.Flags().Int("max-results", 0, "maximum organic results (0 = use config)")
	collectCmd.Flags().String("backend", "all", "backend to query: serper, duckduckgo, all")
	collectCmd.Flags().Bool("save", false, "save the snapshot as YAML under the data directory")
	collectCmd.Flags().Bool("json", false, "output the snapshot as JSON")

	rootCmd.AddCommand(collectCmd)
}
