// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the seo-flow CLI.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bionicop/seo-flow/internal/secrets"
	"github.com/bionicop/seo-flow/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the seo-flow CLI.
var rootCmd = &cobra.Command{
	Use:   "seo-flow",
	Short: "SEO keyword research and reporting automation",
	Long: `seo-flow automates SEO keyword research: it collects SERP data from
Serper.dev and DuckDuckGo, pulls performance metrics from Google Search
Console, scores keyword competition, detects ranking opportunities, tracks
trends over time, generates AI insights with Gemini, and renders Markdown
and HTML reports.

Each pipeline stage is a subcommand: collect, expand, gsc, analyze,
opportunities, trend, insight, report, and notify. Stages compose through
the local database under the data directory, so automations such as n8n
can chain them.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./seo-flow.yaml or ~/.config/seo-flow/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("seo-flow")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "seo-flow"))
		}
	}

	viper.SetDefault("collect.max_results", 10)
	viper.SetDefault("collect.country", "us")
	viper.SetDefault("collect.language", "en")
	viper.SetDefault("collect.timeout", "30s")
	viper.SetDefault("collect.min_request_interval", "1s")
	viper.SetDefault("collect.enable_serper", true)
	viper.SetDefault("collect.enable_duckduckgo", true)
	viper.SetDefault("collect.user_agent", "seo-flow/"+version)
	viper.SetDefault("gsc.window_days", 28)
	viper.SetDefault("gsc.row_limit", 1000)
	viper.SetDefault("insight.max_retries", 3)
	viper.SetDefault("store.data_dir", "./data")
	viper.SetDefault("store.max_results", 20)
	viper.SetDefault("report.dir", "./reports")
	viper.SetDefault("report.format", "both")

	viper.SetEnvPrefix("SEO_FLOW")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// httpClient returns a client with the configured collect timeout.
func httpClient() *http.Client {
	return &http.Client{Timeout: viper.GetDuration("collect.timeout")}
}

// collectConfig assembles the collection settings from config and secrets.
func collectConfig() types.CollectConfig {
	cfg := types.CollectConfig{
		MaxResults:         viper.GetInt("collect.max_results"),
		Country:            viper.GetString("collect.country"),
		Language:           viper.GetString("collect.language"),
		SerperAPIKey:       secretDefault("serper-api-key", viper.GetString("collect.serper_api_key")),
		MinRequestInterval: viper.GetDuration("collect.min_request_interval"),
		EnableSerper:       viper.GetBool("collect.enable_serper"),
		EnableDuckDuckGo:   viper.GetBool("collect.enable_duckduckgo"),
	}
	cfg.Timeout = viper.GetDuration("collect.timeout")
	cfg.UserAgent = viper.GetString("collect.user_agent")
	return cfg
}

func gscConfig() types.GSCConfig {
	cfg := types.GSCConfig{
		SiteURL:     viper.GetString("gsc.site_url"),
		AccessToken: secretDefault("gsc-access-token", viper.GetString("gsc.access_token")),
		WindowDays:  viper.GetInt("gsc.window_days"),
		RowLimit:    viper.GetInt("gsc.row_limit"),
		Country:     viper.GetString("gsc.country"),
	}
	cfg.Timeout = viper.GetDuration("collect.timeout")
	return cfg
}

func insightConfig() types.InsightConfig {
	cfg := types.InsightConfig{}
	cfg.Model = viper.GetString("insight.model")
	cfg.APIKey = secretDefault("gemini-api-key", viper.GetString("insight.api_key"))
	cfg.MaxRetries = viper.GetInt("insight.max_retries")
	return cfg
}

func reportConfig() types.ReportConfig {
	return types.ReportConfig{
		ReportsDir: viper.GetString("report.dir"),
		Format:     types.ReportFormat(viper.GetString("report.format")),
	}
}

func webhookConfig() types.WebhookConfig {
	cfg := types.WebhookConfig{
		URL: secretDefault("n8n-webhook-url", viper.GetString("webhook.url")),
	}
	cfg.Timeout = viper.GetDuration("collect.timeout")
	cfg.UserAgent = viper.GetString("collect.user_agent")
	return cfg
}

func storeConfig() types.StoreConfig {
	return types.StoreConfig{
		DataDir:    viper.GetString("store.data_dir"),
		MaxResults: viper.GetInt("store.max_results"),
	}
}

func dataDir() string {
	return storeConfig().DataDir
}

// pipelineConfig assembles the fully resolved configuration for every stage.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Collect: collectConfig(),
		GSC:     gscConfig(),
		Insight: insightConfig(),
		Store:   storeConfig(),
		Report:  reportConfig(),
		Webhook: webhookConfig(),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
