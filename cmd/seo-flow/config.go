// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Config prints the fully resolved pipeline configuration after defaults,
the config file, environment variables, and secrets have been applied.
Secret values are redacted.`,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	redact(&cfg.Collect.SerperAPIKey)
	redact(&cfg.GSC.AccessToken)
	redact(&cfg.Insight.APIKey)
	redact(&cfg.Webhook.URL)

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	return enc.Encode(cfg)
}

func redact(s *string) {
	if *s != "" {
		*s = "[redacted]"
	}
}

func init() {
	rootCmd.AddCommand(configCmd)
}
