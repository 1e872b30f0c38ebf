// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the seo-flow pipeline:
// SERP results and snapshots, Search Console metrics, analysis outputs,
// and per-stage configuration.
package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "seo-flow/0.2").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CollectConfig holds settings for the SERP collection stage.
type CollectConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the number of results to request per backend (1-100, default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Country is the ISO 3166-1 alpha-2 country code for localization (default "us").
	Country string `json:"country" yaml:"country"`

	// Language is the ISO 639-1 language code for results (default "en").
	Language string `json:"language" yaml:"language"`

	// EnableSerper controls whether the Serper.dev backend is used.
	EnableSerper bool `json:"enable_serper" yaml:"enable_serper"`

	// EnableDuckDuckGo controls whether the keyless DuckDuckGo backend is used.
	EnableDuckDuckGo bool `json:"enable_duckduckgo" yaml:"enable_duckduckgo"`

	// SerperAPIKey authenticates requests against the Serper.dev API.
	SerperAPIKey string `json:"serper_api_key,omitempty" yaml:"serper_api_key,omitempty"`

	// MinRequestInterval is the minimum delay between consecutive requests
	// to the same backend (default 500ms).
	MinRequestInterval time.Duration `json:"min_request_interval" yaml:"min_request_interval"`
}

// GSCConfig holds settings for the Google Search Console stage.
type GSCConfig struct {
	HTTPConfig `yaml:",inline"`

	// SiteURL is the verified property, either "sc-domain:example.com"
	// or a full URL prefix like "https://example.com/".
	SiteURL string `json:"site_url" yaml:"site_url"`

	// AccessToken is the OAuth bearer token for the Search Console API.
	AccessToken string `json:"access_token,omitempty" yaml:"access_token,omitempty"`

	// WindowDays is the reporting window length (default 28). The window
	// ends three days before today because Search Console data lags.
	WindowDays int `json:"window_days" yaml:"window_days"`

	// RowLimit is the maximum number of rows to fetch (default 100).
	RowLimit int `json:"row_limit" yaml:"row_limit"`

	// Country optionally restricts rows to one country (ISO alpha-2).
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gemini-2.0-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// InsightConfig holds settings for the AI insight stage.
type InsightConfig struct {
	AIConfig `yaml:",inline"`
}

// StoreConfig holds settings for the local analysis store.
type StoreConfig struct {
	// DataDir is the directory containing the SQLite database (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ReportFormat selects the report output format.
type ReportFormat string

const (
	FormatMarkdown ReportFormat = "markdown"
	FormatHTML     ReportFormat = "html"
	FormatBoth     ReportFormat = "both"
)

// ReportConfig holds settings for the report rendering stage.
type ReportConfig struct {
	// ReportsDir is the directory for generated reports (default "reports").
	ReportsDir string `json:"reports_dir" yaml:"reports_dir"`

	// Format selects the output format: markdown, html, or both.
	Format ReportFormat `json:"format" yaml:"format"`
}

// WebhookConfig holds settings for the n8n notification stage.
type WebhookConfig struct {
	HTTPConfig `yaml:",inline"`

	// URL is the n8n webhook endpoint that receives run summaries.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Collect CollectConfig `json:"collect" yaml:"collect"`
	GSC     GSCConfig     `json:"gsc" yaml:"gsc"`
	Insight InsightConfig `json:"insight" yaml:"insight"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Report  ReportConfig  `json:"report" yaml:"report"`
	Webhook WebhookConfig `json:"webhook" yaml:"webhook"`
}
