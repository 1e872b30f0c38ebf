// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders keyword analyses into Markdown and HTML files.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bionicop/seo-flow/internal/validate"
	"github.com/bionicop/seo-flow/pkg/types"
)

// Data is everything one report can draw on. Only Analysis is required;
// the other sections render when present.
type Data struct {
	Analysis      *types.KeywordAnalysis
	Opportunities []types.Opportunity
	Trend         *types.TrendAnalysis
	Insight       *types.Insight
	GeneratedAt   time.Time
}

// Write renders the report in the configured format(s) under cfg.ReportsDir
// and returns the written paths.
func Write(data Data, cfg types.ReportConfig) ([]string, error) {
	if data.Analysis == nil {
		return nil, fmt.Errorf("report needs an analysis")
	}
	if data.GeneratedAt.IsZero() {
		data.GeneratedAt = time.Now().UTC()
	}

	dir := cfg.ReportsDir
	if dir == "" {
		dir = "./reports"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating reports dir: %w", err)
	}

	base := fmt.Sprintf("%s-%s", validate.Slug(data.Analysis.Keyword), data.GeneratedAt.Format("2006-01-02"))

	format := cfg.Format
	if format == "" {
		format = types.FormatBoth
	}

	var paths []string
	if format == types.FormatMarkdown || format == types.FormatBoth {
		path := filepath.Join(dir, base+".md")
		if err := renderToFile(path, markdownTmpl, data); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	if format == types.FormatHTML || format == types.FormatBoth {
		path := filepath.Join(dir, base+".html")
		if err := renderToFile(path, htmlTmpl, data); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// renderer is satisfied by both text and html templates.
type renderer interface {
	Execute(w io.Writer, data any) error
}

func renderToFile(path string, tmpl renderer, data Data) error {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Errorf("rendering %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
