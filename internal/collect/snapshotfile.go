// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/bionicop/seo-flow/internal/validate"
	"github.com/bionicop/seo-flow/pkg/types"
)

// SaveSnapshot writes a SERP snapshot as YAML under dir, named by keyword
// slug and fetch date. Returns the written path.
func SaveSnapshot(dir string, snap *types.SERPSnapshot) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating snapshot dir: %w", err)
	}

	name := fmt.Sprintf("%s-%s.yaml", validate.Slug(snap.Keyword), snap.FetchedAt.Format("2006-01-02"))
	path := filepath.Join(dir, name)

	data, err := yaml.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a YAML snapshot file written by SaveSnapshot.
func LoadSnapshot(path string) (*types.SERPSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap types.SERPSnapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	if snap.Keyword == "" {
		return nil, fmt.Errorf("snapshot %s has no keyword", path)
	}
	return &snap, nil
}

// SaveGSCReport writes a Search Console report as YAML under dir.
// Returns the written path.
func SaveGSCReport(dir string, report *types.GSCReport) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report dir: %w", err)
	}

	name := fmt.Sprintf("gsc-%s-%s.yaml", validate.Slug(report.SiteURL), report.EndDate)
	path := filepath.Join(dir, name)

	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// LoadGSCReport reads a YAML report file written by SaveGSCReport.
func LoadGSCReport(path string) (*types.GSCReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var report types.GSCReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	if report.SiteURL == "" {
		return nil, fmt.Errorf("report %s has no site URL", path)
	}
	return &report, nil
}
