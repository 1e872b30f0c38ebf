// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"strings"
	"testing"
)

func TestKeyword(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"valid keyword", "python tutorial", "python tutorial", false},
		{"trims whitespace", "  seo tools  ", "seo tools", false},
		{"two characters is minimum", "go", "go", false},
		{"one character fails", "x", "", true},
		{"empty fails", "", "", true},
		{"whitespace only fails", "   ", "", true},
		{"200 characters passes", strings.Repeat("k", 200), strings.Repeat("k", 200), false},
		{"201 characters fails", strings.Repeat("k", 201), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Keyword(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Keyword(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Keyword(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		wantErr bool
	}{
		{"comma separated", "python, AI, automation", []string{"python", "ai", "automation"}, false},
		{"semicolons and newlines", "seo;serp\nranking", []string{"seo", "serp", "ranking"}, false},
		{"deduplicates case-insensitively", "SEO, seo, Seo", []string{"seo"}, false},
		{"single keyword", "keyword research", []string{"keyword research"}, false},
		{"empty fails", "", nil, true},
		{"separators only fails", ",;,\n", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitKeywords(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitKeywords(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("SplitKeywords(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitKeywords(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"adds https scheme", "example.com", "https://example.com", false},
		{"keeps existing scheme", "http://example.com/page", "http://example.com/page", false},
		{"keeps https", "https://example.com", "https://example.com", false},
		{"empty fails", "", "", true},
		{"scheme without host fails", "https://", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeURL(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeURL(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCountryCode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"us", "us", false},
		{"IN", "in", false},
		{" uk ", "uk", false},
		{"usa", "", true},
		{"u", "", true},
		{"", "", true},
		{"1a", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := CountryCode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CountryCode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("CountryCode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"python tutorial", "python-tutorial"},
		{"SEO Tools 2026!", "seo-tools-2026"},
		{"  spaces  everywhere  ", "spaces-everywhere"},
		{"already-a-slug", "already-a-slug"},
		{"___", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slug(tt.in); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
