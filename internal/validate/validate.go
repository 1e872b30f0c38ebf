// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate normalizes and checks user-supplied inputs: keywords,
// URLs, and localization codes.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	minKeywordLen = 2
	maxKeywordLen = 200
)

var twoLetterCode = regexp.MustCompile(`^[a-z]{2}$`)

// Keyword trims and validates a single keyword. Keywords must be between
// 2 and 200 characters after trimming.
func Keyword(keyword string) (string, error) {
	keyword = strings.TrimSpace(keyword)
	if len(keyword) < minKeywordLen {
		return "", fmt.Errorf("keyword must be at least %d characters", minKeywordLen)
	}
	if len(keyword) > maxKeywordLen {
		return "", fmt.Errorf("keyword cannot exceed %d characters", maxKeywordLen)
	}
	return keyword, nil
}

// SplitKeywords splits a raw keyword list on commas, semicolons, and
// newlines, then trims, lowercases, and deduplicates the parts. It fails
// when no valid keyword remains.
func SplitKeywords(raw string) ([]string, error) {
	parts := regexp.MustCompile(`[,;\n]+`).Split(raw, -1)

	var cleaned []string
	seen := make(map[string]bool)
	for _, p := range parts {
		kw := strings.ToLower(strings.TrimSpace(p))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		cleaned = append(cleaned, kw)
	}

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("no valid keywords in %q", raw)
	}
	return cleaned, nil
}

// NormalizeURL validates a URL, defaulting the scheme to https when missing.
func NormalizeURL(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("URL cannot be empty")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing URL %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid URL: %q", raw)
	}
	return raw, nil
}

// CountryCode validates an ISO 3166-1 alpha-2 country code and returns
// it lowercased.
func CountryCode(code string) (string, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if !twoLetterCode.MatchString(code) {
		return "", fmt.Errorf("invalid country code %q", code)
	}
	return code, nil
}

// LanguageCode validates an ISO 639-1 language code and returns it
// lowercased.
func LanguageCode(code string) (string, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if !twoLetterCode.MatchString(code) {
		return "", fmt.Errorf("invalid language code %q", code)
	}
	return code, nil
}

// Slug converts a keyword to a filesystem-safe slug: lowercased, with
// runs of non-alphanumeric characters collapsed to single hyphens.
func Slug(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
