// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bionicop/seo-flow/pkg/types"
)

const ddgFixture = `<html><body>
<div class="result">
  <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2F&amp;rut=abc">The Go Programming Language</a>
  <a class="result__snippet" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2F">Build <b>simple</b>, secure, scalable systems.</a>
</div>
<div class="result">
  <a rel="nofollow" class="result__a" href="https://en.wikipedia.org/wiki/Go_(programming_language)">Go &#x2d; Wikipedia</a>
  <a class="result__snippet" href="https://en.wikipedia.org/wiki/Go_(programming_language)">Go is a statically typed language.</a>
</div>
</body></html>`

func TestDuckDuckGoCollect(t *testing.T) {
	var gotQuery, gotRegion string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotRegion = r.URL.Query().Get("kl")
		w.Write([]byte(ddgFixture))
	}))
	defer server.Close()

	oldBase := ddgAPIBase
	ddgAPIBase = server.URL + "/html/"
	defer func() { ddgAPIBase = oldBase }()

	b := &DuckDuckGoBackend{Client: server.Client()}
	query := Query{Keyword: "golang", Country: "us", Language: "en", MaxResults: 10}

	snap, err := b.Collect(context.Background(), query, types.CollectConfig{})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if gotQuery != "golang" {
		t.Errorf("q = %q", gotQuery)
	}
	if gotRegion != "us-en" {
		t.Errorf("kl = %q, want us-en", gotRegion)
	}

	if len(snap.Organic) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(snap.Organic), snap.Organic)
	}

	first := snap.Organic[0]
	if first.URL != "https://go.dev/" {
		t.Errorf("redirect not unwrapped: URL = %q", first.URL)
	}
	if first.Position != 1 || first.Domain != "go.dev" || first.Source != "duckduckgo" {
		t.Errorf("first result = %+v", first)
	}
	if first.Snippet != "Build simple, secure, scalable systems." {
		t.Errorf("snippet tags not stripped: %q", first.Snippet)
	}

	second := snap.Organic[1]
	if second.Title != "Go - Wikipedia" {
		t.Errorf("entities not unescaped: title = %q", second.Title)
	}
	if second.Domain != "en.wikipedia.org" {
		t.Errorf("second domain = %q", second.Domain)
	}
}

func TestDuckDuckGoCollectRespectsMax(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ddgFixture))
	}))
	defer server.Close()

	oldBase := ddgAPIBase
	ddgAPIBase = server.URL + "/html/"
	defer func() { ddgAPIBase = oldBase }()

	b := &DuckDuckGoBackend{Client: server.Client()}
	snap, err := b.Collect(context.Background(), Query{Keyword: "go", MaxResults: 1}, types.CollectConfig{})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(snap.Organic) != 1 {
		t.Errorf("got %d results, want 1", len(snap.Organic))
	}
}

func TestDuckDuckGoCollectNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>No results.</body></html>"))
	}))
	defer server.Close()

	oldBase := ddgAPIBase
	ddgAPIBase = server.URL + "/html/"
	defer func() { ddgAPIBase = oldBase }()

	b := &DuckDuckGoBackend{Client: server.Client()}
	_, err := b.Collect(context.Background(), Query{Keyword: "go"}, types.CollectConfig{})
	if err == nil {
		t.Fatal("Collect() error = nil, want no-results error")
	}
}

func TestResolveDDGRedirect(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{"redirect", "https://duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc%2F&rut=xyz", "https://go.dev/doc/"},
		{"scheme-relative redirect", "//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2F", "https://go.dev/"},
		{"direct link", "https://example.com/page", "https://example.com/page"},
		{"garbage", "::not a url::", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveDDGRedirect(tt.link); got != tt.want {
				t.Errorf("resolveDDGRedirect(%q) = %q, want %q", tt.link, got, tt.want)
			}
		})
	}
}
