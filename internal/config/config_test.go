package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.PageSize != 10 || cfg.Debounce != 500*time.Millisecond {
		t.Fatalf("PageSize/Debounce = %d/%v, want 10/500ms", cfg.PageSize, cfg.Debounce)
	}
	if cfg.RequestTimeout != 10*time.Second || cfg.RateLimitPoll != time.Minute {
		t.Fatalf("RequestTimeout/RateLimitPoll = %v/%v", cfg.RequestTimeout, cfg.RateLimitPoll)
	}
	if cfg.FeaturedQuery != "followers:>10000" || cfg.FeaturedCount != 4 {
		t.Fatalf("featured = %q/%d", cfg.FeaturedQuery, cfg.FeaturedCount)
	}
	if !cfg.UseGHAuth {
		t.Fatalf("UseGHAuth = false, want true by default")
	}
	if len(cfg.Suggestions) != 0 {
		t.Fatalf("Suggestions = %#v, want none", cfg.Suggestions)
	}
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "ghscout")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("page_size = 25\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PageSize != 25 {
		t.Fatalf("PageSize = %d, want 25", cfg.PageSize)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "  https://ghe.example.com/api/v3/  "
page_size = 250
debounce_ms = 300
request_timeout_seconds = 3
featured_query = "  followers:>50000  "
featured_count = 6
use_gh_auth = false
rate_limit_poll_seconds = 0

[[suggestions]]
title = " Teams "
items = [
  { label = "Go", query = " language:go " },
  { label = "blank", query = "   " },
]

[[suggestions]]
title = "Empty"
items = []
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "https://ghe.example.com/api/v3" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.PageSize != 100 {
		t.Fatalf("PageSize = %d, want clamp to 100", cfg.PageSize)
	}
	if cfg.Debounce != 300*time.Millisecond || cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("Debounce/RequestTimeout = %v/%v", cfg.Debounce, cfg.RequestTimeout)
	}
	if cfg.FeaturedQuery != "followers:>50000" || cfg.FeaturedCount != 6 {
		t.Fatalf("featured = %q/%d", cfg.FeaturedQuery, cfg.FeaturedCount)
	}
	if cfg.UseGHAuth {
		t.Fatalf("UseGHAuth = true, want false")
	}
	if cfg.RateLimitPoll != 0 {
		t.Fatalf("RateLimitPoll = %v, want disabled", cfg.RateLimitPoll)
	}
	if len(cfg.Suggestions) != 1 {
		t.Fatalf("Suggestions = %#v, want one non-empty group", cfg.Suggestions)
	}
	g := cfg.Suggestions[0]
	if g.Title != "Teams" || len(g.Items) != 1 || g.Items[0].Query != "language:go" {
		t.Fatalf("group = %#v", g)
	}
	if cfg.Host() != "ghe.example.com" {
		t.Fatalf("Host = %q, want ghe.example.com", cfg.Host())
	}
}

func TestLoad_ZeroValuesUseDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "   "
page_size = 0
debounce_ms = -5
featured_query = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Default()
	if cfg.APIURL != want.APIURL || cfg.PageSize != want.PageSize || cfg.Debounce != want.Debounce || cfg.FeaturedQuery != want.FeaturedQuery {
		t.Fatalf("cfg = %#v, want defaults %#v", cfg, want)
	}
	if cfg.RateLimitPoll != want.RateLimitPoll {
		t.Fatalf("RateLimitPoll = %v, want default when key absent", cfg.RateLimitPoll)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestHost(t *testing.T) {
	cases := map[string]string{
		"":                               "github.com",
		"https://api.github.com":         "github.com",
		"api.github.com":                 "github.com",
		"https://GHE.example.com/api/v3": "ghe.example.com",
		"http://localhost:8080":          "localhost",
	}
	for in, want := range cases {
		if got := (Config{APIURL: in}).Host(); got != want {
			t.Fatalf("Host(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
