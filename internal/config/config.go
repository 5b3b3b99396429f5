package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds ghscout settings after defaults have been applied.
type Config struct {
	APIURL         string
	PageSize       int
	Debounce       time.Duration
	RequestTimeout time.Duration
	FeaturedQuery  string
	FeaturedCount  int
	UseGHAuth      bool
	// RateLimitPoll is the rate limit refresh interval; zero disables polling.
	RateLimitPoll time.Duration
	// Suggestions replaces the built-in suggestion catalog when non-empty.
	Suggestions []SuggestionGroup
}

// SuggestionGroup is a titled list of canned queries.
type SuggestionGroup struct {
	Title string       `toml:"title"`
	Items []Suggestion `toml:"items"`
}

// Suggestion is one canned query.
type Suggestion struct {
	Label string `toml:"label"`
	Query string `toml:"query"`
}

const (
	defaultConfigPath     = "~/.config/ghscout/config.toml"
	defaultAPIURL         = "https://api.github.com"
	defaultPageSize       = 10
	maxPageSize           = 100
	defaultDebounceMS     = 500
	defaultTimeoutSeconds = 10
	defaultFeaturedQuery  = "followers:>10000"
	defaultFeaturedCount  = 4
	defaultPollSeconds    = 60
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		PageSize:       defaultPageSize,
		Debounce:       defaultDebounceMS * time.Millisecond,
		RequestTimeout: defaultTimeoutSeconds * time.Second,
		FeaturedQuery:  defaultFeaturedQuery,
		FeaturedCount:  defaultFeaturedCount,
		UseGHAuth:      true,
		RateLimitPoll:  defaultPollSeconds * time.Second,
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the ghscout config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL                string            `toml:"api_url"`
		PageSize              int               `toml:"page_size"`
		DebounceMS            int               `toml:"debounce_ms"`
		RequestTimeoutSeconds int               `toml:"request_timeout_seconds"`
		FeaturedQuery         string            `toml:"featured_query"`
		FeaturedCount         int               `toml:"featured_count"`
		UseGHAuth             *bool             `toml:"use_gh_auth"`
		RateLimitPollSeconds  *int              `toml:"rate_limit_poll_seconds"`
		Suggestions           []SuggestionGroup `toml:"suggestions"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = strings.TrimRight(v, "/")
	}
	if raw.PageSize > 0 {
		cfg.PageSize = min(raw.PageSize, maxPageSize)
	}
	if raw.DebounceMS > 0 {
		cfg.Debounce = time.Duration(raw.DebounceMS) * time.Millisecond
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.FeaturedQuery); v != "" {
		cfg.FeaturedQuery = v
	}
	if raw.FeaturedCount > 0 {
		cfg.FeaturedCount = min(raw.FeaturedCount, maxPageSize)
	}
	if raw.UseGHAuth != nil {
		cfg.UseGHAuth = *raw.UseGHAuth
	}
	if raw.RateLimitPollSeconds != nil {
		cfg.RateLimitPoll = time.Duration(max(*raw.RateLimitPollSeconds, 0)) * time.Second
	}
	cfg.Suggestions = cleanSuggestions(raw.Suggestions)

	return cfg, nil
}

// Host returns the GitHub host that owns APIURL, the key gh uses for stored
// credentials: api.github.com maps to github.com, enterprise hosts map to
// themselves.
func (c Config) Host() string {
	raw := strings.TrimSpace(c.APIURL)
	if raw == "" {
		raw = defaultAPIURL
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return "github.com"
	}
	host := strings.ToLower(u.Hostname())
	if host == "api.github.com" {
		return "github.com"
	}
	return host
}

func cleanSuggestions(groups []SuggestionGroup) []SuggestionGroup {
	var out []SuggestionGroup
	for _, g := range groups {
		g.Title = strings.TrimSpace(g.Title)
		var items []Suggestion
		for _, s := range g.Items {
			s.Label = strings.TrimSpace(s.Label)
			s.Query = strings.TrimSpace(s.Query)
			if s.Query == "" {
				continue
			}
			items = append(items, s)
		}
		if len(items) == 0 {
			continue
		}
		g.Items = items
		out = append(out, g)
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
