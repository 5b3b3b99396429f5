package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// UserFetcher defines the subset of the GitHub API ghscout depends on.
// This interface is implemented by *Client and can be replaced in tests.
type UserFetcher interface {
	SearchUsers(ctx context.Context, query UserQuery) (UserPage, error)
	FetchUser(ctx context.Context, login string) (UserDetail, error)
}

// Ensure Client implements UserFetcher at compile time.
var _ UserFetcher = (*Client)(nil)

// Client talks to the GitHub REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	token     string
}

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL   = "https://api.github.com"
	defaultUserAgent = "ghscout/0.1"
	defaultTimeout   = 10 * time.Second
	apiVersion       = "2022-11-28"

	// MaxPerPage is the largest page size the search endpoint accepts.
	MaxPerPage = 100
)

// Option customises a Client.
type Option func(*Client)

// WithToken authenticates requests with a bearer token. An empty token is ignored.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithTimeout overrides the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client rooted at baseURL. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Authenticated reports whether requests carry a token.
func (c *Client) Authenticated() bool {
	return c != nil && c.token != ""
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL.String()
}

// UserQuery configures /search/users requests.
type UserQuery struct {
	Q       string
	Page    int
	PerPage int
}

// SearchUsers runs a users search. The query string is sent verbatim, qualifiers included.
func (c *Client) SearchUsers(ctx context.Context, query UserQuery) (UserPage, error) {
	if c == nil {
		return UserPage{}, fmt.Errorf("client is nil")
	}
	q := strings.TrimSpace(query.Q)
	if q == "" {
		return UserPage{}, fmt.Errorf("search query required")
	}
	values := url.Values{}
	values.Set("q", q)
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(min(query.PerPage, MaxPerPage)))
	}
	rel := &url.URL{Path: "search/users", RawQuery: values.Encode()}
	var payload UserPage
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return UserPage{}, err
	}
	if payload.Items == nil {
		payload.Items = []UserSummary{}
	}
	return payload, nil
}

// FetchUser retrieves the full public profile for login.
func (c *Client) FetchUser(ctx context.Context, login string) (UserDetail, error) {
	if c == nil {
		return UserDetail{}, fmt.Errorf("client is nil")
	}
	login = strings.TrimSpace(login)
	if login == "" {
		return UserDetail{}, fmt.Errorf("login required")
	}
	rel := &url.URL{Path: "users/" + url.PathEscape(login)}
	var payload UserDetail
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return UserDetail{}, err
	}
	return payload, nil
}

// FetchRateLimit retrieves the caller's current rate limit budget.
// GitHub does not count this request against the limit.
func (c *Client) FetchRateLimit(ctx context.Context) (RateLimits, error) {
	if c == nil {
		return RateLimits{}, fmt.Errorf("client is nil")
	}
	var payload rateLimitResponse
	if err := c.doURL(ctx, http.MethodGet, &url.URL{Path: "rate_limit"}, &payload); err != nil {
		return RateLimits{}, err
	}
	return RateLimits{
		Search: payload.Resources.Search.toRateLimit(),
		Core:   payload.Resources.Core.toRateLimit(),
	}, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: method + " /" + rel.Path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(rel.Path, resp)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("decode response: empty body")
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	// Keep any path prefix (GitHub Enterprise serves the API under /api/v3) and make
	// it a directory so relative references resolve beneath it.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
