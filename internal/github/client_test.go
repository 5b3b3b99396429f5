package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "api.github.com" {
		t.Fatalf("url = %q, want https://api.github.com/", u.String())
	}
	if u.Path != "/" {
		t.Fatalf("path = %q, want /", u.Path)
	}

	u, err = parseBaseURL("http://ghe.example.com/api/v3?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/api/v3/" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	u, err = parseBaseURL("api.example.com")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
}

func TestClient_SearchUsersEncodesQuery(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotPath, gotUserAgent, gotAuth, gotAccept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(UserPage{
			TotalCount: 1,
			Items:      []UserSummary{{ID: 583231, Login: "octocat", HTMLURL: "https://github.com/octocat"}},
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithToken("secret"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	page, err := c.SearchUsers(ctx, UserQuery{Q: `location:"san francisco" followers:>10`, Page: 3, PerPage: 250})
	if err != nil {
		t.Fatalf("SearchUsers returned error: %v", err)
	}
	if page.TotalCount != 1 || len(page.Items) != 1 || page.Items[0].Login != "octocat" {
		t.Fatalf("SearchUsers page = %#v, want octocat", page)
	}
	if gotPath != "/search/users" {
		t.Fatalf("path = %q, want /search/users", gotPath)
	}
	if gotQuery.Get("q") != `location:"san francisco" followers:>10` ||
		gotQuery.Get("page") != "3" ||
		gotQuery.Get("per_page") != "100" {
		t.Fatalf("query = %v, want q/page/per_page encoded and per_page capped", gotQuery)
	}
	if !strings.HasPrefix(gotUserAgent, "ghscout/") {
		t.Fatalf("User-Agent = %q, want ghscout/*", gotUserAgent)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotAccept != "application/vnd.github+json" {
		t.Fatalf("Accept = %q", gotAccept)
	}
}

func TestClient_UnauthenticatedOmitsAuthorization(t *testing.T) {
	t.Parallel()

	var sawAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{"total_count":0,"incomplete_results":false,"items":null}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithToken("   "))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if c.Authenticated() {
		t.Fatalf("Authenticated() = true for blank token")
	}
	page, err := c.SearchUsers(context.Background(), UserQuery{Q: "nobody"})
	if err != nil {
		t.Fatalf("SearchUsers returned error: %v", err)
	}
	if sawAuth {
		t.Fatalf("Authorization header sent without a token")
	}
	if page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("Items = %#v, want empty non-nil slice", page.Items)
	}
}

func TestClient_SearchUsersRequiresQuery(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.SearchUsers(context.Background(), UserQuery{Q: "  "}); err == nil {
		t.Fatalf("SearchUsers returned nil error for blank query")
	}
	if _, err := c.FetchUser(context.Background(), ""); err == nil {
		t.Fatalf("FetchUser returned nil error for blank login")
	}
}

func TestClient_FetchUserAndRateLimit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/users/octocat":
			_, _ = w.Write([]byte(`{
				"login": "octocat", "id": 583231, "name": "The Octocat",
				"avatar_url": "https://avatars.githubusercontent.com/u/583231",
				"html_url": "https://github.com/octocat",
				"bio": null, "location": "San Francisco", "company": "@github",
				"followers": 20000, "following": 9, "public_repos": 8,
				"created_at": "2011-01-25T18:44:36Z"
			}`))
		case "/rate_limit":
			_, _ = w.Write([]byte(`{"resources": {
				"core": {"limit": 60, "remaining": 59, "reset": 1700000000},
				"search": {"limit": 10, "remaining": 0, "reset": 1700000060}
			}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	user, err := c.FetchUser(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("FetchUser returned error: %v", err)
	}
	if user.DisplayName() != "The Octocat" || user.Followers != 20000 || user.PublicRepos != 8 {
		t.Fatalf("FetchUser = %#v", user)
	}
	if user.Bio != "" {
		t.Fatalf("Bio = %q, want empty for null", user.Bio)
	}
	if user.CreatedAt.Year() != 2011 {
		t.Fatalf("CreatedAt = %v, want 2011", user.CreatedAt)
	}
	if got := user.Summary(); got.Login != "octocat" || got.ID != 583231 {
		t.Fatalf("Summary = %#v", got)
	}

	limits, err := c.FetchRateLimit(context.Background())
	if err != nil {
		t.Fatalf("FetchRateLimit returned error: %v", err)
	}
	if limits.Core.Remaining != 59 || limits.Search.Limit != 10 {
		t.Fatalf("FetchRateLimit = %#v", limits)
	}
	if !limits.Search.Exhausted() || limits.Core.Exhausted() {
		t.Fatalf("Exhausted flags wrong: %#v", limits)
	}
	if limits.Search.Reset.Unix() != 1700000060 {
		t.Fatalf("Search reset = %v", limits.Search.Reset)
	}
}

func TestClient_PreservesEnterprisePathPrefix(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"login":"mona"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api/v3")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchUser(context.Background(), "mona"); err != nil {
		t.Fatalf("FetchUser returned error: %v", err)
	}
	if gotPath != "/api/v3/users/mona" {
		t.Fatalf("path = %q, want /api/v3/users/mona", gotPath)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/broken":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/users/ghost":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		case "/search/users":
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"API rate limit exceeded for 127.0.0.1."}`))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchUser(context.Background(), "broken")
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchUser(broken) error = %v, want decode response error", err)
	}

	_, err = c.FetchUser(context.Background(), "ghost")
	if !IsNotFound(err) {
		t.Fatalf("FetchUser(ghost) error = %v, want 404", err)
	}
	if !strings.Contains(err.Error(), "returned status 404: Not Found") {
		t.Fatalf("error text = %q", err.Error())
	}

	_, err = c.SearchUsers(context.Background(), UserQuery{Q: "x"})
	if !IsRateLimited(err) {
		t.Fatalf("SearchUsers error = %v, want rate limited", err)
	}
	if StatusCode(err) != http.StatusForbidden {
		t.Fatalf("StatusCode = %d, want 403", StatusCode(err))
	}

	_, err = c.FetchRateLimit(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchRateLimit error = %v, want status 500 error", err)
	}
}

func TestClient_NetworkErrorIsClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	c, err := NewClient(addr, WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.SearchUsers(context.Background(), UserQuery{Q: "octocat"})
	if !IsNetwork(err) {
		t.Fatalf("error = %v, want network error", err)
	}
	if StatusCode(err) != 0 {
		t.Fatalf("StatusCode = %d, want 0 for network errors", StatusCode(err))
	}
}
