package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/five82/ghscout/internal/config"
	"github.com/five82/ghscout/internal/output"
	"github.com/five82/ghscout/internal/search"
)

// testOptions points ghscout at server with no credentials.
func testOptions(t *testing.T, server *httptest.Server, extra string) Options {
	t.Helper()
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf("api_url = %q\nuse_gh_auth = false\n%s", server.URL, extra)
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return Options{
		ConfigPath: cfgPath,
		EnvFile:    filepath.Join(dir, "missing.env"),
	}
}

func TestRunSearch_WritesRequestedPage(t *testing.T) {
	var gotQuery, gotPage, gotPerPage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/users" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query().Get("q")
		gotPage = r.URL.Query().Get("page")
		gotPerPage = r.URL.Query().Get("per_page")
		_, _ = w.Write([]byte(`{"total_count": 42, "incomplete_results": false, "items": [
			{"id": 1, "login": "octocat", "html_url": "https://github.com/octocat"},
			{"id": 2, "login": "hubot", "html_url": "https://github.com/hubot"}
		]}`))
	}))
	defer server.Close()

	opts := testOptions(t, server, "page_size = 5\n")
	var buf bytes.Buffer
	err := RunSearch(context.Background(), opts, SearchRequest{Query: "  language:go  ", Page: 3, Format: output.FormatJSON}, &buf)
	if err != nil {
		t.Fatalf("RunSearch returned error: %v", err)
	}
	if gotQuery != "language:go" || gotPage != "3" || gotPerPage != "5" {
		t.Fatalf("request q=%q page=%q per_page=%q", gotQuery, gotPage, gotPerPage)
	}

	var got output.SearchResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, buf.String())
	}
	if got.TotalPages != 9 || got.Page != 3 || got.PerPage != 5 {
		t.Fatalf("result = %+v, want 9 pages of 5 on page 3", got)
	}
	if len(got.Users) != 2 || got.Users[0].Login != "octocat" {
		t.Fatalf("users = %+v", got.Users)
	}
}

func TestRunSearch_EmptyQueryMakesNoRequest(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	err := RunSearch(context.Background(), testOptions(t, server, ""), SearchRequest{Query: "   "}, &bytes.Buffer{})
	if !errors.Is(err, search.ErrEmptyQuery) {
		t.Fatalf("err = %v, want ErrEmptyQuery", err)
	}
	if hits.Load() != 0 {
		t.Fatalf("server hit %d times, want 0", hits.Load())
	}
}

func TestRunSearch_RejectsPagesBeyondCap(t *testing.T) {
	err := RunSearch(context.Background(), Options{}, SearchRequest{Query: "go", Page: 101}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("err = %v, want out of range", err)
	}
}

func TestRunSearch_ReportsFriendlyReason(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "API rate limit exceeded"}`))
	}))
	defer server.Close()

	err := RunSearch(context.Background(), testOptions(t, server, ""), SearchRequest{Query: "go"}, &bytes.Buffer{})
	if err == nil || !strings.HasPrefix(err.Error(), "GitHub rate limit reached") {
		t.Fatalf("err = %v, want rate limit reason", err)
	}
}

func TestRunUser_KeepsArgumentOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		login := strings.TrimPrefix(r.URL.Path, "/users/")
		_, _ = fmt.Fprintf(w, `{"login": %q, "followers": %d, "created_at": "2011-01-25T18:44:36Z"}`, login, len(login))
	}))
	defer server.Close()

	var buf bytes.Buffer
	err := RunUser(context.Background(), testOptions(t, server, ""), []string{"torvalds", " ", "octocat", "gaearon"}, output.FormatJSON, &buf)
	if err != nil {
		t.Fatalf("RunUser returned error: %v", err)
	}

	var got []struct {
		Login string `json:"login"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, buf.String())
	}
	want := []string{"torvalds", "octocat", "gaearon"}
	if len(got) != len(want) {
		t.Fatalf("got %d users, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Login != want[i] {
			t.Fatalf("users[%d] = %q, want %q", i, got[i].Login, want[i])
		}
	}
}

func TestRunUser_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer server.Close()

	err := RunUser(context.Background(), testOptions(t, server, ""), []string{"ghost-user"}, output.FormatTable, &bytes.Buffer{})
	if err == nil || !strings.HasPrefix(err.Error(), "ghost-user: User not found.") {
		t.Fatalf("err = %v, want not found reason", err)
	}
}

func TestSuggestionGroups(t *testing.T) {
	if got := suggestionGroups(nil); len(got) != len(search.DefaultGroups()) {
		t.Fatalf("nil config groups should fall back to defaults, got %d", len(got))
	}

	got := suggestionGroups([]config.SuggestionGroup{{
		Title: "Team",
		Items: []config.Suggestion{{Label: "Us", Query: "org:five82"}},
	}})
	if len(got) != 1 || got[0].Title != "Team" || got[0].Items[0].Query != "org:five82" {
		t.Fatalf("groups = %+v", got)
	}
}
