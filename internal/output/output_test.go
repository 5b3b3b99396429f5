package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/five82/ghscout/internal/github"
)

func sampleResult() SearchResult {
	return SearchResult{
		Query:      "language:go",
		Page:       5,
		PerPage:    10,
		TotalCount: 95,
		TotalPages: 10,
		Users: []github.UserSummary{
			{ID: 1, Login: "rsc", Type: "User", HTMLURL: "https://github.com/rsc"},
			{ID: 2, Login: "robpike", Type: "User", HTMLURL: "https://github.com/robpike"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatTable, "TABLE": FormatTable, " json ": FormatJSON, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestWriteSearch_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSearch(&buf, FormatTable, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "LOGIN")
	assert.Contains(t, out, "robpike")
	assert.Contains(t, out, "41", "rows are numbered across pages")
	assert.Contains(t, out, "95 users, page 5 of 10")
	assert.Contains(t, out, "1 … 4 [5] 6 … 10")
}

func TestWriteSearch_TableSinglePageHasNoPager(t *testing.T) {
	r := SearchResult{Query: "octocat", Page: 1, PerPage: 10, TotalCount: 1, TotalPages: 1,
		Users: []github.UserSummary{{Login: "octocat"}}}
	var buf bytes.Buffer
	require.NoError(t, WriteSearch(&buf, FormatTable, r))
	assert.Contains(t, buf.String(), "1 user\n")
	assert.NotContains(t, buf.String(), "page 1 of")
}

func TestWriteSearch_TableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSearch(&buf, FormatTable, SearchResult{Query: "zzz"}))
	assert.Equal(t, "No users found. Try a different search term.\n", buf.String())
}

func TestWriteSearch_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSearch(&buf, FormatJSON, SearchResult{Query: "zzz", Page: 1}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "zzz", decoded["query"])
	assert.Equal(t, []any{}, decoded["users"], "empty results encode as [] not null")
}

func TestWriteSearch_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSearch(&buf, FormatYAML, sampleResult()))

	var decoded SearchResult
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 95, decoded.TotalCount)
	require.Len(t, decoded.Users, 2)
	assert.Equal(t, "rsc", decoded.Users[0].Login)
	assert.True(t, strings.Contains(buf.String(), "total_count: 95\n"))
}

func TestWriteUsers(t *testing.T) {
	users := []github.UserDetail{{
		Login: "octocat", Name: "The Octocat", Followers: 20000, PublicRepos: 8,
		Location: "San Francisco", CreatedAt: time.Date(2011, 1, 25, 18, 44, 36, 0, time.UTC),
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteUsers(&buf, FormatTable, users))
	assert.Contains(t, buf.String(), "The Octocat")
	assert.Contains(t, buf.String(), "Jan 2011")

	buf.Reset()
	require.NoError(t, WriteUsers(&buf, FormatJSON, users))
	var decoded []github.UserDetail
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, 20000, decoded[0].Followers)
}
