// Package output renders search results and profiles for the non-interactive
// subcommands.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/five82/ghscout/internal/github"
	"github.com/five82/ghscout/internal/search"
)

// Format selects how results are written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the accepted --output values.
func Formats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatYAML)}
}

// ParseFormat validates a user supplied format name. Empty means table.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want %s)", raw, strings.Join(Formats(), ", "))
	}
}

// SearchResult is one page of a users search as printed by `ghscout search`.
type SearchResult struct {
	Query             string               `json:"query" yaml:"query"`
	Page              int                  `json:"page" yaml:"page"`
	PerPage           int                  `json:"per_page" yaml:"per_page"`
	TotalCount        int                  `json:"total_count" yaml:"total_count"`
	TotalPages        int                  `json:"total_pages" yaml:"total_pages"`
	IncompleteResults bool                 `json:"incomplete_results" yaml:"incomplete_results"`
	Users             []github.UserSummary `json:"users" yaml:"users"`
}

// WriteSearch writes r in the requested format.
func WriteSearch(w io.Writer, f Format, r SearchResult) error {
	if r.Users == nil {
		r.Users = []github.UserSummary{}
	}
	switch f {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	}

	if len(r.Users) == 0 {
		_, err := fmt.Fprintln(w, "No users found. Try a different search term.")
		return err
	}

	t := newTable("#", "LOGIN", "TYPE", "PROFILE")
	offset := (max(r.Page, 1) - 1) * r.PerPage
	for i, u := range r.Users {
		t.Row(strconv.Itoa(offset+i+1), u.Login, u.Type, u.HTMLURL)
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, pageFooter(r))
	return err
}

// WriteUsers writes full profiles in the requested format.
func WriteUsers(w io.Writer, f Format, users []github.UserDetail) error {
	if users == nil {
		users = []github.UserDetail{}
	}
	switch f {
	case FormatJSON:
		return writeJSON(w, users)
	case FormatYAML:
		return writeYAML(w, users)
	}

	t := newTable("LOGIN", "NAME", "FOLLOWERS", "FOLLOWING", "REPOS", "LOCATION", "COMPANY", "JOINED")
	for _, u := range users {
		joined := ""
		if !u.CreatedAt.IsZero() {
			joined = u.CreatedAt.Format("Jan 2006")
		}
		t.Row(u.Login, u.Name, strconv.Itoa(u.Followers), strconv.Itoa(u.Following),
			strconv.Itoa(u.PublicRepos), u.Location, u.Company, joined)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func pageFooter(r SearchResult) string {
	if r.TotalPages <= 1 {
		return fmt.Sprintf("%d %s", r.TotalCount, plural(r.TotalCount, "user", "users"))
	}
	markers := search.Window(r.Page, r.TotalPages)
	parts := make([]string, len(markers))
	for i, m := range markers {
		if !m.Ellipsis && m.Page == r.Page {
			parts[i] = "[" + m.String() + "]"
			continue
		}
		parts[i] = m.String()
	}
	return fmt.Sprintf("%d %s, page %d of %d   %s",
		r.TotalCount, plural(r.TotalCount, "user", "users"), r.Page, r.TotalPages, strings.Join(parts, " "))
}

func newTable(headers ...string) *table.Table {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
