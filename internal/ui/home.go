package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ghscout/internal/search"
	"github.com/five82/ghscout/internal/state"
)

// homeItem is one selectable row of the home screen. It runs query or, for
// featured users, opens login.
type homeItem struct {
	section string
	label   string
	query   string
	login   string
}

// homeItems lists recent queries, suggestions, and featured users in display order.
func (m Model) homeItems() []homeItem {
	var items []homeItem
	for i, q := range m.prefs.Recent {
		if i == HomeRecentLimit {
			break
		}
		items = append(items, homeItem{section: "Recent", label: q, query: q})
	}
	for _, g := range m.groups {
		for _, s := range search.Flatten([]search.Group{g}) {
			items = append(items, homeItem{section: g.Title, label: s.Label, query: s.Query})
		}
	}
	for _, u := range m.snapshot.Featured.Users {
		items = append(items, homeItem{section: "Featured Developers", label: "@" + u.Login, login: u.Login})
	}
	return items
}

// handleHomeKey processes keys on the home screen.
func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.homeItems()
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.homeRow < len(items)-1 {
			m.homeRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.homeRow > 0 {
			m.homeRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.homeRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.homeRow = max(len(items)-1, 0)
	case key.Matches(msg, m.keys.QuickSearch) && len(msg.Runes) == 1:
		idx := int(msg.Runes[0] - '1')
		if idx >= 0 && idx < len(m.quick) {
			return m, m.runQuery(m.quick[idx].Query)
		}
	case key.Matches(msg, m.keys.Select):
		if m.homeRow >= len(items) {
			return m, nil
		}
		item := items[m.homeRow]
		if item.login != "" {
			if m.ctrl != nil {
				m.ctrl.SelectUser(item.login)
				m.syncSnapshot()
			}
			if !m.splitLayout() {
				return m, m.setFocus(FocusDetail)
			}
			return m, nil
		}
		return m, m.runQuery(item.query)
	case key.Matches(msg, m.keys.Retry):
		if m.snapshot.Featured.Status == state.StatusFailed && m.ctrl != nil {
			m.ctrl.LoadFeatured()
		} else {
			m.retry()
		}
	case key.Matches(msg, m.keys.Escape):
		if m.snapshot.Detail.Selected() && m.ctrl != nil {
			m.ctrl.CloseDetails()
			m.syncSnapshot()
			return m, nil
		}
		return m, m.setFocus(FocusSearch)
	}
	return m, nil
}

// runQuery puts query into the search box and searches immediately.
func (m *Model) runQuery(query string) tea.Cmd {
	m.input.SetValue(query)
	m.input.CursorEnd()
	if m.ctrl != nil {
		m.ctrl.SearchNow(query)
		m.syncSnapshot()
	}
	return m.setFocus(FocusResults)
}

// renderHomePane renders the screen shown before the first search.
func (m Model) renderHomePane(width, height int) string {
	focused := m.focus == FocusResults
	bgColor := m.paneBg(focused)
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()
	innerWidth := max(width-2, 1)

	var header []string
	header = append(header, "")
	header = append(header, bg.FillLine(bg.Space()+bg.Render("Discover GitHub developers", styles.Text.Bold(true)), innerWidth))
	header = append(header, bg.FillLine(bg.Space()+bg.Render("Type a name or qualifiers like language:go location:berlin", styles.MutedText), innerWidth))
	header = append(header, "")

	quick := make([]string, 0, len(m.quick))
	for i, q := range m.quick {
		quick = append(quick, bg.Render(fmt.Sprintf("%d", i+1), styles.WarningText.Bold(true))+bg.Space()+bg.Render(q.Label, styles.AccentText))
	}
	header = append(header, bg.FillLine(bg.Space()+strings.Join(quick, bg.Spaces(3)), innerWidth), "")

	rows := m.homeRows(innerWidth, bgColor)
	available := max(height-2-len(header), 1)

	// Keep the selected row on screen.
	selectedLine := 0
	for i, r := range rows {
		if r.index == m.homeRow {
			selectedLine = i
		}
	}
	start, end := scrollWindow(selectedLine, len(rows), available)
	lines := header
	for _, r := range rows[start:end] {
		lines = append(lines, r.text)
	}
	return m.renderTitledBox("Home", strings.Join(lines, "\n"), width, height, focused)
}

type homeRow struct {
	text  string
	index int // item index; -1 for section headings
}

func (m Model) homeRows(width int, bgColor string) []homeRow {
	styles := m.theme.Styles()
	bg := NewBgStyle(bgColor)

	var rows []homeRow
	section := ""
	for i, item := range m.homeItems() {
		if item.section != section {
			if section != "" {
				rows = append(rows, homeRow{index: -1})
			}
			section = item.section
			rows = append(rows, homeRow{
				text:  bg.FillLine(bg.Space()+bg.Render(section, styles.AccentText.Bold(true)), width),
				index: -1,
			})
		}

		rowBg := bgColor
		labelStyle, queryStyle := styles.Text, styles.FaintText
		if i == m.homeRow {
			rowBg = m.theme.SelectionBg
			sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
			labelStyle, queryStyle = sel.Bold(true), sel
		}
		rb := NewBgStyle(rowBg)
		text := rb.Spaces(3) + rb.Render(truncate(item.label, width/2), labelStyle)
		if item.query != "" && item.query != item.label {
			text += rb.Spaces(2) + rb.Render(truncate(item.query, max(width/2-6, 4)), queryStyle)
		}
		rows = append(rows, homeRow{text: rb.FillLine(text, width), index: i})
	}

	switch m.snapshot.Featured.Status {
	case state.StatusLoading:
		rows = append(rows, homeRow{index: -1},
			homeRow{text: bg.FillLine(bg.Space()+bg.Render(m.spinner.View()+" Loading featured developers...", styles.MutedText), width), index: -1})
	case state.StatusFailed:
		rows = append(rows, homeRow{index: -1},
			homeRow{text: bg.FillLine(bg.Space()+bg.Render("Featured developers unavailable (r to retry)", styles.FaintText), width), index: -1})
	}
	return rows
}
