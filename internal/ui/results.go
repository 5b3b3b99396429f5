package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ghscout/internal/github"
	"github.com/five82/ghscout/internal/state"
)

// renderContent lays out the panes below the search box.
func (m Model) renderContent() string {
	height := m.contentHeight()
	detailSelected := m.snapshot.Detail.Selected()

	if detailSelected && !m.splitLayout() {
		return m.renderDetailPane(m.width, height)
	}

	listWidth := m.width
	if detailSelected {
		listWidth = m.listPaneWidth()
	}

	var list string
	if m.homeMode() {
		list = m.renderHomePane(listWidth, height)
	} else {
		list = m.renderResultsPane(listWidth, height)
	}
	if !detailSelected {
		return list
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, m.renderDetailPane(m.width-listWidth, height))
}

func (m Model) contentHeight() int {
	return max(m.height-chromeHeight, 3)
}

// splitLayout reports whether results and profile fit side by side.
func (m Model) splitLayout() bool {
	return m.width >= LayoutSplitWidth
}

// listPaneWidth returns the width of the results pane in split layout.
// Extra wide (>= 160): 35% list, 65% profile. Default: 45% list, 55% profile.
func (m Model) listPaneWidth() int {
	if m.width >= LayoutExtraWideWidth {
		return m.width * 35 / 100
	}
	return m.width * 45 / 100
}

// renderResultsPane renders the result list with its status and pagination bar.
func (m Model) renderResultsPane(width, height int) string {
	s := m.snapshot.Search
	focused := m.focus == FocusResults
	bgColor := m.paneBg(focused)
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()
	innerWidth := max(width-2, 1)
	innerHeight := max(height-2, 1)

	var footer []string
	if s.TotalPages() > 1 {
		footer = append(footer, "", m.renderPagination(s.Page, s.TotalPages(), innerWidth, bgColor))
	}
	bodyHeight := max(innerHeight-len(footer), 1)

	var body string
	switch {
	case s.Status == state.StatusFailed:
		body = m.renderNotice(innerWidth, bg,
			bg.Render(s.Reason, styles.DangerText),
			bg.Render("Press r to retry.", styles.MutedText))
	case s.Status == state.StatusLoading && len(s.Results) == 0:
		body = m.renderNotice(innerWidth, bg,
			bg.Render(m.spinner.View()+" Searching for "+truncate(s.Query, innerWidth-20)+"...", styles.MutedText))
	case s.Empty():
		body = m.renderNotice(innerWidth, bg,
			bg.Render("No users found. Try a different search term.", styles.MutedText))
	default:
		body = m.renderResultRows(innerWidth, bodyHeight, bgColor)
	}

	content := body
	if len(footer) > 0 {
		lines := strings.Split(body, "\n")
		for len(lines) < bodyHeight {
			lines = append(lines, "")
		}
		content = strings.Join(append(lines[:bodyHeight], footer...), "\n")
	}
	return m.renderTitledBox(m.resultsTitle(), content, width, height, focused)
}

// resultsTitle summarizes the search in the pane border.
func (m Model) resultsTitle() string {
	s := m.snapshot.Search
	title := "Results"
	switch s.Status {
	case state.StatusLoading:
		title += " " + m.spinner.View()
	case state.StatusLoaded:
		title += fmt.Sprintf(" (%s)", formatThousands(s.TotalCount))
		if pages := s.TotalPages(); pages > 1 {
			title += fmt.Sprintf(" · page %d/%d", s.Page, pages)
		}
	case state.StatusFailed:
		title += " · failed"
	}
	return title
}

// renderNotice centers a few lines at the top of a pane.
func (m Model) renderNotice(width int, bg BgStyle, lines ...string) string {
	out := []string{""}
	for _, l := range lines {
		out = append(out, bg.FillLine(bg.Space()+l, width))
	}
	return strings.Join(out, "\n")
}

// renderResultRows renders the visible result rows, scrolled to keep the
// selection on screen.
func (m Model) renderResultRows(width, height int, bgColor string) string {
	s := m.snapshot.Search
	start, end := scrollWindow(m.selectedRow, len(s.Results), height)
	offset := (s.Page - 1) * s.PageSize

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		selected := i == m.selectedRow
		rowBg := bgColor
		if selected {
			rowBg = m.theme.SelectionBg
		}
		content := m.formatResultRow(s.Results[i], offset+i+1, width, rowBg, selected)
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(rowBg)).
			Width(width).
			Render(content))
	}
	return strings.Join(lines, "\n")
}

// formatResultRow formats one result: "  12. octocat  Organization".
func (m Model) formatResultRow(u github.UserSummary, number, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)

	var numStyle, loginStyle, typeStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		numStyle, loginStyle, typeStyle = selText, selText.Bold(true), selText
	} else {
		styles := m.theme.Styles()
		numStyle, loginStyle, typeStyle = styles.FaintText, styles.Text, styles.InfoText
	}
	if m.snapshot.Detail.Login == u.Login {
		loginStyle = loginStyle.Underline(true)
	}

	numStr := fmt.Sprintf("%4d.", number)
	kind := ""
	if u.Type != "" && u.Type != "User" {
		kind = u.Type
	}
	loginWidth := max(width-len(numStr)-len(kind)-3, 4)

	row := bg.Render(numStr, numStyle) + bg.Space() + bg.Render(truncate(u.Login, loginWidth), loginStyle)
	if kind != "" {
		row += bg.Spaces(2) + bg.Render(kind, typeStyle)
	}
	return row
}

// paneBg returns the pane background for the focus state.
func (m Model) paneBg(focused bool) string {
	if focused {
		return m.theme.FocusBg
	}
	return m.theme.SurfaceAlt
}

// renderTitledBox renders content in a box with the title embedded in the top border.
// Style: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
	} else {
		borderColorStr = m.theme.Border
	}
	bgColorStr := m.paneBg(focused)
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	paddedLines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		paddedLines = append(paddedLines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(paddedLines, "\n") + "\n" + bottomBorder
}

// scrollWindow returns the [start, end) range of count rows that fits height
// and contains selected.
func scrollWindow(selected, count, height int) (int, int) {
	if height <= 0 || count <= 0 {
		return 0, 0
	}
	if count <= height {
		return 0, count
	}
	start := clamp(selected-height/2, 0, count-height)
	return start, start + height
}
