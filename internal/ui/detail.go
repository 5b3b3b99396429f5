package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ghscout/internal/github"
	"github.com/five82/ghscout/internal/state"
)

// detailPaneWidth returns the width of the profile pane for the current layout.
func (m Model) detailPaneWidth() int {
	if !m.splitLayout() {
		return m.width
	}
	return m.width - m.listPaneWidth()
}

// updateDetailViewport re-renders the loaded profile into the viewport.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	width := max(m.detailPaneWidth()-4, 10)
	m.detailViewport.Width = width
	m.detailViewport.Height = max(m.contentHeight()-2, 1)

	d := m.snapshot.Detail
	if d.Status != state.StatusLoaded {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(m.renderDetailContent(d.User, width, m.paneBg(m.focus == FocusDetail)))
}

// renderDetailPane renders the selected user's profile.
func (m Model) renderDetailPane(width, height int) string {
	d := m.snapshot.Detail
	focused := m.focus == FocusDetail
	bgColor := m.paneBg(focused)
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()
	innerWidth := max(width-2, 1)

	var content string
	switch d.Status {
	case state.StatusLoading:
		content = m.renderNotice(innerWidth, bg,
			bg.Render(m.spinner.View()+" Loading @"+d.Login+"...", styles.MutedText))
	case state.StatusFailed:
		content = m.renderNotice(innerWidth, bg,
			bg.Render(d.Reason, styles.DangerText),
			bg.Render("Press r to retry, esc to close.", styles.MutedText))
	default:
		content = padLines(m.detailViewport.View(), 1)
	}

	title := "Profile"
	if d.Login != "" {
		title += " · @" + d.Login
	}
	return m.renderTitledBox(title, content, width, height, focused)
}

// renderDetailContent formats a profile for the viewport.
func (m Model) renderDetailContent(u github.UserDetail, width int, bgColor string) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(bgColor)
	var b strings.Builder

	b.WriteString(bg.Render(u.DisplayName(), styles.Text.Bold(true)))
	b.WriteString("\n")
	b.WriteString(bg.Render("@"+u.Login, styles.AccentText))
	b.WriteString("\n")

	if bio := strings.TrimSpace(u.Bio); bio != "" {
		b.WriteString("\n")
		wrapped := lipgloss.NewStyle().Width(width).Render(bio)
		for _, line := range strings.Split(wrapped, "\n") {
			b.WriteString(bg.Render(strings.TrimRight(line, " "), styles.Text))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	field := func(label, value string, style lipgloss.Style) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		b.WriteString(bg.Render(padRight(label, 11), styles.MutedText))
		b.WriteString(bg.Render(truncate(value, max(width-11, 8)), style))
		b.WriteString("\n")
	}
	field("Location", u.Location, styles.Text)
	field("Company", u.Company, styles.Text)
	field("Blog", u.Blog, styles.AccentText)
	field("Joined", strings.TrimPrefix(formatJoined(u.CreatedAt), "Joined "), styles.Text)
	b.WriteString("\n")

	stat := func(label string, n int) string {
		return bg.Render(formatCount(n), styles.WarningText.Bold(true)) + bg.Space() + bg.Render(label, styles.MutedText)
	}
	b.WriteString(strings.Join([]string{
		stat("repos", u.PublicRepos),
		stat("followers", u.Followers),
		stat("following", u.Following),
	}, bg.Spaces(3)))
	b.WriteString("\n\n")

	field("Profile", u.HTMLURL, styles.InfoText)
	b.WriteString("\n")
	b.WriteString(bg.Render("o open · y copy URL · esc close", styles.FaintText))

	return b.String()
}

// padLines prefixes every line of s with n spaces.
func padLines(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
