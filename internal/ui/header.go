package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ghscout/internal/github"
	"github.com/five82/ghscout/internal/state"
)

// renderHeader renders the status bar: logo, host, auth, and rate limits.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("ghscout", styles.Logo)}

	if m.host != "github.com" {
		parts = append(parts, bg.Render(m.host, styles.InfoText))
	}

	if m.tokenSource != "" {
		label := "● token"
		if !compact {
			label += " (" + m.tokenSource + ")"
		}
		parts = append(parts, bg.Render(label, styles.SuccessText))
	} else {
		parts = append(parts, bg.Render("○ anonymous", styles.WarningText))
	}

	if s := m.snapshot.Search; s.Active() && s.Status != state.StatusLoaded {
		parts = append(parts, styles.StatusStyle(s.Status).Render(s.Status.String()))
	}

	rate := m.snapshot.Rate
	switch {
	case rate.IsOffline():
		parts = append(parts,
			bg.Render("GitHub "+classifyConnectionError(rate.LastError), styles.DangerText),
			bg.Render("Retrying...", styles.WarningText.Bold(true)),
		)
	case rate.HasLimits:
		if seg := m.rateLimitSegment("Search", rate.Limits.Search, styles, bg); seg != "" {
			parts = append(parts, seg)
		}
		if seg := m.rateLimitSegment("Core", rate.Limits.Core, styles, bg); seg != "" && !compact {
			parts = append(parts, seg)
		}
	}

	if s := m.snapshot.Search; s.Status == state.StatusLoaded && !s.UpdatedAt.IsZero() && !compact {
		parts = append(parts, bg.Render(s.UpdatedAt.Format("15:04:05"), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// rateLimitSegment renders "Search 28/30" colored by how much budget is left.
func (m Model) rateLimitSegment(label string, r github.RateLimit, styles Styles, bg BgStyle) string {
	if r.Limit <= 0 {
		return ""
	}
	valueStyle := styles.Text
	switch {
	case r.Exhausted():
		valueStyle = styles.DangerText
	case r.Remaining*5 <= r.Limit:
		valueStyle = styles.WarningText
	}
	out := bg.Render(label+":", styles.MutedText) + bg.Space() +
		bg.Render(fmt.Sprintf("%d/%d", r.Remaining, r.Limit), valueStyle)
	if r.Exhausted() {
		if in := formatResetIn(r.Reset, time.Now()); in != "" {
			out += bg.Space() + bg.Render("reset "+in, styles.MutedText)
		}
	}
	return out
}

// classifyConnectionError returns a short label for why GitHub is unreachable.
func classifyConnectionError(err error) string {
	if err == nil {
		return "OFFLINE"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case github.IsRateLimited(err):
		return "RATE LIMITED"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the key hints for the focused pane.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.focus == FocusSearch:
		commands = []cmd{
			{"Enter", "Search"},
			{"Tab", "Results"},
			{"Esc", "Leave box"},
			{"Ctrl+C", "Quit"},
		}
	case m.focus == FocusDetail:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"o", "Open"},
			{"y", "Copy URL"},
			{"Esc", "Close"},
			{"Tab", "Focus"},
			{"?", "More"},
		}
		if m.snapshot.Detail.Status == state.StatusFailed {
			commands = append([]cmd{{"r", "Retry"}}, commands...)
		}
	case m.homeMode():
		commands = []cmd{
			{fmt.Sprintf("1-%d", len(m.quick)), "Quick"},
			{"j/k", "Navigate"},
			{"Enter", "Run"},
			{"/", "Search"},
			{"?", "More"},
			{"q", "Quit"},
		}
	default:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"Enter", "Profile"},
			{"n/p", "Page"},
			{"[/]", "First/Last"},
			{":", "Go to"},
			{"o", "Open"},
			{"/", "Search"},
			{"?", "More"},
		}
		if m.snapshot.Search.Status == state.StatusFailed {
			commands = append([]cmd{{"r", "Retry"}}, commands...)
		}
	}

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	if m.flash != "" {
		flashStyle := styles.SuccessText
		if m.flashErr {
			flashStyle = styles.DangerText
		}
		segments = append(segments, bg.Render(truncate(m.flash, 60), flashStyle))
	}

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderSearchBox renders the query input line.
func (m Model) renderSearchBox() string {
	borderColor := m.theme.BorderMuted
	if m.focus == FocusSearch {
		borderColor = m.theme.BorderFocus
	}
	line := m.input.View()
	if pending := m.snapshot.Search; pending.Status == state.StatusLoading {
		line += "  " + m.spinner.View()
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Text)).
		BorderLeft(true).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Width(max(m.width-1, 1)).
		MaxHeight(1).
		Render(line)
}
