package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newPageInput() textinput.Model {
	in := textinput.New()
	in.Prompt = "Go to page: "
	in.CharLimit = 3
	return in
}

// openPagePrompt starts the go-to-page prompt when there is more than one page.
func (m *Model) openPagePrompt() tea.Cmd {
	if m.snapshot.Search.TotalPages() <= 1 {
		return nil
	}
	m.pagePrompt = true
	m.pageInput.SetValue("")
	return m.pageInput.Focus()
}

func (m *Model) closePagePrompt() {
	m.pagePrompt = false
	m.pageInput.Blur()
	m.pageInput.SetValue("")
}

// handlePageInputKey edits the page number; enter jumps, esc cancels.
func (m Model) handlePageInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closePagePrompt()
		return m, nil
	case msg.Type == tea.KeyEnter:
		n, err := strconv.Atoi(strings.TrimSpace(m.pageInput.Value()))
		m.closePagePrompt()
		if err == nil {
			m.goToPage(n)
		}
		return m, nil
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			if r < '0' || r > '9' {
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.pageInput, cmd = m.pageInput.Update(msg)
	return m, cmd
}

// goToPage asks the controller for page n, clamped to the pages that exist.
func (m *Model) goToPage(n int) {
	total := m.snapshot.Search.TotalPages()
	if m.ctrl == nil || total < 1 {
		return
	}
	m.ctrl.SetPage(clamp(n, 1, total))
}

// renderPagePrompt renders the prompt in place of the command bar.
func (m Model) renderPagePrompt() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	total := m.snapshot.Search.TotalPages()
	line := m.pageInput.View() + bg.Space() +
		bg.Render("of "+strconv.Itoa(total), styles.MutedText) + bg.Spaces(2) +
		bg.Render("enter:Go  esc:Cancel", styles.FaintText)
	return styles.Header.Width(m.width).Render(line)
}
