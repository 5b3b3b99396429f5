package ui

import (
	"io"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/go-gh/pkg/browser"
)

// openInBrowser launches the browser gh is configured with, falling back to
// $BROWSER and the platform default.
func openInBrowser(url string) error {
	b := browser.New("", io.Discard, io.Discard)
	return b.Browse(url)
}

func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}

func openURLCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if err := open(url); err != nil {
			return actionMsg{text: "Could not open browser", err: err}
		}
		return actionMsg{text: "Opened " + url}
	}
}

func copyURLCmd(copyText func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if err := copyText(url); err != nil {
			return actionMsg{text: "Clipboard unavailable", err: err}
		}
		return actionMsg{text: "Copied " + url}
	}
}
