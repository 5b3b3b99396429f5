package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ghscout/internal/search"
)

type segmentKind int

const (
	segmentNav segmentKind = iota
	segmentNavDisabled
	segmentPage
	segmentCurrent
	segmentEllipsis
)

// pageSegment is one piece of the pagination bar.
type pageSegment struct {
	text string
	kind segmentKind
}

// pageSegments builds the pagination bar for page of total. It returns nil
// when there is at most one page, which hides the bar.
func pageSegments(page, total int) []pageSegment {
	if total <= 1 {
		return nil
	}
	prev := pageSegment{text: "‹ Prev", kind: segmentNavDisabled}
	if search.HasPrev(page) {
		prev.kind = segmentNav
	}
	next := pageSegment{text: "Next ›", kind: segmentNavDisabled}
	if search.HasNext(page, total) {
		next.kind = segmentNav
	}

	out := []pageSegment{prev}
	for _, mk := range search.Window(page, total) {
		switch {
		case mk.Ellipsis:
			out = append(out, pageSegment{text: mk.String(), kind: segmentEllipsis})
		case mk.Page == page:
			out = append(out, pageSegment{text: "[" + strconv.Itoa(mk.Page) + "]", kind: segmentCurrent})
		default:
			out = append(out, pageSegment{text: mk.String(), kind: segmentPage})
		}
	}
	return append(out, next)
}

// paginationText is the unstyled form of the pagination bar.
func paginationText(page, total int) string {
	segs := pageSegments(page, total)
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = s.text
	}
	return strings.Join(parts, " ")
}

// renderPagination renders the pagination bar centered in width.
func (m Model) renderPagination(page, total, width int, bgColor string) string {
	segs := pageSegments(page, total)
	if len(segs) == 0 {
		return ""
	}
	styles := m.theme.Styles()
	bg := NewBgStyle(bgColor)

	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		var style lipgloss.Style
		switch s.kind {
		case segmentNav:
			style = styles.AccentText
		case segmentCurrent:
			style = styles.WarningText.Bold(true)
		case segmentPage:
			style = styles.Text
		default:
			style = styles.FaintText
		}
		parts = append(parts, bg.Render(s.text, style))
	}
	bar := strings.Join(parts, bg.Space())
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bgColor)).
		Width(width).
		Align(lipgloss.Center).
		Render(bar)
}
