package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ghscout/internal/state"
)

// Theme is a named palette. Colors are hex strings.
type Theme struct {
	Name string

	Background string // behind the help overlay
	Surface    string // header and command bar
	SurfaceAlt string // unfocused panes
	FocusBg    string // focused pane

	SelectionBg   string
	SelectionText string

	Border      string
	BorderMuted string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// StatusColors maps a fetch status (state.Status.String()) to a badge color.
	StatusColors map[string]string
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style
	Surface    lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	statusColors map[string]string
	background   string
	muted        string
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	surface := fg(t.Text).Background(lipgloss.Color(t.Surface))
	return Styles{
		Background: lipgloss.NewStyle().Background(lipgloss.Color(t.Background)),
		Surface:    surface,

		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header:   surface.Padding(0, 1),
		Logo:     fg(t.Accent).Bold(true),
		Selected: fg(t.SelectionText).Background(lipgloss.Color(t.SelectionBg)),

		statusColors: t.StatusColors,
		background:   t.Background,
		muted:        t.Muted,
	}
}

// StatusStyle returns a badge style for a fetch status.
func (s Styles) StatusStyle(status state.Status) lipgloss.Style {
	color := s.statusColors[status.String()]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy of Styles whose text styles all carry bgColor,
// so text on a colored bar does not fall back to the terminal background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Background, &out.Surface,
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Logo, &out.Selected,
	} {
		*st = st.Background(bg)
	}
	return out
}

var themeOrder = []string{"GitHub Dark", "GitHub Light", "Nightfox"}

var themes = map[string]Theme{
	"GitHub Dark":  githubDarkTheme(),
	"GitHub Light": githubLightTheme(),
	"Nightfox":     nightfoxTheme(),
}

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names in cycle order.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

func statusColors(idle, loading, loaded, failed string) map[string]string {
	return map[string]string{
		state.StatusIdle.String():    idle,
		state.StatusLoading.String(): loading,
		state.StatusLoaded.String():  loaded,
		state.StatusFailed.String():  failed,
	}
}

// Primer colors: https://primer.style/foundations/color
func githubDarkTheme() Theme {
	return Theme{
		Name: "GitHub Dark",

		Background: "#010409", // canvas.inset
		Surface:    "#161b22", // canvas.overlay
		SurfaceAlt: "#0d1117", // canvas.default
		FocusBg:    "#1c2128",

		SelectionBg:   "#1f6feb", // accent.emphasis
		SelectionText: "#ffffff",

		Border:      "#30363d", // border.default
		BorderMuted: "#21262d", // border.muted
		BorderFocus: "#58a6ff", // accent.fg

		Text:    "#e6edf3", // fg.default
		Muted:   "#7d8590", // fg.muted
		Faint:   "#6e7681", // fg.subtle
		Accent:  "#58a6ff", // accent.fg
		Success: "#3fb950", // success.fg
		Warning: "#d29922", // attention.fg
		Danger:  "#f85149", // danger.fg
		Info:    "#a371f7", // done.fg

		StatusColors: statusColors("#6e7681", "#58a6ff", "#3fb950", "#f85149"),
	}
}

func githubLightTheme() Theme {
	return Theme{
		Name: "GitHub Light",

		Background: "#ffffff",
		Surface:    "#f6f8fa", // canvas.subtle
		SurfaceAlt: "#ffffff", // canvas.default
		FocusBg:    "#ddf4ff", // accent.subtle

		SelectionBg:   "#0969da", // accent.emphasis
		SelectionText: "#ffffff",

		Border:      "#d0d7de", // border.default
		BorderMuted: "#d8dee4", // border.muted
		BorderFocus: "#0969da",

		Text:    "#1f2328", // fg.default
		Muted:   "#656d76", // fg.muted
		Faint:   "#6e7781", // fg.subtle
		Accent:  "#0969da", // accent.fg
		Success: "#1a7f37", // success.fg
		Warning: "#9a6700", // attention.fg
		Danger:  "#d1242f", // danger.fg
		Info:    "#8250df", // done.fg

		StatusColors: statusColors("#6e7781", "#0969da", "#1a7f37", "#d1242f"),
	}
}

// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
func nightfoxTheme() Theme {
	return Theme{
		Name: "Nightfox",

		Background: "#131a24",
		Surface:    "#192330",
		SurfaceAlt: "#212e3f",
		FocusBg:    "#29394f",

		SelectionBg:   "#2b3b51",
		SelectionText: "#cdcecf",

		Border:      "#39506d",
		BorderMuted: "#212e3f",
		BorderFocus: "#719cd6",

		Text:    "#cdcecf",
		Muted:   "#738091",
		Faint:   "#71839b",
		Accent:  "#719cd6",
		Success: "#81b29a",
		Warning: "#dbc074",
		Danger:  "#c94f6d",
		Info:    "#63cdcf",

		StatusColors: statusColors("#738091", "#63cdcf", "#81b29a", "#c94f6d"),
	}
}
