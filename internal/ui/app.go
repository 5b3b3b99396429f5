package ui

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/ghscout/internal/prefs"
	"github.com/five82/ghscout/internal/search"
	"github.com/five82/ghscout/internal/state"
)

// Focus identifies the pane that receives key presses.
type Focus int

const (
	FocusSearch Focus = iota
	FocusResults
	FocusDetail
)

// Controller is the part of search.Controller the UI drives. Every method
// returns immediately; results arrive through the store.
type Controller interface {
	SetQuery(raw string)
	SearchNow(raw string)
	SetPage(n int)
	NextPage()
	PrevPage()
	Retry()
	SelectUser(login string)
	RetryDetail()
	CloseDetails()
	LoadFeatured()
}

var _ Controller = (*search.Controller)(nil)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Controller   Controller
	Store        *state.Store
	Prefs        prefs.Prefs
	PrefsPath    string
	Groups       []search.Group
	Quick        []search.Suggestion
	InitialQuery string
	Host         string // github.com or an enterprise host
	TokenSource  string // empty when unauthenticated

	// Test hooks; nil uses the system browser and clipboard.
	OpenURL  func(url string) error
	CopyText func(text string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	ctrl         Controller
	store        *state.Store
	prefs        prefs.Prefs
	prefsPath    string
	groups       []search.Group
	quick        []search.Suggestion
	initialQuery string
	host         string
	tokenSource  string
	keys         keyMap
	openURL      func(string) error
	copyText     func(string) error

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	focus    Focus
	showHelp bool

	// Go-to-page prompt
	pagePrompt bool

	// Components
	input          textinput.Model
	pageInput      textinput.Model
	spinner        spinner.Model
	detailViewport viewport.Model

	// Data state
	snapshot    state.Snapshot
	selectedRow int
	homeRow     int
	recorded    string // last query written to the recent list

	// Action feedback
	flash    string
	flashErr bool
	flashID  int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	groups := opts.Groups
	if len(groups) == 0 {
		groups = search.DefaultGroups()
	}
	quick := opts.Quick
	if len(quick) == 0 {
		quick = search.QuickCategories()
	}

	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = "github.com"
	}

	openURL := opts.OpenURL
	if openURL == nil {
		openURL = openInBrowser
	}
	copyText := opts.CopyText
	if copyText == nil {
		copyText = copyToClipboard
	}

	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = "Search GitHub users, e.g. language:go location:berlin"
	input.CharLimit = 256
	input.Focus()

	m := Model{
		ctx:            ctx,
		ctrl:           opts.Controller,
		store:          opts.Store,
		prefs:          opts.Prefs,
		prefsPath:      prefsPath,
		groups:         groups,
		quick:          quick,
		initialQuery:   strings.TrimSpace(opts.InitialQuery),
		host:           host,
		tokenSource:    opts.TokenSource,
		keys:           DefaultKeyMap(),
		openURL:        openURL,
		copyText:       copyText,
		theme:          GetTheme(opts.Prefs.Theme),
		focus:          FocusSearch,
		input:          input,
		pageInput:      newPageInput(),
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		detailViewport: viewport.New(0, 0),
	}
	if m.initialQuery != "" {
		m.input.SetValue(m.initialQuery)
		m.input.Blur()
		m.focus = FocusResults
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		m.spinner.Tick,
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store), waitForChangeCmd(m.ctx, m.store))
	}
	if m.ctrl != nil {
		ctrl, query := m.ctrl, m.initialQuery
		cmds = append(cmds, func() tea.Msg {
			ctrl.LoadFeatured()
			if query != "" {
				ctrl.SearchNow(query)
			}
			return nil
		})
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case changedMsg:
		m.applySnapshot(msg.snapshot)
		return m, waitForChangeCmd(m.ctx, m.store)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case actionMsg:
		m.flashID++
		m.flash = msg.text
		m.flashErr = msg.err != nil
		if msg.err != nil {
			log.Printf("%s: %v", msg.text, msg.err)
		}
		return m, clearFlashCmd(m.flashID)

	case clearFlashMsg:
		if msg.id == m.flashID {
			m.flash = ""
			m.flashErr = false
		}
		return m, nil
	}

	// Cursor blink and other component messages.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.pagePrompt {
		var pageCmd tea.Cmd
		m.pageInput, pageCmd = m.pageInput.Update(msg)
		cmd = tea.Batch(cmd, pageCmd)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey routes a key press to the focused pane.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.pagePrompt {
		return m.handlePageInputKey(msg)
	}

	switch m.focus {
	case FocusSearch:
		return m.handleSearchKey(msg)
	case FocusDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleResultsKey(msg)
	}
}

// handleGlobalKey handles keys shared by the results and profile panes.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return nil, true
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return nil, true
	case key.Matches(msg, m.keys.FocusSearch):
		return m.setFocus(FocusSearch), true
	case key.Matches(msg, m.keys.Tab):
		return m.setFocus(m.nextFocus(1)), true
	case key.Matches(msg, m.keys.ShiftTab):
		return m.setFocus(m.nextFocus(-1)), true
	case key.Matches(msg, m.keys.OpenBrowser):
		if url := m.targetURL(); url != "" {
			return openURLCmd(m.openURL, url), true
		}
		return nil, true
	case key.Matches(msg, m.keys.CopyURL):
		if url := m.targetURL(); url != "" {
			return copyURLCmd(m.copyText, url), true
		}
		return nil, true
	}
	return nil, false
}

// handleSearchKey processes keys while the search box has focus.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		value := m.input.Value()
		if m.ctrl != nil {
			m.ctrl.SearchNow(value)
			m.syncSnapshot()
		}
		if strings.TrimSpace(value) != "" {
			return m, m.setFocus(FocusResults)
		}
		return m, nil
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Tab):
		return m, m.setFocus(FocusResults)
	case key.Matches(msg, m.keys.ShiftTab):
		return m, m.setFocus(m.nextFocus(-1))
	case msg.Type == tea.KeyDown:
		return m, m.setFocus(FocusResults)
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != prev && m.ctrl != nil {
		m.ctrl.SetQuery(value)
	}
	return m, cmd
}

// handleResultsKey processes keys for the results list or the home screen.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.handleGlobalKey(msg); ok {
		return m, cmd
	}
	if m.homeMode() {
		return m.handleHomeKey(msg)
	}

	s := m.snapshot.Search
	count := len(s.Results)
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = max(count-1, 0)
	case key.Matches(msg, m.keys.Select):
		if login := m.selectedLogin(); login != "" && m.ctrl != nil {
			m.ctrl.SelectUser(login)
			m.syncSnapshot()
			if !m.splitLayout() {
				return m, m.setFocus(FocusDetail)
			}
		}
	case key.Matches(msg, m.keys.NextPage):
		if m.ctrl != nil {
			m.ctrl.NextPage()
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.ctrl != nil {
			m.ctrl.PrevPage()
		}
	case key.Matches(msg, m.keys.FirstPage):
		m.goToPage(1)
	case key.Matches(msg, m.keys.LastPage):
		m.goToPage(s.TotalPages())
	case key.Matches(msg, m.keys.GotoPage):
		return m, m.openPagePrompt()
	case key.Matches(msg, m.keys.Retry):
		m.retry()
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

// handleDetailKey processes keys while the profile pane has focus.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.handleGlobalKey(msg); ok {
		return m, cmd
	}
	switch {
	case key.Matches(msg, m.keys.Escape):
		if m.ctrl != nil {
			m.ctrl.CloseDetails()
			m.syncSnapshot()
		}
		return m, m.setFocus(FocusResults)
	case key.Matches(msg, m.keys.Retry):
		if m.snapshot.Detail.Status == state.StatusFailed && m.ctrl != nil {
			m.ctrl.RetryDetail()
		}
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
		return m, nil
	case key.Matches(msg, m.keys.HalfPageUp):
		m.detailViewport.HalfPageUp()
		return m, nil
	case key.Matches(msg, m.keys.HalfPageDown):
		m.detailViewport.HalfPageDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *Model) retry() {
	if m.ctrl == nil {
		return
	}
	if m.snapshot.Search.Status == state.StatusFailed {
		m.ctrl.Retry()
		return
	}
	if m.snapshot.Detail.Status == state.StatusFailed {
		m.ctrl.RetryDetail()
	}
}

// setFocus moves focus and keeps the text input's cursor in sync.
func (m *Model) setFocus(f Focus) tea.Cmd {
	if f == FocusDetail && !m.snapshot.Detail.Selected() {
		f = FocusResults
	}
	m.focus = f
	if f == FocusSearch {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

// nextFocus cycles Search → Results → Profile, skipping the profile when
// nothing is selected.
func (m Model) nextFocus(step int) Focus {
	order := []Focus{FocusSearch, FocusResults}
	if m.snapshot.Detail.Selected() {
		order = append(order, FocusDetail)
	}
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
		}
	}
	idx = (idx + step + len(order)) % len(order)
	return order[idx]
}

// cycleTheme switches to the next theme and persists the choice.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.prefs.Theme = m.theme.Name
	m.savePrefs()
	m.updateDetailViewport()
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

// applySnapshot takes in new store state and keeps selections valid.
func (m *Model) applySnapshot(snap state.Snapshot) {
	prev := m.snapshot
	if snap.Version < prev.Version {
		// Taken before a snapshot that was already pulled by syncSnapshot.
		return
	}
	m.snapshot = snap

	s := snap.Search
	if s.Query != prev.Search.Query || s.Page != prev.Search.Page {
		m.selectedRow = 0
	}
	m.selectedRow = clamp(m.selectedRow, 0, max(len(s.Results)-1, 0))
	m.homeRow = clamp(m.homeRow, 0, max(len(m.homeItems())-1, 0))

	if s.Status == state.StatusLoaded && s.Query != "" && s.Query != m.recorded {
		m.recorded = s.Query
		if m.prefs.Remember(s.Query) {
			m.savePrefs()
		}
	}

	d, pd := snap.Detail, prev.Detail
	if d.Login != pd.Login || d.Status != pd.Status || d.User.Login != pd.User.Login {
		m.updateDetailViewport()
		if d.Login != pd.Login {
			m.detailViewport.GotoTop()
		}
	}
	if !d.Selected() && m.focus == FocusDetail {
		m.focus = FocusResults
	}
}

// syncSnapshot pulls the store state right after a controller call so the
// next key press sees its effect.
func (m *Model) syncSnapshot() {
	if m.store != nil {
		m.applySnapshot(m.store.Snapshot())
	}
}

// resize recomputes component sizes after a terminal resize.
func (m *Model) resize() {
	m.input.Width = max(m.width-len(m.input.Prompt)-4, 10)
	m.updateDetailViewport()
}

// homeMode reports whether the home screen replaces the results list.
func (m Model) homeMode() bool {
	return !m.snapshot.Search.Active()
}

// selectedLogin returns the login under the cursor in the results list.
func (m Model) selectedLogin() string {
	results := m.snapshot.Search.Results
	if m.selectedRow < 0 || m.selectedRow >= len(results) {
		return ""
	}
	return results[m.selectedRow].Login
}

// targetURL returns the profile URL the open and copy actions apply to.
func (m Model) targetURL() string {
	if m.focus == FocusDetail {
		d := m.snapshot.Detail
		if d.User.HTMLURL != "" {
			return d.User.HTMLURL
		}
		return m.profileURL(d.Login)
	}
	if m.homeMode() {
		items := m.homeItems()
		if m.homeRow < len(items) && items[m.homeRow].login != "" {
			return m.profileURL(items[m.homeRow].login)
		}
		return ""
	}
	results := m.snapshot.Search.Results
	if m.selectedRow < len(results) {
		if u := results[m.selectedRow].HTMLURL; u != "" {
			return u
		}
		return m.profileURL(results[m.selectedRow].Login)
	}
	return ""
}

func (m Model) profileURL(login string) string {
	if login == "" {
		return ""
	}
	return "https://" + m.host + "/" + login
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.pagePrompt {
		b.WriteString(m.renderPagePrompt())
	} else {
		b.WriteString(m.renderCommandBar())
	}
	b.WriteString("\n")
	b.WriteString(m.renderSearchBox())
	b.WriteString("\n")
	b.WriteString(m.renderContent())

	return b.String()
}

// Messages

type snapshotMsg state.Snapshot

// changedMsg carries a snapshot taken after a store change notification.
type changedMsg struct {
	snapshot state.Snapshot
}

type actionMsg struct {
	text string
	err  error
}

type clearFlashMsg struct {
	id int
}

// Commands

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// waitForChangeCmd blocks until the store reports a change. Update re-arms it
// after every changedMsg, so exactly one waiter is outstanding.
func waitForChangeCmd(ctx context.Context, store *state.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	changes := store.Changes()
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			return changedMsg{snapshot: store.Snapshot()}
		}
	}
}

func clearFlashCmd(id int) tea.Cmd {
	return tea.Tick(FlashDuration, func(time.Time) tea.Msg {
		return clearFlashMsg{id: id}
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	return err
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
