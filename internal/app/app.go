package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/five82/ghscout/internal/config"
	"github.com/five82/ghscout/internal/github"
	"github.com/five82/ghscout/internal/logtail"
	"github.com/five82/ghscout/internal/prefs"
	"github.com/five82/ghscout/internal/search"
	"github.com/five82/ghscout/internal/state"
	"github.com/five82/ghscout/internal/ui"
)

// Options configure a ghscout run.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/ghscout/prefs.toml
	EnvFile    string // empty uses ./.env
	Debug      bool
	LogPath    string // debug log for the TUI; empty uses the temp dir
	Version    string // sent in the User-Agent
}

func (o Options) logPath() string {
	if o.LogPath != "" {
		return o.LogPath
	}
	return logtail.DefaultPath()
}

// ErrNotTerminal is returned when the TUI is started without a terminal.
var ErrNotTerminal = errors.New("the interactive UI needs a terminal; use `ghscout search` for scripts")

// setup is the shared startup of every subcommand.
type setup struct {
	cfg    config.Config
	client *github.Client
	source string
}

func load(opts Options) (setup, error) {
	if err := config.LoadDotEnv(opts.EnvFile); err != nil {
		return setup{}, err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return setup{}, fmt.Errorf("load config: %w", err)
	}
	token, source := cfg.Token()
	client, err := github.NewClient(cfg.APIURL,
		github.WithToken(token),
		github.WithTimeout(cfg.RequestTimeout),
		github.WithUserAgent(userAgent(opts.Version)),
	)
	if err != nil {
		return setup{}, fmt.Errorf("init github client: %w", err)
	}
	log.Printf("github api: %s", client.BaseURL())
	if source != "" {
		log.Printf("using token from %s", source)
	}
	return setup{cfg: cfg, client: client, source: source}, nil
}

func userAgent(version string) string {
	if version == "" {
		version = "dev"
	}
	return "ghscout/" + version
}

// RunTUI boots the interactive UI until the user quits or ctx is cancelled.
// query, when non-empty, is searched immediately.
func RunTUI(ctx context.Context, opts Options, query string) error {
	if !isTerminal(os.Stdout) {
		return ErrNotTerminal
	}

	closeLog, err := setupTUILogging(opts)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := load(opts)
	if err != nil {
		return err
	}

	store := state.NewStore(s.cfg.PageSize)
	ctrl := search.New(ctx, s.client, store, search.Options{
		PageSize:      s.cfg.PageSize,
		Debounce:      s.cfg.Debounce,
		Timeout:       s.cfg.RequestTimeout,
		FeaturedQuery: s.cfg.FeaturedQuery,
		FeaturedCount: s.cfg.FeaturedCount,
	})
	defer ctrl.Close()

	// Start background poller
	if s.cfg.RateLimitPoll > 0 {
		StartPoller(ctx, store, s.client, s.cfg.RateLimitPoll)
	}

	return ui.Run(ui.Options{
		Context:      ctx,
		Controller:   ctrl,
		Store:        store,
		Prefs:        prefs.Load(opts.PrefsPath),
		PrefsPath:    opts.PrefsPath,
		Groups:       suggestionGroups(s.cfg.Suggestions),
		Quick:        search.QuickCategories(),
		InitialQuery: query,
		Host:         s.cfg.Host(),
		TokenSource:  s.source,
	})
}

// suggestionGroups converts configured groups, falling back to the built-in catalog.
func suggestionGroups(groups []config.SuggestionGroup) []search.Group {
	if len(groups) == 0 {
		return search.DefaultGroups()
	}
	out := make([]search.Group, 0, len(groups))
	for _, g := range groups {
		items := make([]search.Suggestion, 0, len(g.Items))
		for _, it := range g.Items {
			items = append(items, search.Suggestion{Label: it.Label, Query: it.Query})
		}
		out = append(out, search.Group{Title: g.Title, Items: items})
	}
	return out
}

// setupTUILogging keeps log output off the alternate screen. Debug runs log to
// a file; otherwise logs are dropped.
func setupTUILogging(opts Options) (func(), error) {
	if !opts.Debug {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(opts.logPath(), "ghscout")
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	return func() { _ = f.Close() }, nil
}

// ConfigureCLILogging sends log output to w in debug mode and discards it otherwise.
func ConfigureCLILogging(debug bool, w io.Writer) {
	if debug {
		log.SetOutput(w)
		log.SetPrefix("ghscout: ")
		return
	}
	log.SetOutput(io.Discard)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
