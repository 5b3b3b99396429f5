package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/five82/ghscout/internal/app"
	"github.com/five82/ghscout/internal/config"
	"github.com/five82/ghscout/internal/output"
)

var version = "dev"

type globals struct {
	Config  string `help:"Config file path (default ${config_path})." type:"path" env:"GHSCOUT_CONFIG" placeholder:"PATH"`
	Prefs   string `help:"Preferences file path." type:"path" env:"GHSCOUT_PREFS" placeholder:"PATH"`
	EnvFile string `name:"env-file" help:"dotenv file to load before looking up tokens." default:".env" placeholder:"PATH"`
	Debug   bool   `help:"Enable debug logging." env:"GHSCOUT_DEBUG"`
	LogFile string `name:"log-file" help:"Debug log file for the interactive UI." type:"path" placeholder:"PATH"`
}

func (g globals) options() app.Options {
	return app.Options{
		ConfigPath: g.Config,
		PrefsPath:  g.Prefs,
		EnvFile:    g.EnvFile,
		Debug:      g.Debug,
		LogPath:    g.LogFile,
		Version:    version,
	}
}

type cli struct {
	Globals globals `embed:""`

	Version kong.VersionFlag `help:"Print version and exit."`

	TUI    tuiCmd    `cmd:"" name:"tui" default:"withargs" help:"Browse GitHub users interactively (default)."`
	Search searchCmd `cmd:"" help:"Print one page of a GitHub users search."`
	User   userCmd   `cmd:"" help:"Print GitHub user profiles."`
	Log    logCmd    `cmd:"" help:"Print the end of the interactive UI's debug log."`
}

type tuiCmd struct {
	Query string `short:"q" help:"Search for this query on startup."`
}

func (c *tuiCmd) Run(ctx context.Context, g *globals) error {
	return app.RunTUI(ctx, g.options(), c.Query)
}

type searchCmd struct {
	Query   []string `arg:"" help:"Search terms and qualifiers, e.g. language:go location:berlin."`
	Page    int      `default:"1" help:"Page to fetch (1-100)."`
	PerPage int      `name:"per-page" help:"Results per page, at most 100. Defaults to page_size from the config."`
	Output  string   `short:"o" enum:"table,json,yaml" default:"table" help:"Output format (table, json, yaml)."`
}

func (c *searchCmd) Run(ctx context.Context, g *globals, stdout io.Writer) error {
	format, err := output.ParseFormat(c.Output)
	if err != nil {
		return err
	}
	app.ConfigureCLILogging(g.Debug, os.Stderr)
	return app.RunSearch(ctx, g.options(), app.SearchRequest{
		Query:   strings.Join(c.Query, " "),
		Page:    c.Page,
		PerPage: c.PerPage,
		Format:  format,
	}, stdout)
}

type userCmd struct {
	Logins []string `arg:"" name:"login" help:"GitHub logins to look up."`
	Output string   `short:"o" enum:"table,json,yaml" default:"table" help:"Output format (table, json, yaml)."`
}

func (c *userCmd) Run(ctx context.Context, g *globals, stdout io.Writer) error {
	format, err := output.ParseFormat(c.Output)
	if err != nil {
		return err
	}
	app.ConfigureCLILogging(g.Debug, os.Stderr)
	return app.RunUser(ctx, g.options(), c.Logins, format, stdout)
}

type logCmd struct {
	Lines int    `short:"n" default:"${log_lines}" help:"Number of lines to print; 0 prints the whole log."`
	Match string `short:"m" help:"Only print lines containing this text (case-insensitive)."`
}

func (c *logCmd) Run(g *globals, stdout io.Writer) error {
	return app.RunLog(g.options(), c.Lines, c.Match, stdout)
}

func newParser(c *cli, options ...kong.Option) (*kong.Kong, error) {
	base := []kong.Option{
		kong.Name("ghscout"),
		kong.Description("Search GitHub users from the terminal."),
		kong.UsageOnError(),
		kong.Vars{
			"version":     version,
			"config_path": config.DefaultPath(),
			"log_lines":   strconv.Itoa(app.DefaultLogLines),
		},
	}
	return kong.New(c, append(base, options...)...)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var c cli
	parser, err := newParser(&c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ghscout: %v\n", err)
		return 1
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%v", err)
		return 2
	}

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.BindTo(os.Stdout, (*io.Writer)(nil))
	if err := kctx.Run(&c.Globals); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintf(os.Stderr, "ghscout: %v\n", err)
		return 1
	}
	return 0
}
