// Package cli defines the gv command tree. The bare command launches the
// terminal browser; subcommands run the companion API server, manage its
// store, and bootstrap configuration.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/guildview/pkg/config"
	"github.com/vanderheijden86/guildview/pkg/debug"
	"github.com/vanderheijden86/guildview/pkg/source"
	"github.com/vanderheijden86/guildview/pkg/ui"
	"github.com/vanderheijden86/guildview/pkg/version"
	"github.com/vanderheijden86/guildview/pkg/watcher"
)

// App carries the flag state shared across commands.
type App struct {
	ConfigPath string

	// Browser-run overrides.
	DataFile  string
	ServerURL string
	Route     string
	NoRestore bool
}

// loadConfig reads the config file (explicit path or XDG default) with
// environment overrides applied.
func (a *App) loadConfig() (config.Config, error) {
	if a.ConfigPath != "" {
		return config.LoadFrom(a.ConfigPath)
	}
	return config.Load()
}

// Execute runs the gv command tree.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the root command. With no subcommand it launches the
// interactive browser.
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "gv",
		Short: "Terminal browser for the guild directory",
		Long: `gv browses a guild directory of people and projects from the terminal:
card grid and list layouts, faceted filtering, debounced search, and a
detail view with slug-sequence stepping.

It reads from the companion API (gv serve) by default, or straight from
a JSON dataset file with --data.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowser(app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config file (default: XDG config dir)")
	cmd.Flags().StringVar(&app.DataFile, "data", "", "Browse a JSON dataset file offline instead of the API")
	cmd.Flags().StringVar(&app.ServerURL, "server", "", "Companion API base URL for this run")
	cmd.Flags().StringVar(&app.Route, "route", "", `Start at a route, e.g. "/projects?skills=Go"`)
	cmd.Flags().BoolVar(&app.NoRestore, "no-restore", false, "Skip restoring the last session's route")

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newSeedCmd(app))
	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// applyOverrides layers the browser-run flags over the loaded config.
// An explicit --server clears any configured data file so the API wins.
func applyOverrides(cfg config.Config, app *App) config.Config {
	if app.DataFile != "" {
		cfg.Client.DataFile = app.DataFile
	}
	if app.ServerURL != "" {
		cfg.Client.BaseURL = app.ServerURL
		cfg.Client.DataFile = ""
	}
	return cfg
}

func runBrowser(app *App) error {
	if app.DataFile != "" && app.ServerURL != "" {
		return errors.New("--data and --server are mutually exclusive")
	}

	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}
	cfg = applyOverrides(cfg, app)

	opts := ui.Options{Config: cfg}

	var w *watcher.Watcher
	if cfg.Offline() {
		debug.Log("browsing offline dataset %s", cfg.Client.DataFile)
		fs, err := source.OpenFile(cfg.Client.DataFile)
		if err != nil {
			return fmt.Errorf("opening dataset: %w", err)
		}
		cache := source.NewWarmCache(fs, source.DefaultCacheTTL)
		opts.Source = cache
		opts.Cache = cache
		opts.FileSource = fs

		// Live reload is best-effort; manual reload (r) still works
		// without a watcher.
		if nw, werr := watcher.New(fs.Path()); werr == nil {
			if werr := nw.Start(); werr == nil {
				w = nw
			} else {
				debug.LogErr("starting file watcher", werr)
			}
		} else {
			debug.LogErr("creating file watcher", werr)
		}
		opts.Watcher = w
	} else {
		debug.Log("browsing API at %s", cfg.Client.BaseURL)
		hs, err := source.NewHTTP(cfg.Client.BaseURL, nil)
		if err != nil {
			return fmt.Errorf("configuring API source: %w", err)
		}
		cache := source.NewWarmCache(hs, source.DefaultCacheTTL)
		opts.Source = cache
		opts.Cache = cache
	}
	if w != nil {
		defer w.Stop()
	}

	opts.StartRoute = app.Route
	if opts.StartRoute == "" && !app.NoRestore {
		// Best-effort: a missing or corrupt session file just means a
		// default start.
		if sess, err := ui.LoadSession(config.SessionPath()); err == nil {
			opts.StartRoute = sess.Route
		} else {
			debug.LogErr("restoring session", err)
		}
	}

	return runProgram(ui.New(opts))
}
