package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/guildview/pkg/config"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a config file interactively",
		Long: `Walk through the gv configuration and write it to the config file.
Existing values are offered as defaults, so init is safe to re-run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.ConfigPath
			if path == "" {
				path = config.ConfigPath()
			}
			if path == "" {
				return errors.New("cannot determine config directory; pass --config")
			}
			return runInitWizard(cmd, path)
		},
	}
}

// isTerminal checks if stdin is connected to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with accessible mode when stdin is not a TTY.
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// validatePositiveInt rejects values that don't parse as an integer >= min.
func validatePositiveInt(min int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return errors.New("enter a whole number")
		}
		if n < min {
			return fmt.Errorf("must be at least %d", min)
		}
		return nil
	}
}

func runInitWizard(cmd *cobra.Command, path string) error {
	// Start from whatever is already configured so re-running init edits
	// rather than resets.
	cfg, err := config.LoadFrom(path)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	mode := "api"
	if cfg.Offline() {
		mode = "file"
	}

	modeForm := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should gv read the directory from?").
				Options(
					huh.NewOption("Companion API (gv serve)", "api"),
					huh.NewOption("Offline JSON dataset file", "file"),
				).
				Value(&mode),
		),
	)
	if err := modeForm.Run(); err != nil {
		return wizardAborted(cmd, err)
	}

	switch mode {
	case "api":
		sourceForm := newForm(
			huh.NewGroup(
				huh.NewInput().
					Title("API base URL").
					Description("Where the browser fetches people and projects").
					Value(&cfg.Client.BaseURL).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return errors.New("base URL is required")
						}
						return nil
					}),
				huh.NewInput().
					Title("Server listen address").
					Description("Used by gv serve").
					Value(&cfg.Server.Addr),
				huh.NewInput().
					Title("SQLite store path").
					Description("Used by gv serve and gv seed").
					Value(&cfg.Server.DBPath),
			),
		)
		if err := sourceForm.Run(); err != nil {
			return wizardAborted(cmd, err)
		}
		cfg.Client.DataFile = ""

	case "file":
		sourceForm := newForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Dataset file path").
					Description("A JSON document with profiles and projects").
					Value(&cfg.Client.DataFile).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return errors.New("dataset path is required")
						}
						return nil
					}),
			),
		)
		if err := sourceForm.Run(); err != nil {
			return wizardAborted(cmd, err)
		}
	}

	gridSize := strconv.Itoa(cfg.Browse.GridPageSize)
	debounce := strconv.Itoa(cfg.Browse.DebounceMS)
	browseForm := newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cards per grid page").
				Value(&gridSize).
				Validate(validatePositiveInt(1)),
			huh.NewInput().
				Title("Search debounce (ms)").
				Description("0 commits every keystroke").
				Value(&debounce).
				Validate(validatePositiveInt(0)),
		),
	)
	if err := browseForm.Run(); err != nil {
		return wizardAborted(cmd, err)
	}
	cfg.Browse.GridPageSize, _ = strconv.Atoi(strings.TrimSpace(gridSize))
	cfg.Browse.DebounceMS, _ = strconv.Atoi(strings.TrimSpace(debounce))

	save := true
	confirmForm := newForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Write configuration to %s?", path)).
				Value(&save).
				Affirmative("Save").
				Negative("Cancel"),
		),
	)
	if err := confirmForm.Run(); err != nil {
		return wizardAborted(cmd, err)
	}
	if !save {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled; nothing written.")
		return nil
	}

	if err := config.SaveTo(cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func wizardAborted(cmd *cobra.Command, err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled; nothing written.")
		return nil
	}
	return err
}
