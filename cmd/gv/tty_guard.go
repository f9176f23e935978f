package main

import (
	"os"
	"strings"
)

// init runs before Bubble Tea acquires the terminal (and before any TUI starts).
//
// In some PTY/TTY capture environments, Bubble Tea's init triggers
// Lipgloss/Termenv background detection, which can emit OSC/DSR control
// sequences to stdout. Those sequences are harmless in a real terminal but
// pollute the plain output of non-interactive invocations like gv version
// or gv serve.
//
// We treat those invocations as non-interactive and set CI=1 early. Termenv
// uses CI to disable TTY probing, preventing those sequences from being
// written.
func init() {
	if os.Getenv("CI") != "" {
		return
	}

	if !shouldSuppressTTYQueries(os.Args, os.Getenv("GV_TEST_MODE") != "") {
		return
	}

	_ = os.Setenv("CI", "1")
}

func shouldSuppressTTYQueries(args []string, envTest bool) bool {
	if envTest {
		return true
	}
	if len(args) < 2 {
		return false
	}

	for i := 1; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			switch arg {
			case "--version", "--help", "-h", "-v":
				return true
			case "--config", "--data", "--server", "--route", "--db", "--addr", "--from":
				i++ // skip the flag's value so it isn't read as a subcommand
			}
			continue
		}
		// First positional token decides the subcommand. Only the bare
		// browser and the init wizard are interactive.
		switch arg {
		case "serve", "seed", "version", "help", "completion":
			return true
		default:
			return false
		}
	}

	return false
}
