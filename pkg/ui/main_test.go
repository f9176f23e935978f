package ui

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// Keep session and config writes out of the developer's real XDG dirs;
	// quitting the model saves a session file as a side effect.
	tmp, err := os.MkdirTemp("", "gv-ui-test")
	if err == nil {
		os.Setenv("XDG_STATE_HOME", tmp)
		os.Setenv("XDG_CONFIG_HOME", tmp)
	}

	code := m.Run()

	if tmp != "" {
		os.RemoveAll(tmp)
	}
	os.Exit(code)
}
