package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/guildview/pkg/config"
	"github.com/vanderheijden86/guildview/pkg/version"
)

func TestApplyOverrides(t *testing.T) {
	base := config.DefaultConfig()
	base.Client.BaseURL = "http://configured:9000"
	base.Client.DataFile = "/data/guild.json"

	t.Run("no flags keeps config", func(t *testing.T) {
		got := applyOverrides(base, &App{})
		if got.Client.BaseURL != "http://configured:9000" {
			t.Errorf("BaseURL changed to %q", got.Client.BaseURL)
		}
		if got.Client.DataFile != "/data/guild.json" {
			t.Errorf("DataFile changed to %q", got.Client.DataFile)
		}
	})

	t.Run("data flag switches to offline", func(t *testing.T) {
		got := applyOverrides(base, &App{DataFile: "/tmp/other.json"})
		if got.Client.DataFile != "/tmp/other.json" {
			t.Errorf("Expected DataFile override, got %q", got.Client.DataFile)
		}
		if !got.Offline() {
			t.Error("Expected offline mode with a data file override")
		}
	})

	t.Run("server flag clears configured data file", func(t *testing.T) {
		got := applyOverrides(base, &App{ServerURL: "http://flag:8465"})
		if got.Client.BaseURL != "http://flag:8465" {
			t.Errorf("Expected BaseURL override, got %q", got.Client.BaseURL)
		}
		if got.Offline() {
			t.Error("Expected an explicit --server to win over the configured data file")
		}
	})
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"serve", "seed", "init", "version"} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected subcommand %q on the root command", name)
		}
	}

	if root.Version != version.Version {
		t.Errorf("Expected root version %q, got %q", version.Version, root.Version)
	}
}

func TestVersionCommandOutput(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version command: %v", err)
	}
	if !strings.Contains(out.String(), version.Version) {
		t.Errorf("Expected version output to contain %q, got %q", version.Version, out.String())
	}
}

func TestBrowserFlagConflictRejected(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--data", "guild.json", "--server", "http://localhost:8465"})

	err := root.Execute()
	if err == nil {
		t.Fatal("Expected an error for --data with --server")
	}
	if !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("Expected a mutual-exclusion error, got %v", err)
	}
}

func TestBrowserMissingDatasetFails(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	missing := filepath.Join(t.TempDir(), "absent.json")
	root.SetArgs([]string{
		"--config", filepath.Join(t.TempDir(), "no-config.yaml"),
		"--data", missing,
	})

	err := root.Execute()
	if err == nil {
		t.Fatal("Expected an error for a missing dataset file")
	}
	if !strings.Contains(err.Error(), "opening dataset") {
		t.Errorf("Expected a dataset open error, got %v", err)
	}
}
