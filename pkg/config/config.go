// Package config handles loading and saving gv configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/gv/config.yaml
//   - State:   ~/.local/state/gv/ (session restore)
//
// Environment variables prefixed GUILDVIEW_ override file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Defaults applied by Load when neither file nor environment sets a value.
const (
	DefaultAddr            = "127.0.0.1:8465"
	DefaultGridPageSize    = 8
	DefaultListPageSize    = 100
	DefaultDebounceMS      = 500
	DefaultPrefetchDelayMS = 150
)

// ServerConfig configures the companion API server (gv serve).
type ServerConfig struct {
	Addr   string `yaml:"addr,omitempty" env:"GUILDVIEW_SERVER_ADDR"`
	DBPath string `yaml:"db_path,omitempty" env:"GUILDVIEW_DB_PATH"`
}

// ClientConfig selects where the browser reads its data from. A set
// DataFile switches the browser to offline mode and browses the JSON
// dataset directly; otherwise BaseURL names the companion API.
type ClientConfig struct {
	BaseURL  string `yaml:"base_url,omitempty" env:"GUILDVIEW_BASE_URL"`
	DataFile string `yaml:"data_file,omitempty" env:"GUILDVIEW_DATA_FILE"`
}

// BrowseConfig holds paging and timing knobs for the browser.
// Durations are plain milliseconds so the YAML stays editable by hand.
type BrowseConfig struct {
	GridPageSize    int `yaml:"grid_page_size,omitempty" env:"GUILDVIEW_GRID_PAGE_SIZE"`
	ListPageSize    int `yaml:"list_page_size,omitempty" env:"GUILDVIEW_LIST_PAGE_SIZE"`
	DebounceMS      int `yaml:"debounce_ms,omitempty" env:"GUILDVIEW_DEBOUNCE_MS"`
	PrefetchDelayMS int `yaml:"prefetch_delay_ms,omitempty" env:"GUILDVIEW_PREFETCH_DELAY_MS"`
}

// Debounce returns the search debounce window.
func (b BrowseConfig) Debounce() time.Duration {
	return time.Duration(b.DebounceMS) * time.Millisecond
}

// PrefetchDelay returns how long a detail view must stay settled before
// neighbor prefetching kicks in.
func (b BrowseConfig) PrefetchDelay() time.Duration {
	return time.Duration(b.PrefetchDelayMS) * time.Millisecond
}

// Config is the top-level configuration for gv.
type Config struct {
	Server ServerConfig `yaml:"server,omitempty"`
	Client ClientConfig `yaml:"client,omitempty"`
	Browse BrowseConfig `yaml:"browse,omitempty"`
	Theme  string       `yaml:"theme,omitempty" env:"GUILDVIEW_THEME"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:   DefaultAddr,
			DBPath: filepath.Join(DataDir(), "guildview.db"),
		},
		Client: ClientConfig{
			BaseURL: "http://" + DefaultAddr,
		},
		Browse: BrowseConfig{
			GridPageSize:    DefaultGridPageSize,
			ListPageSize:    DefaultListPageSize,
			DebounceMS:      DefaultDebounceMS,
			PrefetchDelayMS: DefaultPrefetchDelayMS,
		},
	}
}

// ConfigDir returns the XDG config directory for gv.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "gv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gv")
}

// DataDir returns the XDG data directory for gv.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "gv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "gv")
}

// StateDir returns the XDG state directory for gv.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "gv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "gv")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// SessionPath returns where the browser persists its last route.
func SessionPath() string {
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "session.json")
}

// Load reads the config file from the XDG config directory and applies
// environment overrides. Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path. Missing file is not an
// error; environment variables still apply on top of the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing env overrides: %w", err)
	}

	cfg.sanitize()
	cfg.Server.DBPath = expandHome(cfg.Server.DBPath)
	cfg.Client.DataFile = expandHome(cfg.Client.DataFile)

	return cfg, nil
}

// sanitize pulls out-of-range knobs back to their defaults.
func (c *Config) sanitize() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Browse.GridPageSize < 1 {
		c.Browse.GridPageSize = DefaultGridPageSize
	}
	if c.Browse.ListPageSize < 1 {
		c.Browse.ListPageSize = DefaultListPageSize
	}
	if c.Browse.DebounceMS < 0 {
		c.Browse.DebounceMS = DefaultDebounceMS
	}
	if c.Browse.PrefetchDelayMS < 0 {
		c.Browse.PrefetchDelayMS = DefaultPrefetchDelayMS
	}
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Offline reports whether the client should read from a local dataset
// file instead of the companion API.
func (c Config) Offline() bool {
	return c.Client.DataFile != ""
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
