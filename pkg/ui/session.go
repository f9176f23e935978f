package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

// Session is the slice of browser state worth restoring across runs: the
// serialized route, which carries tab, layout, slug, and filters.
type Session struct {
	Route   string    `json:"route"`
	SavedAt time.Time `json:"saved_at"`
}

// SaveSession writes the session file atomically via a temp file rename,
// so a crash mid-write never leaves a truncated session behind.
func SaveSession(path string, s Session) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing session: %w", err)
	}
	return nil
}

// LoadSession reads a previously saved session. A missing or empty path is
// not an error; the browser simply starts at the default route.
func LoadSession(path string) (Session, error) {
	var s Session
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading session: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing session: %w", err)
	}
	return s, nil
}
