package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const prefsFile = "preferences.json"

// Prefs is the preferences file, read once. Values stay raw until looked up
// so each key is decoded straight into the Config field it overrides.
type Prefs struct {
	path   string
	values map[string]json.RawMessage
}

// PrefsPath returns ~/.config/boxview/preferences.json, or the platform
// equivalent.
func PrefsPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "boxview", prefsFile)
}

// LoadPrefs reads the user's preferences file.
func LoadPrefs() *Prefs {
	return LoadPrefsFile(PrefsPath())
}

// LoadPrefsFile reads preferences from path. A missing, unreadable or
// malformed file yields empty preferences.
func LoadPrefsFile(path string) *Prefs {
	p := &Prefs{path: path, values: map[string]json.RawMessage{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("preferences unreadable", "path", path, "error", err)
		}
		return p
	}
	var values map[string]json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil {
		slog.Warn("ignoring malformed preferences", "path", path, "error", err)
		return p
	}
	p.values = values
	return p
}

// Path returns the file the preferences were read from.
func (p *Prefs) Path() string {
	return p.path
}

// Has reports whether key is set to a non-null value.
func (p *Prefs) Has(key string) bool {
	raw, ok := p.values[key]
	return ok && string(raw) != "null"
}

// Lookup decodes the value under key into dst. It reports false and leaves
// dst untouched when the key is not set.
func (p *Prefs) Lookup(key string, dst any) (bool, error) {
	if !p.Has(key) {
		return false, nil
	}
	if err := json.Unmarshal(p.values[key], dst); err != nil {
		return true, fmt.Errorf("%s: %w", key, err)
	}
	return true, nil
}
