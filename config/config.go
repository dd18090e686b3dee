// Package config reads and writes bearreader settings as YAML files and
// resolves the database location.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/bearreader"
	"gopkg.in/yaml.v3"
)

// DBPathEnv names the environment variable that overrides the database path.
const DBPathEnv = "BEARREADER_DB"

// File is the YAML layout of an exported settings file. Every field is
// optional on import; missing fields keep their current value.
type File struct {
	ServiceURL *string        `yaml:"serviceUrl,omitempty"`
	UserAgent  *string        `yaml:"userAgent,omitempty"`
	Selectors  *SelectorsFile `yaml:"selectors,omitempty"`
}

// SelectorsFile is the selectors section of File.
type SelectorsFile struct {
	PostsList   *string `yaml:"postsList,omitempty"`
	PostTitle   *string `yaml:"postTitle,omitempty"`
	PostAge     *string `yaml:"postAge,omitempty"`
	PostRating  *string `yaml:"postRating,omitempty"`
	MainContent *string `yaml:"mainContent,omitempty"`
}

// Export writes the settings as YAML.
func Export(w io.Writer, s *bearreader.Settings) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return enc.Close()
}

// Import parses a settings file into an update. Unknown keys are rejected
// so typos do not silently fall back to defaults.
func Import(r io.Reader) (bearreader.SettingsUpdate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return bearreader.SettingsUpdate{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return bearreader.SettingsUpdate{}, bearreader.Errorf(bearreader.EINVALID, "failed to parse settings file: %v", err)
	}

	upd := bearreader.SettingsUpdate{
		ServiceURL: f.ServiceURL,
		UserAgent:  f.UserAgent,
	}
	if sel := f.Selectors; sel != nil {
		upd.PostsList = sel.PostsList
		upd.PostTitle = sel.PostTitle
		upd.PostAge = sel.PostAge
		upd.PostRating = sel.PostRating
		upd.MainContent = sel.MainContent
	}
	return upd, nil
}

// ImportFile opens path and parses it with Import.
func ImportFile(path string) (bearreader.SettingsUpdate, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return bearreader.SettingsUpdate{}, bearreader.Errorf(bearreader.ENOTFOUND, "settings file %q not found", path)
		}
		return bearreader.SettingsUpdate{}, err
	}
	defer f.Close()
	return Import(f)
}

// DefaultDBPath returns the database path from BEARREADER_DB, falling back
// to ~/.bearreader/bearreader.db. The directory is created if missing.
func DefaultDBPath() string {
	if path := os.Getenv(DBPathEnv); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "bearreader.db"
	}
	return filepath.Join(home, ".bearreader", "bearreader.db")
}

// DefaultCacheDir returns the page cache directory next to the database.
func DefaultCacheDir(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "cache")
}
