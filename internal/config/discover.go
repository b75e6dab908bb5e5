package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Discover when no config file exists.
var ErrNotFound = errors.New("config not found")

// Source records how a config file was chosen.
type Source string

const (
	SourceFlag     Source = "--config"
	SourceEnv      Source = "$ACERVO_CONFIG"
	SourceWorkDir  Source = "working directory"
	SourceUser     Source = "user config"
	SourceSystem   Source = "system config"
	SourceBuiltins Source = "built-in defaults"
)

// Location is a config path and the source that picked it.
type Location struct {
	Path   string
	Source Source
}

// Exists reports whether the location names a file found on disk. A
// SourceBuiltins location only says where login would create one.
func (l Location) Exists() bool {
	return l.Source != SourceBuiltins
}

func (l Location) String() string {
	if l.Source == "" {
		return l.Path
	}
	return fmt.Sprintf("%s (%s)", l.Path, l.Source)
}

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./acervo.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "acervo", "config.toml")
}

// Discover finds the config file. Search order:
//  1. ACERVO_CONFIG environment variable
//  2. ./acervo.toml (current directory)
//  3. $XDG_CONFIG_HOME/acervo/config.toml
//  4. /etc/acervo/config.toml
func Discover() (Location, error) {
	if envPath := os.Getenv("ACERVO_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return Location{}, fmt.Errorf("ACERVO_CONFIG=%s: %w", envPath, err)
		}
		return Location{Path: envPath, Source: SourceEnv}, nil
	}

	candidates := []Location{
		{Path: "./acervo.toml", Source: SourceWorkDir},
		{Path: DefaultPath(), Source: SourceUser},
		{Path: "/etc/acervo/config.toml", Source: SourceSystem},
	}

	checked := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, err := os.Stat(c.Path); err == nil {
			return c, nil
		}
		checked = append(checked, c.Path)
	}

	return Location{}, fmt.Errorf("%w, checked: %s", ErrNotFound, strings.Join(checked, ", "))
}

// Resolve picks the config location for a run. An explicit path wins and
// need not exist yet. With nothing on disk the user config path is
// returned with SourceBuiltins so the caller can fall back to Default.
func Resolve(explicit string) (Location, error) {
	if explicit != "" {
		return Location{Path: explicit, Source: SourceFlag}, nil
	}
	loc, err := Discover()
	if errors.Is(err, ErrNotFound) {
		return Location{Path: DefaultPath(), Source: SourceBuiltins}, nil
	}
	return loc, err
}
