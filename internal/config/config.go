// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultPortalURL     = "http://localhost:5000/api"
	DefaultTimeout       = 30 * time.Second
	DefaultBooksPerPage  = 8
	DefaultVideosPerPage = 12
	DefaultCacheTTL      = 24 * time.Hour
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
)

// Config is the root configuration structure.
type Config struct {
	Portal  PortalConfig  `toml:"portal"`
	Library LibraryConfig `toml:"library"`
	Cache   CacheConfig   `toml:"cache"`
	Log     LogConfig     `toml:"log"`
}

type PortalConfig struct {
	URL     string        `toml:"url"`
	Token   string        `toml:"token"`
	Timeout time.Duration `toml:"timeout"`
}

type LibraryConfig struct {
	BooksPerPage  int `toml:"books_per_page"`
	VideosPerPage int `toml:"videos_per_page"`
}

type CacheConfig struct {
	Enabled bool          `toml:"enabled"`
	Path    string        `toml:"path"`
	TTL     time.Duration `toml:"ttl"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns a configuration with every default applied. It is used
// when no config file exists.
func Default() *Config {
	cfg := &Config{Cache: CacheConfig{Enabled: true}}
	cfg.applyDefaults()
	return cfg
}

// Load reads, substitutes, parses and validates the configuration file.
// Unresolved variables and validation failures are reported together as a
// *ConfigError.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadFrom loads the file at loc, or returns Default when loc found no
// file. Errors name the source that picked the file.
func LoadFrom(loc Location) (*Config, error) {
	if !loc.Exists() {
		return Default(), nil
	}
	cfg, err := Load(loc.Path)
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		cfgErr.Source = loc.Source
	}
	return cfg, err
}

// LoadWithoutValidation parses the file and applies defaults, ignoring
// unresolved variables and validation errors.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	md, err := toml.Decode(content, &cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	if !md.IsDefined("cache", "enabled") {
		cfg.Cache.Enabled = true
	}
	cfg.applyDefaults()

	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.Portal.URL == "" {
		c.Portal.URL = DefaultPortalURL
	}
	if c.Portal.Timeout == 0 {
		c.Portal.Timeout = DefaultTimeout
	}
	if c.Library.BooksPerPage == 0 {
		c.Library.BooksPerPage = DefaultBooksPerPage
	}
	if c.Library.VideosPerPage == 0 {
		c.Library.VideosPerPage = DefaultVideosPerPage
	}
	if c.Cache.Path == "" {
		c.Cache.Path = DefaultCachePath()
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// DefaultCachePath returns the XDG-compliant snapshot database path.
func DefaultCachePath() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./acervo-cache.db"
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "acervo", "cache.db")
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces variable references with environment values.
// References that cannot be resolved are left in place and reported.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		name, op, arg := groups[1], groups[2], groups[3]

		value, ok := os.LookupEnv(name)
		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, name+": "+arg)
				return match
			}
			return value
		}
		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})
	return out, missing
}
