package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validLogFormats = map[string]bool{
	"text": true, "json": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Portal
	if c.Portal.URL == "" {
		errs = append(errs, "portal.url: required")
	} else if u, err := url.Parse(c.Portal.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("portal.url: must be an http(s) URL, got %q", c.Portal.URL))
	}
	if c.Portal.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("portal.timeout: must not be negative, got %s", c.Portal.Timeout))
	}

	// Library
	if c.Library.BooksPerPage < 0 {
		errs = append(errs, fmt.Sprintf("library.books_per_page: must be positive, got %d", c.Library.BooksPerPage))
	}
	if c.Library.VideosPerPage < 0 {
		errs = append(errs, fmt.Sprintf("library.videos_per_page: must be positive, got %d", c.Library.VideosPerPage))
	}

	// Cache
	if c.Cache.Enabled && c.Cache.Path == "" {
		errs = append(errs, "cache.path: required when cache is enabled")
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, fmt.Sprintf("cache.ttl: must not be negative, got %s", c.Cache.TTL))
	}

	// Log
	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if !validLogFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("log.format: must be text or json; got %q", c.Log.Format))
	}

	return errs
}
