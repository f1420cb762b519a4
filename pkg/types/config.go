// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

const (
	DefaultURL       = "https://www.motoreststaraposta.cz/poledni-nabidka/"
	DefaultSelector  = "font.wsw-02"
	DefaultOutput    = "menu.json"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "lunch-menu/0.1"
)

// HTTPConfig holds HTTP settings for fetching the menu page.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with the request.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// OutputFormat selects the encoding of the output file.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// Valid reports whether f is a supported output format.
func (f OutputFormat) Valid() bool {
	return f == FormatJSON || f == FormatYAML
}

// ScrapeConfig holds settings for one scrape run.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// URL is the menu page address.
	URL string `json:"url" yaml:"url"`

	// Selector is the CSS selector marking menu text blocks on the page.
	Selector string `json:"selector" yaml:"selector"`

	// OutputPath is the file the extracted menu is written to.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Format selects the output encoding: json or yaml.
	Format OutputFormat `json:"format" yaml:"format"`

	// ArchivePath is the SQLite history database. Empty disables archiving.
	ArchivePath string `json:"archive_path,omitempty" yaml:"archive_path,omitempty"`
}

// WithDefaults returns a copy of c with zero fields set to their defaults.
func (c ScrapeConfig) WithDefaults() ScrapeConfig {
	if c.URL == "" {
		c.URL = DefaultURL
	}
	if c.Selector == "" {
		c.Selector = DefaultSelector
	}
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutput
	}
	if c.Format == "" {
		c.Format = FormatJSON
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return c
}

// ArchiveConfig holds settings for the menu history database.
type ArchiveConfig struct {
	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default maximum number of history rows (default 30).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
