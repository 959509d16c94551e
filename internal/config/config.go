package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/alnah/go-mdblog/internal/dateutil"
	"github.com/alnah/go-mdblog/internal/fileutil"
	"github.com/alnah/go-mdblog/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrUnknownStyle    = errors.New("unknown highlight style")
	ErrOutOfRange      = errors.New("value out of range")
	ErrInvalidGlob     = errors.New("invalid glob pattern")
)

// Field length limits.
const (
	MaxDirLength        = 4096 // PATH_MAX on Linux
	MaxPatternLength    = 256  // "**/*.md", "posts/*.markdown"
	MaxStyleLength      = 50   // "github", "solarized-dark256"
	MaxDateFormatLength = dateutil.MaxDateFormatLength
)

// Numeric limits.
const (
	MaxPerPage = 100
	MaxWorkers = 64
)

// Defaults applied by DefaultConfig.
const (
	DefaultContentDir     = "posts"
	DefaultPattern        = "*.md"
	DefaultHighlightStyle = "github"
	DefaultPerPage        = 10
	DefaultWorkers        = 8
)

// Config holds all configuration for the blog content pipeline.
type Config struct {
	Content     ContentConfig     `yaml:"content"`
	Markdown    MarkdownConfig    `yaml:"markdown"`
	FrontMatter FrontMatterConfig `yaml:"frontMatter"`
	Pagination  PaginationConfig  `yaml:"pagination"`
	Links       LinksConfig       `yaml:"links"`
	Cache       CacheConfig       `yaml:"cache"`
	Workers     int               `yaml:"workers"` // Front matter loading concurrency
}

// ContentConfig defines where posts are read from.
type ContentConfig struct {
	Dir     string `yaml:"dir"`     // Content directory (default: "posts")
	Pattern string `yaml:"pattern"` // doublestar glob relative to Dir (default: "*.md")
}

// MarkdownConfig defines Markdown rendering options.
type MarkdownConfig struct {
	HighlightStyle   string `yaml:"highlightStyle"`   // chroma style name
	HighlightClasses bool   `yaml:"highlightClasses"` // emit CSS classes instead of inline styles
	LineNumbers      bool   `yaml:"lineNumbers"`
	HardWraps        bool   `yaml:"hardWraps"` // render soft breaks as <br>
}

// FrontMatterConfig defines front matter handling.
type FrontMatterConfig struct {
	Lenient    bool   `yaml:"lenient"`    // allow blank title, date or description
	DateFormat string `yaml:"dateFormat"` // preset or token format for native dates
}

// PaginationConfig defines listing defaults.
type PaginationConfig struct {
	PerPage int `yaml:"perPage"`
}

// LinksConfig defines link post-processing.
type LinksConfig struct {
	ExternalIcons bool `yaml:"externalIcons"`
}

// CacheConfig defines metadata caching.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Validate checks field lengths, enums and numeric ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	// Validate content fields
	if err := validateFieldLength("content.dir", c.Content.Dir, MaxDirLength); err != nil {
		return err
	}
	if err := validateFieldLength("content.pattern", c.Content.Pattern, MaxPatternLength); err != nil {
		return err
	}
	if c.Content.Pattern != "" && !doublestar.ValidatePattern(c.Content.Pattern) {
		return fmt.Errorf("content.pattern: %w: %q", ErrInvalidGlob, c.Content.Pattern)
	}

	// Validate markdown fields
	if err := validateFieldLength("markdown.highlightStyle", c.Markdown.HighlightStyle, MaxStyleLength); err != nil {
		return err
	}
	if c.Markdown.HighlightStyle != "" {
		if _, ok := styles.Registry[strings.ToLower(c.Markdown.HighlightStyle)]; !ok {
			return fmt.Errorf("markdown.highlightStyle: %w: %q", ErrUnknownStyle, c.Markdown.HighlightStyle)
		}
	}

	// Validate front matter fields
	if err := validateFieldLength("frontMatter.dateFormat", c.FrontMatter.DateFormat, MaxDateFormatLength); err != nil {
		return err
	}
	if _, err := dateutil.Layout(c.FrontMatter.DateFormat); err != nil {
		return fmt.Errorf("frontMatter.dateFormat: %w", err)
	}

	// Validate numeric fields
	if c.Pagination.PerPage < 0 || c.Pagination.PerPage > MaxPerPage {
		return fmt.Errorf("pagination.perPage: %w: must be between 1 and %d, got %d", ErrOutOfRange, MaxPerPage, c.Pagination.PerPage)
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("workers: %w: must be between 1 and %d, got %d", ErrOutOfRange, MaxWorkers, c.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
// Zero numeric fields in a loaded file fall back to these values.
func DefaultConfig() *Config {
	return &Config{
		Content:     ContentConfig{Dir: DefaultContentDir, Pattern: DefaultPattern},
		Markdown:    MarkdownConfig{HighlightStyle: DefaultHighlightStyle},
		FrontMatter: FrontMatterConfig{DateFormat: dateutil.DefaultDateFormat},
		Pagination:  PaginationConfig{PerPage: DefaultPerPage},
		Links:       LinksConfig{ExternalIcons: true},
		Workers:     DefaultWorkers,
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.fillDefaults()

	return cfg, nil
}

// fillDefaults restores defaults for fields explicitly set to zero values.
func (c *Config) fillDefaults() {
	if c.Content.Dir == "" {
		c.Content.Dir = DefaultContentDir
	}
	if c.Content.Pattern == "" {
		c.Content.Pattern = DefaultPattern
	}
	if c.Markdown.HighlightStyle == "" {
		c.Markdown.HighlightStyle = DefaultHighlightStyle
	}
	if c.Pagination.PerPage == 0 {
		c.Pagination.PerPage = DefaultPerPage
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-mdblog/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-mdblog", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
