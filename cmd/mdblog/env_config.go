package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-mdblog/internal/config"
	"github.com/alnah/go-mdblog/internal/fileutil"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string // MDBLOG_CONFIG: config file name or path
	ContentDir     string // MDBLOG_CONTENT_DIR: content directory
	Pattern        string // MDBLOG_PATTERN: post file glob
	HighlightStyle string // MDBLOG_HIGHLIGHT_STYLE: chroma style name
	DateFormat     string // MDBLOG_DATE_FORMAT: front matter date format
	PerPage        int    // MDBLOG_PER_PAGE: listing page size
	Workers        int    // MDBLOG_WORKERS: parallel workers
	Lenient        bool   // MDBLOG_LENIENT: accept blank required fields
}

// knownEnvVars lists valid MDBLOG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDBLOG_CONFIG":          true,
	"MDBLOG_CONTENT_DIR":     true,
	"MDBLOG_PATTERN":         true,
	"MDBLOG_HIGHLIGHT_STYLE": true,
	"MDBLOG_DATE_FORMAT":     true,
	"MDBLOG_PER_PAGE":        true,
	"MDBLOG_WORKERS":         true,
	"MDBLOG_LENIENT":         true,
}

// envLookup returns a getenv function that falls back to values read from
// env.DotEnv. The process environment always wins.
// A missing file is not an error.
func envLookup(env *Environment) (func(string) string, error) {
	if env.DotEnv == "" || !fileutil.FileExists(env.DotEnv) {
		return env.Getenv, nil
	}
	vars, err := godotenv.Read(env.DotEnv)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrUsage, env.DotEnv, err)
	}
	return func(key string) string {
		if v := env.Getenv(key); v != "" {
			return v
		}
		return vars[key]
	}, nil
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and booleans are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:     getenv("MDBLOG_CONFIG"),
		ContentDir:     getenv("MDBLOG_CONTENT_DIR"),
		Pattern:        getenv("MDBLOG_PATTERN"),
		HighlightStyle: getenv("MDBLOG_HIGHLIGHT_STYLE"),
		DateFormat:     getenv("MDBLOG_DATE_FORMAT"),
	}

	if perPage := getenv("MDBLOG_PER_PAGE"); perPage != "" {
		if n, err := strconv.Atoi(perPage); err == nil && n > 0 {
			cfg.PerPage = n
		}
	}
	if workers := getenv("MDBLOG_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if lenient := getenv("MDBLOG_LENIENT"); lenient != "" {
		if b, err := strconv.ParseBool(lenient); err == nil {
			cfg.Lenient = b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDBLOG_* variables.
// Helps catch typos like MDBLOG_CONTENTDIR instead of MDBLOG_CONTENT_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, "MDBLOG_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are applied later
// via mergeCommonFlags, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.ContentDir != "" {
		cfg.Content.Dir = env.ContentDir
	}
	if env.Pattern != "" {
		cfg.Content.Pattern = env.Pattern
	}
	if env.HighlightStyle != "" {
		cfg.Markdown.HighlightStyle = env.HighlightStyle
	}
	if env.DateFormat != "" {
		cfg.FrontMatter.DateFormat = env.DateFormat
	}
	if env.PerPage > 0 {
		cfg.Pagination.PerPage = env.PerPage
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
	if env.Lenient {
		cfg.FrontMatter.Lenient = true
	}
}
