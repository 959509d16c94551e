package config

// Notes:
// - TestLoadConfig is not parallel: name resolution subtests change the
//   working directory with t.Chdir.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Content.Dir != DefaultContentDir {
		t.Errorf("Content.Dir = %q, want %q", cfg.Content.Dir, DefaultContentDir)
	}
	if cfg.Content.Pattern != "*.md" {
		t.Errorf("Content.Pattern = %q, want %q", cfg.Content.Pattern, "*.md")
	}
	if cfg.Pagination.PerPage != 10 {
		t.Errorf("Pagination.PerPage = %d, want 10", cfg.Pagination.PerPage)
	}
	if !cfg.Links.ExternalIcons {
		t.Error("Links.ExternalIcons = false, want true")
	}
	if cfg.FrontMatter.Lenient {
		t.Error("FrontMatter.Lenient = true, want false")
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		wantMsg string
	}{
		{
			name:   "defaults pass",
			mutate: func(*Config) {},
		},
		{
			name:    "pattern too long",
			mutate:  func(c *Config) { c.Content.Pattern = strings.Repeat("a", MaxPatternLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "invalid glob",
			mutate:  func(c *Config) { c.Content.Pattern = "posts/[a" },
			wantErr: ErrInvalidGlob,
		},
		{
			name:    "unknown style",
			mutate:  func(c *Config) { c.Markdown.HighlightStyle = "no-such-style" },
			wantErr: ErrUnknownStyle,
		},
		{
			name:   "style is case-insensitive",
			mutate: func(c *Config) { c.Markdown.HighlightStyle = "Monokai" },
		},
		{
			name:   "date format preset",
			mutate: func(c *Config) { c.FrontMatter.DateFormat = "long" },
		},
		{
			name:    "bad date format",
			mutate:  func(c *Config) { c.FrontMatter.DateFormat = "[YYYY" },
			wantMsg: "frontMatter.dateFormat",
		},
		{
			name:    "negative per page",
			mutate:  func(c *Config) { c.Pagination.PerPage = -1 },
			wantErr: ErrOutOfRange,
		},
		{
			name:    "per page over limit",
			mutate:  func(c *Config) { c.Pagination.PerPage = MaxPerPage + 1 },
			wantErr: ErrOutOfRange,
		},
		{
			name:    "too many workers",
			mutate:  func(c *Config) { c.Workers = MaxWorkers + 1 },
			wantErr: ErrOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantMsg != "":
				if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
					t.Errorf("error = %v, want message containing %q", err, tt.wantMsg)
				}
			default:
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config over defaults", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "blog.yaml", `content:
  dir: "content/posts"
markdown:
  highlightStyle: "monokai"
  lineNumbers: true
pagination:
  perPage: 5
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Content.Dir != "content/posts" {
			t.Errorf("Content.Dir = %q, want %q", cfg.Content.Dir, "content/posts")
		}
		if cfg.Content.Pattern != DefaultPattern {
			t.Errorf("Content.Pattern = %q, want default %q", cfg.Content.Pattern, DefaultPattern)
		}
		if cfg.Markdown.HighlightStyle != "monokai" {
			t.Errorf("Markdown.HighlightStyle = %q, want monokai", cfg.Markdown.HighlightStyle)
		}
		if !cfg.Markdown.LineNumbers {
			t.Error("Markdown.LineNumbers = false, want true")
		}
		if cfg.Pagination.PerPage != 5 {
			t.Errorf("Pagination.PerPage = %d, want 5", cfg.Pagination.PerPage)
		}
		if !cfg.Links.ExternalIcons {
			t.Error("Links.ExternalIcons lost its default")
		}
	})

	t.Run("explicit zero values fall back to defaults", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "blog.yaml", "workers: 0\ncontent:\n  pattern: \"\"\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Workers != DefaultWorkers {
			t.Errorf("Workers = %d, want %d", cfg.Workers, DefaultWorkers)
		}
		if cfg.Content.Pattern != DefaultPattern {
			t.Errorf("Content.Pattern = %q, want %q", cfg.Content.Pattern, DefaultPattern)
		}
	})

	t.Run("links can be disabled", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "blog.yaml", "links:\n  externalIcons: false\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Links.ExternalIcons {
			t.Error("Links.ExternalIcons = true, want false")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "blog.yaml", "content:\n  directory: posts\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "blog.yaml", "pagination:\n  perPage: 1000\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("error = %v, want ErrOutOfRange", err)
		}
	})

	t.Run("config name resolves yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "myblog.yaml", "workers: 3\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("myblog")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Workers != 3 {
			t.Errorf("Workers = %d, want 3", cfg.Workers)
		}
	})

	t.Run("config name resolves yml when yaml not found", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "myblog.yml", "workers: 4\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("myblog")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Workers != 4 {
			t.Errorf("Workers = %d, want 4", cfg.Workers)
		}
	})

	t.Run("unknown name lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("nothing-here")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "nothing-here.yaml") || !strings.Contains(err.Error(), "nothing-here.yml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}
