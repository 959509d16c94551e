package hints

// Notes:
// - ForContentDir tests cannot use t.Parallel() because they swap the
//   package-level LookupEnv variable.

import (
	"strings"
	"testing"
)

func withEnv(t *testing.T, env map[string]string) {
	t.Helper()
	orig := LookupEnv
	t.Cleanup(func() { LookupEnv = orig })
	LookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestForContentDir_EnvUnset(t *testing.T) {
	withEnv(t, nil)

	hint := ForContentDir("posts")

	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("expected hint prefix, got %q", hint)
	}
	if !strings.Contains(hint, "--dir") {
		t.Error("expected --dir suggestion")
	}
	if !strings.Contains(hint, "MDBLOG_CONTENT_DIR") {
		t.Error("expected MDBLOG_CONTENT_DIR suggestion when unset")
	}
	if !strings.Contains(hint, "relative paths") {
		t.Error("expected relative path note for relative dir")
	}
}

func TestForContentDir_EnvAlreadySet(t *testing.T) {
	withEnv(t, map[string]string{"MDBLOG_CONTENT_DIR": "/srv/posts"})

	hint := ForContentDir("/srv/posts")

	if strings.Contains(hint, "MDBLOG_CONTENT_DIR") {
		t.Error("should not suggest MDBLOG_CONTENT_DIR when already set")
	}
	if strings.Contains(hint, "relative paths") {
		t.Error("should not mention relative paths for absolute dir")
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	t.Run("suggests user config path", func(t *testing.T) {
		t.Parallel()

		hint := ForConfigNotFound([]string{"blog.yaml", "/home/u/.config/go-mdblog/blog.yaml"})
		if !strings.Contains(hint, "--config") {
			t.Error("expected --config suggestion")
		}
		if !strings.Contains(hint, "or create /home/u/.config/go-mdblog/blog.yaml") {
			t.Errorf("expected user config path, got %q", hint)
		}
	})

	t.Run("no user path", func(t *testing.T) {
		t.Parallel()

		hint := ForConfigNotFound([]string{"blog.yaml"})
		if strings.Contains(hint, "or create") {
			t.Errorf("unexpected create suggestion: %q", hint)
		}
	})
}

func TestForStyleNotFound(t *testing.T) {
	t.Parallel()

	if got := ForStyleNotFound(nil); got != "" {
		t.Errorf("ForStyleNotFound(nil) = %q, want empty", got)
	}
	got := ForStyleNotFound([]string{"github", "monokai"})
	if got != "\n  hint: available: github, monokai" {
		t.Errorf("ForStyleNotFound() = %q", got)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"post not found", ForPostNotFound(), "mdblog ids"},
		{"invalid page", ForInvalidPage(), "start at 1"},
		{"front matter", ForFrontMatter(), "--lenient"},
		{"output directory", ForOutputDirectory(), "writable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.got, "\n  hint: ") {
				t.Errorf("missing hint prefix: %q", tt.got)
			}
			if !strings.Contains(tt.got, tt.want) {
				t.Errorf("hint %q does not contain %q", tt.got, tt.want)
			}
		})
	}
}

func TestFormatHints_Empty(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}
