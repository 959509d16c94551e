// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"
)

// LookupEnv is swapped by tests to simulate environment state.
var LookupEnv = os.LookupEnv

// ForContentDir returns hints for a missing or unreadable content directory.
// Suggests the flag, or the environment variable when it is not already set.
func ForContentDir(dir string) string {
	var hints []string

	hints = append(hints, "use --dir /path/to/posts")
	if _, ok := LookupEnv("MDBLOG_CONTENT_DIR"); !ok {
		hints = append(hints, "or set MDBLOG_CONTENT_DIR")
	}
	if dir != "" && !strings.HasPrefix(dir, "/") {
		hints = append(hints, "relative paths resolve from the working directory")
	}

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-mdblog/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-mdblog) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-mdblog") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForPostNotFound returns a hint pointing at the id listing command.
func ForPostNotFound() string {
	return format("run 'mdblog ids' to list available posts")
}

// ForInvalidPage returns a hint about page numbering.
func ForInvalidPage() string {
	return format("pages start at 1 and --per-page must be positive")
}

// ForFrontMatter returns a hint listing the required front matter fields.
func ForFrontMatter() string {
	return format("posts need title, date and description; use --lenient to allow blanks")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for highlight style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
