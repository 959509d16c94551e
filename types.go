package mdblog

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-mdblog/internal/pipeline"
)

// PostMetadata is the listing-safe projection of a post.
type PostMetadata struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	Date        string         `json:"date" yaml:"date"`
	Description string         `json:"description" yaml:"description"`
	Params      map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// Post is a fully rendered post.
type Post struct {
	PostMetadata `yaml:",inline"`
	Markdown     string `json:"markdown,omitempty" yaml:"markdown,omitempty"` // body after front matter
	Content      string `json:"content" yaml:"content"`                       // rendered HTML
}

// Page is one slice of a sorted, optionally filtered listing.
type Page struct {
	Posts      []PostMetadata `json:"posts" yaml:"posts"`
	Number     int            `json:"page" yaml:"page"`
	PerPage    int            `json:"perPage" yaml:"perPage"`
	TotalPosts int            `json:"totalPosts" yaml:"totalPosts"`
	TotalPages int            `json:"totalPages" yaml:"totalPages"`
}

// HasPrev reports whether a page precedes this one.
func (p Page) HasPrev() bool {
	return p.Number > 1 && p.TotalPages > 0
}

// HasNext reports whether a page follows this one.
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// DefaultPattern matches Markdown files at the root of the content directory.
const DefaultPattern = "*.md"

// Concurrency bounds for metadata loading.
const (
	DefaultWorkers = 8
	MaxWorkers     = 64
)

// defaultDebounce groups bursts of file events (editors write in several steps).
const defaultDebounce = 100 * time.Millisecond

// Option configures a Repository.
type Option func(*Repository)

// WithPattern sets the doublestar glob selecting post files, relative to the
// content root. Use "**/*.md" to include subdirectories.
func WithPattern(pattern string) Option {
	return func(r *Repository) {
		r.pattern = pattern
	}
}

// WithWorkers sets how many files are parsed concurrently when listing.
// Values outside [1, MaxWorkers] are clamped.
func WithWorkers(n int) Option {
	return func(r *Repository) {
		r.workers = min(max(n, 1), MaxWorkers)
	}
}

// WithLogger sets the logger used for skipped posts and watch events.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Repository) {
		r.logger = l
	}
}

// WithMetadataCache keeps the sorted metadata listing in memory until
// Invalidate is called or Watch observes a change.
func WithMetadataCache() Option {
	return func(r *Repository) {
		r.cache = &metadataCache{}
	}
}

// WithLenientFrontMatter lets posts with blank title, date or description
// through instead of rejecting them.
func WithLenientFrontMatter() Option {
	return func(r *Repository) {
		r.frontMatterOpts = append(r.frontMatterOpts, pipeline.WithLenientFields())
	}
}

// WithDateFormat sets how native front matter dates become strings.
// Accepts "iso", "datetime", "european", "us", "long" or a token format
// such as "YYYY-MM-DD". Formats that do not sort lexically break date ordering.
func WithDateFormat(format string) Option {
	return func(r *Repository) {
		r.frontMatterOpts = append(r.frontMatterOpts, pipeline.WithDateFormat(format))
	}
}

// WithHighlighting configures code block highlighting.
func WithHighlighting(style string, classes, lineNumbers bool) Option {
	return func(r *Repository) {
		r.converterOpts.HighlightStyle = style
		r.converterOpts.HighlightClasses = classes
		r.converterOpts.LineNumbers = lineNumbers
	}
}

// WithHardWraps renders newlines inside paragraphs as <br>.
func WithHardWraps() Option {
	return func(r *Repository) {
		r.converterOpts.HardWraps = true
	}
}
