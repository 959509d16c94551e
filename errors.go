package mdblog

import (
	"errors"

	"github.com/alnah/go-mdblog/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrNotFound        = errors.New("post not found")
	ErrInvalidPage     = errors.New("invalid page")
	ErrContentDir      = errors.New("content directory unavailable")
	ErrInvalidPattern  = errors.New("invalid file pattern")
	ErrWatchNotAllowed = errors.New("watching requires a directory-backed repository")

	// Pipeline errors, re-exported so callers can match them with errors.Is.
	ErrMalformedFrontMatter = pipeline.ErrMalformedFrontMatter
	ErrHTMLConversion       = pipeline.ErrHTMLConversion
)
