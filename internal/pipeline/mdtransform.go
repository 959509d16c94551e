package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// utf8BOM is stripped so front matter delimiters are found on the first line.
const utf8BOM = "\uFEFF"

// Line ending normalization
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// PostPreprocessor prepares a raw post file for front matter parsing.
type PostPreprocessor struct{}

// PreprocessMarkdown applies all transformations before front matter parsing.
// Authors edit posts on any platform, so CRLF files must behave like LF ones.
func (p *PostPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, utf8BOM)
	content = normalizeLineEndings(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
