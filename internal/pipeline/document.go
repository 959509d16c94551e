package pipeline

import (
	"context"
)

// Document is one rendered post file.
type Document struct {
	FrontMatter FrontMatter
	Markdown    string // body after front matter, normalized
	HTML        string
}

// Renderer runs the full pipeline over a post file.
// It holds no mutable state and is safe for concurrent use.
type Renderer struct {
	preprocessor MarkdownPreprocessor
	frontMatter  *FrontMatterParser
	converter    HTMLConverter
}

// NewRenderer returns a Renderer. A nil converter falls back to a
// GoldmarkConverter with default options.
func NewRenderer(fm *FrontMatterParser, converter HTMLConverter) *Renderer {
	if converter == nil {
		converter = NewGoldmarkConverter(ConverterOptions{})
	}
	return &Renderer{
		preprocessor: &PostPreprocessor{},
		frontMatter:  fm,
		converter:    converter,
	}
}

// Metadata parses only the front matter of source and returns it with the
// normalized body. Listings use it to skip Markdown conversion.
func (r *Renderer) Metadata(ctx context.Context, source []byte) (FrontMatter, []byte, error) {
	if err := ctx.Err(); err != nil {
		return FrontMatter{}, nil, err
	}
	normalized := r.preprocessor.PreprocessMarkdown(ctx, string(source))
	return r.frontMatter.Parse([]byte(normalized))
}

// Render parses the front matter of source and converts its body to HTML.
// Each stage completes before the next starts.
func (r *Renderer) Render(ctx context.Context, source []byte) (*Document, error) {
	fm, body, err := r.Metadata(ctx, source)
	if err != nil {
		return nil, err
	}

	htmlContent, err := r.converter.ToHTML(ctx, body)
	if err != nil {
		return nil, err
	}

	return &Document{
		FrontMatter: fm,
		Markdown:    string(body),
		HTML:        htmlContent,
	}, nil
}
