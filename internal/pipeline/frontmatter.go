package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-mdblog/internal/dateutil"
	"github.com/alnah/go-mdblog/internal/yamlutil"
)

// ErrMalformedFrontMatter indicates a post has no parseable front matter
// block or, in strict mode, lacks a required field.
var ErrMalformedFrontMatter = errors.New("malformed front matter")

// Reserved front matter keys. Every other key is kept in FrontMatter.Params.
const (
	keyTitle       = "title"
	keyDate        = "date"
	keyDescription = "description"
)

// FrontMatter holds the metadata block of a post.
type FrontMatter struct {
	Title       string         `json:"title"`
	Date        string         `json:"date"`
	Description string         `json:"description"`
	Params      map[string]any `json:"params,omitempty"`
}

// FrontMatterParser splits a post into front matter and Markdown body.
type FrontMatterParser struct {
	lenient    bool
	dateFormat string
	formats    []*frontmatter.Format
}

// FrontMatterOption configures a FrontMatterParser.
type FrontMatterOption func(*FrontMatterParser)

// WithLenientFields lets blank title, date and description through as
// empty strings instead of failing with ErrMalformedFrontMatter.
func WithLenientFields() FrontMatterOption {
	return func(p *FrontMatterParser) {
		p.lenient = true
	}
}

// WithDateFormat sets how native YAML and TOML dates are rendered to strings.
// Accepts the dateutil presets or a token format. Quoted dates are kept as-is.
func WithDateFormat(format string) FrontMatterOption {
	return func(p *FrontMatterParser) {
		p.dateFormat = format
	}
}

// NewFrontMatterParser returns a parser accepting "---" YAML and "+++" TOML
// blocks. It fails if the date format is invalid.
func NewFrontMatterParser(opts ...FrontMatterOption) (*FrontMatterParser, error) {
	p := &FrontMatterParser{dateFormat: dateutil.DefaultDateFormat}
	for _, opt := range opts {
		opt(p)
	}
	if _, err := dateutil.Layout(p.dateFormat); err != nil {
		return nil, err
	}

	p.formats = []*frontmatter.Format{
		frontmatter.NewFormat("---", "---", unmarshalYAML),
		frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
	}
	return p, nil
}

// unmarshalYAML decodes a YAML block with the size limits of yamlutil.
func unmarshalYAML(data []byte, v any) error {
	dst, ok := v.(*map[string]any)
	if !ok {
		return fmt.Errorf("unsupported front matter target %T", v)
	}
	m, err := yamlutil.UnmarshalMap(data)
	if err != nil {
		return err
	}
	*dst = m
	return nil
}

// Parse extracts the front matter of source and returns it with the body.
func (p *FrontMatterParser) Parse(source []byte) (FrontMatter, []byte, error) {
	raw := map[string]any{}
	body, err := frontmatter.MustParse(bytes.NewReader(source), &raw, p.formats...)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return FrontMatter{}, nil, fmt.Errorf("%w: no front matter block", ErrMalformedFrontMatter)
		}
		return FrontMatter{}, nil, fmt.Errorf("%w: %v", ErrMalformedFrontMatter, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	fm := FrontMatter{Params: make(map[string]any)}
	for key, value := range raw {
		switch key {
		case keyTitle:
			fm.Title = p.stringify(value)
		case keyDate:
			fm.Date = p.stringify(value)
		case keyDescription:
			fm.Description = p.stringify(value)
		default:
			fm.Params[key] = value
		}
	}

	if !p.lenient {
		if err := fm.validate(); err != nil {
			return FrontMatter{}, nil, fmt.Errorf("%w: %v", ErrMalformedFrontMatter, err)
		}
	}
	return fm, body, nil
}

func (fm *FrontMatter) validate() error {
	return validation.ValidateStruct(fm,
		validation.Field(&fm.Title, validation.Required),
		validation.Field(&fm.Date, validation.Required),
		validation.Field(&fm.Description, validation.Required),
	)
}

// stringify renders a decoded scalar as a string. Dates use the configured
// format so they sort lexically with quoted ISO dates.
func (p *FrontMatterParser) stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		// The layout was validated in NewFrontMatterParser.
		s, _ := dateutil.Format(v, p.dateFormat)
		return s
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
