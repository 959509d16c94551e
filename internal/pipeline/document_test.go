package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const samplePost = "---\r\n" +
	"title: Alpha\r\n" +
	"date: \"2024-05-01\"\r\n" +
	"description: The first letter\r\n" +
	"---\r\n" +
	"# Alpha\r\n" +
	"\r\n" +
	":::warn\r\n" +
	"Mind the gap\r\n" +
	":::\r\n"

func newRenderer(t *testing.T, opts ...FrontMatterOption) *Renderer {
	t.Helper()
	return NewRenderer(newParser(t, opts...), nil)
}

// ---------------------------------------------------------------------------
// TestRenderer_Render - Full pipeline
// ---------------------------------------------------------------------------

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	doc, err := newRenderer(t).Render(context.Background(), []byte(samplePost))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if doc.FrontMatter.Title != "Alpha" {
		t.Errorf("Title = %q, want Alpha", doc.FrontMatter.Title)
	}
	if strings.Contains(doc.Markdown, "\r") {
		t.Errorf("Markdown still has CR: %q", doc.Markdown)
	}
	if strings.Contains(doc.Markdown, "title:") {
		t.Errorf("Markdown includes front matter: %q", doc.Markdown)
	}
	if !strings.Contains(doc.HTML, "<h1>Alpha</h1>") {
		t.Errorf("HTML missing heading: %q", doc.HTML)
	}
	if !strings.Contains(doc.HTML, `<div class="callout callout-warn">Mind the gap</div>`) {
		t.Errorf("HTML missing callout: %q", doc.HTML)
	}
}

func TestRenderer_Render_BOM(t *testing.T) {
	t.Parallel()

	src := "\xEF\xBB\xBF---\ntitle: B\ndate: \"2024-01-01\"\ndescription: bom\n---\nbody\n"
	doc, err := newRenderer(t).Render(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if doc.FrontMatter.Title != "B" {
		t.Errorf("Title = %q, want B", doc.FrontMatter.Title)
	}
}

func TestRenderer_Render_Deterministic(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	first, err := r.Render(context.Background(), []byte(samplePost))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := r.Render(context.Background(), []byte(samplePost))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if first.HTML != second.HTML {
		t.Errorf("HTML differs between renders\nfirst:  %q\nsecond: %q", first.HTML, second.HTML)
	}
}

func TestRenderer_Errors(t *testing.T) {
	t.Parallel()

	t.Run("malformed front matter", func(t *testing.T) {
		t.Parallel()

		_, err := newRenderer(t).Render(context.Background(), []byte("# no front matter\n"))
		if !errors.Is(err, ErrMalformedFrontMatter) {
			t.Errorf("error = %v, want ErrMalformedFrontMatter", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newRenderer(t).Render(ctx, []byte(samplePost))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestPostPreprocessor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"crlf", "a\r\nb\r\n", "a\nb\n"},
		{"lone cr", "a\rb", "a\nb"},
		{"bom", "\xEF\xBB\xBFx", "x"},
		{"unchanged", "a\nb", "a\nb"},
	}

	p := &PostPreprocessor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.PreprocessMarkdown(context.Background(), tt.input); got != tt.want {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
