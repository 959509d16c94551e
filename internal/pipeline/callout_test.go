package pipeline

// Notes:
// - Callouts are tested through GoldmarkConverter so the transformer, the
//   renderer and the merge stage are exercised together, as in production.
// - Node-level tests cover the split bookkeeping that the rendered output
//   cannot show (empty prefix paragraphs removed, remainder kind kept).

import (
	"context"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func renderMarkdown(t *testing.T, md string) string {
	t.Helper()
	got, err := NewGoldmarkConverter(ConverterOptions{}).ToHTML(context.Background(), []byte(md))
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	return got
}

// ---------------------------------------------------------------------------
// TestCallout_Render - Rendered output
// ---------------------------------------------------------------------------

func TestCallout_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "info",
			input: ":::info\nX\n:::\n",
			want:  "<div class=\"callout callout-info\">X</div>\n",
		},
		{
			name:  "warn",
			input: ":::warn\nCareful\n:::\n",
			want:  "<div class=\"callout callout-warn\">Careful</div>\n",
		},
		{
			name:  "error",
			input: ":::error\nBroken\n:::\n",
			want:  "<div class=\"callout callout-error\">Broken</div>\n",
		},
		{
			name:  "multi-line body is trimmed",
			input: ":::info\n  first line\nsecond line\n:::\n",
			want:  "<div class=\"callout callout-info\">first line\nsecond line</div>\n",
		},
		{
			name:  "two callouts in one paragraph",
			input: ":::info\nA\n:::\n:::warn\nB\n:::\n",
			want:  "<div class=\"callout callout-info\">A</div>\n<div class=\"callout callout-warn\">B</div>\n",
		},
		{
			name:  "two callouts in separate paragraphs",
			input: ":::info\nA\n:::\n\n:::error\nB\n:::\n",
			want:  "<div class=\"callout callout-info\">A</div>\n<div class=\"callout callout-error\">B</div>\n",
		},
		{
			name:  "prefix and suffix stay paragraphs",
			input: "Before\n:::info\nX\n:::\nAfter\n",
			want:  "<p>Before</p>\n<div class=\"callout callout-info\">X</div>\n<p>After</p>\n",
		},
		{
			name:  "unrecognized first match leaves the text node literal",
			input: ":::note\nA\n:::\n:::info\nB\n:::\n",
			want:  "<p>:::note\nA\n:::\n:::info\nB\n:::</p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := renderMarkdown(t, tt.input)
			if got != tt.want {
				t.Errorf("render(%q)\n got: %q\nwant: %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCallout_Unrecognized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"unknown type", ":::note\nX\n:::\n"},
		{"type is case-sensitive", ":::Info\nX\n:::\n"},
		{"unclosed", ":::info\nX\n"},
		{"opening not alone on its line", "see :::info\nX\n:::\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := renderMarkdown(t, tt.input)
			if strings.Contains(got, "callout") {
				t.Errorf("render(%q) = %q, want no callout", tt.input, got)
			}
			if !strings.Contains(got, ":::") {
				t.Errorf("render(%q) = %q, want literal delimiters kept", tt.input, got)
			}
		})
	}
}

func TestCallout_InsideContainers(t *testing.T) {
	t.Parallel()

	t.Run("blockquote", func(t *testing.T) {
		t.Parallel()

		got := renderMarkdown(t, "> :::info\n> quoted\n> :::\n")
		want := "<blockquote>\n<div class=\"callout callout-info\">quoted</div>\n</blockquote>\n"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("code block is left alone", func(t *testing.T) {
		t.Parallel()

		got := renderMarkdown(t, "```\n:::info\nX\n:::\n```\n")
		if strings.Contains(got, "callout-info") {
			t.Errorf("callout rendered inside code block: %q", got)
		}
	})
}

// ---------------------------------------------------------------------------
// TestCalloutTransformer - AST shape
// ---------------------------------------------------------------------------

func parseTree(t *testing.T, src string) *ast.Document {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(CalloutExtension))
	doc, ok := md.Parser().Parse(text.NewReader([]byte(src))).(*ast.Document)
	if !ok {
		t.Fatal("Parse() did not return a document")
	}
	return doc
}

func childKinds(n ast.Node) []ast.NodeKind {
	var kinds []ast.NodeKind
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		kinds = append(kinds, c.Kind())
	}
	return kinds
}

func TestCalloutTransformer(t *testing.T) {
	t.Parallel()

	t.Run("whole paragraph becomes callout", func(t *testing.T) {
		t.Parallel()

		doc := parseTree(t, ":::info\nX\n:::\n")
		kinds := childKinds(doc)
		if len(kinds) != 1 || kinds[0] != KindCallout {
			t.Fatalf("children = %v, want [Callout]", kinds)
		}
		c := doc.FirstChild().(*Callout)
		if c.CalloutType != "info" || string(c.Body) != "X" {
			t.Errorf("callout = {%q %q}, want {info X}", c.CalloutType, c.Body)
		}
	})

	t.Run("split keeps order", func(t *testing.T) {
		t.Parallel()

		doc := parseTree(t, "a\n:::warn\nb\n:::\nc\n:::error\nd\n:::\ne\n")
		want := []ast.NodeKind{
			ast.KindParagraph, KindCallout, ast.KindParagraph, KindCallout, ast.KindParagraph,
		}
		got := childKinds(doc)
		if len(got) != len(want) {
			t.Fatalf("children = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("child %d = %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("tight list keeps text blocks", func(t *testing.T) {
		t.Parallel()

		doc := parseTree(t, "- :::info\n  X\n  :::\n  after\n")
		item := doc.FirstChild().FirstChild()
		got := childKinds(item)
		if len(got) != 2 || got[0] != KindCallout || got[1] != ast.KindTextBlock {
			t.Errorf("list item children = %v, want [Callout TextBlock]", got)
		}
	})
}
