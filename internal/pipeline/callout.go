package pipeline

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// calloutPattern matches a fenced callout inside a paragraph's text:
//
//	:::info
//	body
//	:::
//
// The shortest body wins, so two callouts in one paragraph stay separate.
var calloutPattern = regexp.MustCompile(`(?ms)^:::(\w+)[ \t]*\n(.*?)\n:::[ \t]*$`)

// calloutTypes lists the recognized callout types. Matching is case-sensitive.
var calloutTypes = map[string]bool{
	"info":  true,
	"warn":  true,
	"error": true,
}

// KindCallout is the node kind of Callout.
var KindCallout = ast.NewNodeKind("Callout")

// Callout is a block node holding the raw HTML body of a callout.
// The body is not parsed as Markdown.
type Callout struct {
	ast.BaseBlock
	CalloutType string
	Body        []byte
}

// NewCallout returns a Callout of the given type.
func NewCallout(calloutType string, body []byte) *Callout {
	return &Callout{CalloutType: calloutType, Body: body}
}

// Kind implements ast.Node.
func (n *Callout) Kind() ast.NodeKind {
	return KindCallout
}

// Dump implements ast.Node.
func (n *Callout) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"CalloutType": n.CalloutType,
		"Body":        string(n.Body),
	}, nil)
}

// calloutTransformer replaces matching text with Callout blocks.
//
// Goldmark stores each paragraph line as its own Text node, so matching runs
// over sibling Text nodes joined by their line breaks. A paragraph holding a
// callout is split in three: the text before it stays in place, the Callout
// follows, and a new paragraph of the same kind takes the text after it.
type calloutTransformer struct{}

// Transform implements parser.ASTTransformer.
func (t *calloutTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var queue []ast.Node
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindParagraph, ast.KindTextBlock:
			queue = append(queue, n)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	// Splitting appends the remainder, so a paragraph with several callouts
	// is consumed one callout at a time.
	for len(queue) > 0 {
		block := queue[0]
		queue = queue[1:]
		if rest := splitCallout(block, source); rest != nil {
			queue = append(queue, rest)
		}
	}
}

// textRun is a maximal sequence of sibling Text nodes and the text they form.
// starts and ends hold each node's offsets within value.
type textRun struct {
	nodes  []*ast.Text
	starts []int
	ends   []int
	value  []byte
}

func collectRuns(block ast.Node, source []byte) []*textRun {
	var runs []*textRun
	var cur *textRun

	for c := block.FirstChild(); c != nil; c = c.NextSibling() {
		txt, ok := c.(*ast.Text)
		if !ok {
			cur = nil
			continue
		}
		if cur == nil {
			cur = &textRun{}
			runs = append(runs, cur)
		} else if prev := cur.nodes[len(cur.nodes)-1]; prev.SoftLineBreak() || prev.HardLineBreak() {
			cur.value = append(cur.value, '\n')
		}
		cur.starts = append(cur.starts, len(cur.value))
		cur.value = append(cur.value, txt.Segment.Value(source)...)
		cur.ends = append(cur.ends, len(cur.value))
		cur.nodes = append(cur.nodes, txt)
	}
	return runs
}

// find returns the first callout in the run as the indexes of its first and
// last nodes. When the first match has an unknown type the run is left as text.
func (r *textRun) find() (first, last int, callout *Callout, ok bool) {
	loc := calloutPattern.FindSubmatchIndex(r.value)
	if loc == nil {
		return 0, 0, nil, false
	}
	calloutType := string(r.value[loc[2]:loc[3]])
	if !calloutTypes[calloutType] {
		return 0, 0, nil, false
	}
	first, last = indexOf(r.starts, loc[0]), indexOf(r.ends, loc[1])
	if first < 0 || last < first {
		return 0, 0, nil, false
	}
	body := bytes.Clone(bytes.TrimSpace(r.value[loc[4]:loc[5]]))
	return first, last, NewCallout(calloutType, body), true
}

func indexOf(offsets []int, v int) int {
	for i, o := range offsets {
		if o == v {
			return i
		}
	}
	return -1
}

// splitCallout replaces the first callout in block and returns the paragraph
// holding the remaining text, or nil when nothing follows.
func splitCallout(block ast.Node, source []byte) ast.Node {
	for _, run := range collectRuns(block, source) {
		first, last, callout, ok := run.find()
		if !ok {
			continue
		}
		return spliceCallout(block, run.nodes[first], run.nodes[last], callout)
	}
	return nil
}

func spliceCallout(block ast.Node, first, last *ast.Text, callout *Callout) ast.Node {
	parent := block.Parent()

	rest := newBlockLike(block)
	for c := last.NextSibling(); c != nil; {
		next := c.NextSibling()
		rest.AppendChild(rest, c)
		c = next
	}
	for c := ast.Node(first); c != nil; {
		next := c.NextSibling()
		block.RemoveChild(block, c)
		c = next
	}

	// The text before the callout now ends the paragraph.
	if tail, ok := block.LastChild().(*ast.Text); ok {
		tail.SetSoftLineBreak(false)
		tail.SetHardLineBreak(false)
	}

	parent.InsertAfter(parent, block, callout)
	if !block.HasChildren() {
		parent.RemoveChild(parent, block)
	}
	if !rest.HasChildren() {
		return nil
	}
	parent.InsertAfter(parent, callout, rest)
	return rest
}

// newBlockLike keeps tight list items tight when a paragraph is split.
func newBlockLike(n ast.Node) ast.Node {
	if n.Kind() == ast.KindTextBlock {
		return ast.NewTextBlock()
	}
	return ast.NewParagraph()
}

// calloutRenderer writes Callout nodes as wrapper divs around the raw body.
type calloutRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *calloutRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindCallout, r.renderCallout)
}

func (r *calloutRenderer) renderCallout(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Callout)
	_, _ = w.WriteString(`<div class="callout callout-`)
	_, _ = w.WriteString(n.CalloutType)
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(n.Body)
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}

type calloutExtension struct{}

// CalloutExtension adds ":::type" callout blocks to a goldmark.Markdown.
var CalloutExtension goldmark.Extender = &calloutExtension{}

// Extend implements goldmark.Extender.
func (e *calloutExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&calloutTransformer{}, 500),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&calloutRenderer{}, 500),
	))
}
