package mailer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Inline directives:
//
//	[!button|Label](https://example.com)  call-to-action link
//	[!answer|Text]                         collapsible "Show Answer" block
//
// Labels may contain backslash-escaped characters, so text produced by the
// md template func can be used as a label.
const (
	buttonPrefix = "[!button|"
	answerPrefix = "[!answer|"
)

var (
	KindButton = ast.NewNodeKind("Button")
	KindAnswer = ast.NewNodeKind("Answer")
)

// ButtonNode is a styled link.
type ButtonNode struct {
	ast.BaseInline
	URL   []byte
	Label []byte
}

func (n *ButtonNode) Kind() ast.NodeKind { return KindButton }

func (n *ButtonNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"URL": string(n.URL), "Label": string(n.Label)}, nil)
}

// AnswerNode hides its label behind a <details> toggle.
type AnswerNode struct {
	ast.BaseInline
	Label []byte
}

func (n *AnswerNode) Kind() ast.NodeKind { return KindAnswer }

func (n *AnswerNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Label": string(n.Label)}, nil)
}

// scanLabel reads an escaped label that starts at line[start] and ends at the
// first unescaped ']'. It returns the unescaped label and the index of ']'.
func scanLabel(line []byte, start int) ([]byte, int) {
	var label bytes.Buffer
	for i := start; i < len(line); i++ {
		switch c := line[i]; c {
		case '\\':
			if i+1 < len(line) && line[i+1] != '\n' {
				i++
				label.WriteByte(line[i])
				continue
			}
			label.WriteByte(c)
		case ']':
			return label.Bytes(), i
		case '\n':
			return nil, -1
		default:
			label.WriteByte(c)
		}
	}
	return nil, -1
}

type directiveParser struct{}

// NewDirectiveParser creates the inline parser for button and answer directives.
func NewDirectiveParser() parser.InlineParser {
	return &directiveParser{}
}

func (p *directiveParser) Trigger() []byte {
	return []byte{'['}
}

func (p *directiveParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	switch {
	case bytes.HasPrefix(line, []byte(answerPrefix)):
		label, end := scanLabel(line, len(answerPrefix))
		if end < 0 {
			return nil
		}
		block.Advance(end + 1)
		return &AnswerNode{Label: label}

	case bytes.HasPrefix(line, []byte(buttonPrefix)):
		label, end := scanLabel(line, len(buttonPrefix))
		if end < 0 || end+1 >= len(line) || line[end+1] != '(' {
			return nil
		}
		closing := bytes.IndexByte(line[end+2:], ')')
		if closing < 0 {
			return nil
		}
		url := line[end+2 : end+2+closing]
		block.Advance(end + 2 + closing + 1)
		return &ButtonNode{URL: url, Label: label}
	}
	return nil
}

type directiveRenderer struct {
	html.Config
}

// NewDirectiveRenderer creates the HTML renderer for directive nodes.
func NewDirectiveRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &directiveRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

func (r *directiveRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindButton, r.renderButton)
	reg.Register(KindAnswer, r.renderAnswer)
}

func (r *directiveRenderer) renderButton(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ButtonNode)

	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.URL, true)))
	_, _ = w.WriteString(`" class="btn">`)
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString(`</a>`)
	return ast.WalkContinue, nil
}

func (r *directiveRenderer) renderAnswer(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*AnswerNode)

	_, _ = w.WriteString(`<details class="answer"><summary>Show Answer</summary>✓ <strong>`)
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString(`</strong></details>`)
	return ast.WalkContinue, nil
}

type directiveExtension struct{}

// NewDirectiveExtension registers the button and answer directives with goldmark.
func NewDirectiveExtension() goldmark.Extender {
	return &directiveExtension{}
}

func (e *directiveExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(NewDirectiveParser(), 50),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewDirectiveRenderer(), 50),
	))
}
