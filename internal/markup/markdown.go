// Package markup converts the formatted text shown on documentation pages:
// markdown with highlighted code blocks, Go doc comments, and the tailwind
// class normalization applied to both.
package markup

import (
	"bytes"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// DefaultCodeStyle is the chroma style used for fenced code blocks.
const DefaultCodeStyle = "friendly"

// Renderer converts markdown to HTML.
type Renderer struct {
	codeStyle *chroma.Style
	formatter *chromahtml.Formatter
	tailwind  bool
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithCodeStyle selects the chroma style by name. Unknown names fall back to
// chroma's default style.
func WithCodeStyle(name string) RendererOption {
	return func(r *Renderer) {
		r.codeStyle = styles.Get(name)
	}
}

// WithoutTailwind disables tailwind class normalization.
func WithoutTailwind() RendererOption {
	return func(r *Renderer) { r.tailwind = false }
}

// NewRenderer returns a markdown renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		codeStyle: styles.Get(DefaultCodeStyle),
		formatter: chromahtml.New(chromahtml.TabWidth(4), chromahtml.WithClasses(false)),
		tailwind:  true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.codeStyle == nil {
		r.codeStyle = styles.Fallback
	}
	return r
}

// Markdown renders md to HTML.
func (r *Renderer) Markdown(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags:          mdhtml.CommonFlags | mdhtml.HrefTargetBlank,
		RenderNodeHook: r.renderCodeBlock,
	})
	out := strings.TrimSpace(string(markdown.ToHTML([]byte(md), p, renderer)))
	if r.tailwind {
		return ApplyTailwind(out)
	}
	return out
}

// renderCodeBlock highlights fenced code blocks with chroma.
func (r *Renderer) renderCodeBlock(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	block, ok := node.(*ast.CodeBlock)
	if !ok {
		return ast.GoToNext, false
	}
	lang := strings.Fields(string(block.Info))
	var name string
	if len(lang) > 0 {
		name = lang[0]
	}
	if err := r.Highlight(w, string(block.Literal), name); err != nil {
		return ast.GoToNext, false
	}
	return ast.GoToNext, true
}

// Highlight writes code as highlighted HTML. The lexer is picked by
// language name, then by content analysis.
func (r *Renderer) Highlight(w io.Writer, code, language string) error {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iter, err := lexer.Tokenise(nil, code)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := r.formatter.Format(&buf, r.codeStyle, iter); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}
