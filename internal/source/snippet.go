package source

import (
	"go/ast"
	"strings"
	"unicode"

	lderrors "github.com/conneroisu/livedoc/internal/errors"
)

// Snippet is the body of a function literal as shown next to its output.
type Snippet struct {
	// File is the path the snippet was requested with.
	File string
	// Begin and End are the 1-based lines of the opening and closing braces.
	Begin int
	End   int
	// Lines holds the statements between the braces, dedented.
	Lines []string
}

// Body joins the snippet lines.
func (s Snippet) Body() string {
	return strings.Join(s.Lines, "\n")
}

// Fence wraps the snippet in a markdown code fence with a setup line, such
// as an import, above the body.
func (s Snippet) Fence(lang, setup string) string {
	return Fence(lang, setup, s.Lines)
}

// Fence builds a fenced code block: the opening marker with lang, the setup
// line when not empty, the body lines and the closing marker.
func Fence(lang, setup string, body []string) string {
	out := make([]string, 0, len(body)+3)
	out = append(out, "```"+lang)
	if setup != "" {
		out = append(out, setup)
	}
	out = append(out, body...)
	out = append(out, "```")
	return strings.Join(out, "\n")
}

// Block returns the body of the function literal that starts on line of
// file. When several literals start on that line the outermost wins.
func (s *Store) Block(file string, line int) (Snippet, error) {
	f, err := s.parsed(file)
	if err != nil {
		return Snippet{}, err
	}

	lit := s.findFuncLit(f.ast, line)
	if lit == nil {
		return Snippet{}, lderrors.ErrBlockNotFound(file, line)
	}
	return s.snippetOf(f, file, lit), nil
}

// Find returns the body of the function literal at loc. The literal is
// resolved from the closure name the runtime reports, such as
// "homePage.func2", so it is still found after edits have moved it to
// another line. Names that cannot be resolved fall back to Block.
func (s *Store) Find(loc Location) (Snippet, error) {
	f, err := s.parsed(loc.File)
	if err != nil {
		return Snippet{}, err
	}
	if lit := resolveClosure(f.ast, loc.Func); lit != nil {
		return s.snippetOf(f, loc.File, lit), nil
	}
	return s.Block(loc.File, loc.Line)
}

func (s *Store) snippetOf(f *sourceFile, file string, lit *ast.FuncLit) Snippet {
	lbrace := s.fset.Position(lit.Body.Lbrace)
	rbrace := s.fset.Position(lit.Body.Rbrace)
	snip := Snippet{File: file, Begin: lbrace.Line, End: rbrace.Line}

	if snip.Begin == snip.End {
		inner := strings.TrimSpace(string(f.src[lbrace.Offset+1 : rbrace.Offset]))
		if inner != "" {
			snip.Lines = []string{inner}
		}
		return snip
	}

	snip.Lines = Dedent(Between(f.lines, snip.Begin, snip.End))
	return snip
}

func (s *Store) findFuncLit(tree *ast.File, line int) *ast.FuncLit {
	var exact *ast.FuncLit
	ast.Inspect(tree, func(n ast.Node) bool {
		if exact != nil {
			return false
		}
		lit, ok := n.(*ast.FuncLit)
		if ok && s.fset.Position(lit.Pos()).Line == line {
			exact = lit
			return false
		}
		return true
	})
	return exact
}

// Between returns the lines strictly between the 1-based lines begin and
// end. An inverted or out-of-range span yields an empty result.
func Between(lines []string, begin, end int) []string {
	lo, hi := begin, end-1
	if lo < 0 {
		lo = 0
	}
	if hi > len(lines) {
		hi = len(lines)
	}
	if lo >= hi {
		return nil
	}
	return append([]string(nil), lines[lo:hi]...)
}

// Dedent trims leading and trailing blank lines and removes the longest
// leading whitespace shared by all non-blank lines. Blank lines become
// empty.
func Dedent(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	if start == end {
		return nil
	}
	lines = lines[start:end]

	prefix := ""
	first := true
	for _, l := range lines {
		if isBlank(l) {
			continue
		}
		indent := leadingSpace(l)
		if first {
			prefix = indent
			first = false
			continue
		}
		prefix = commonPrefix(prefix, indent)
	}

	out := make([]string, len(lines))
	for i, l := range lines {
		if isBlank(l) {
			continue
		}
		out[i] = strings.TrimRightFunc(strings.TrimPrefix(l, prefix), unicode.IsSpace)
	}
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
