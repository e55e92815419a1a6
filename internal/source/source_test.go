package source

import (
	"os"
	"strings"
	"testing"
	"testing/fstest"

	lderrors "github.com/conneroisu/livedoc/internal/errors"
	"github.com/conneroisu/livedoc/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `package demo

func pages(r *R) {
	r.Example("Demo", func(p *P) {
		Button(p, "X")
	})

	r.Example("Nested", func(p *P) {
		Row(p, func() {
			Label(p, "a")

			Label(p, "b")
		})
	})

	r.Example("Inline", func(p *P) { Label(p, "one") })
	r.Example("Empty", func(p *P) {
	})
}
`

func newSampleStore() *Store {
	return NewStore(fstest.MapFS{"demo.go": {Data: []byte(sample)}})
}

func TestBlockSingleStatement(t *testing.T) {
	snip, err := newSampleStore().Block("demo.go", 4)
	require.NoError(t, err)

	assert.Equal(t, 4, snip.Begin)
	assert.Equal(t, 6, snip.End)
	assert.Equal(t, []string{`Button(p, "X")`}, snip.Lines)
	assert.LessOrEqual(t, snip.Begin, snip.End)
}

func TestBlockKeepsNestedIndentation(t *testing.T) {
	snip, err := newSampleStore().Block("demo.go", 8)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Row(p, func() {",
		"\tLabel(p, \"a\")",
		"",
		"\tLabel(p, \"b\")",
		"})",
	}, snip.Lines)
}

func TestBlockPrefersLiteralStartingOnLine(t *testing.T) {
	store := newSampleStore()

	inner, err := store.Block("demo.go", 9)
	require.NoError(t, err)
	assert.Equal(t, 9, inner.Begin)
	assert.Equal(t, 13, inner.End)
	assert.Equal(t, []string{`Label(p, "a")`, "", `Label(p, "b")`}, inner.Lines)

	// Line 10 starts no literal; guessing a surrounding one could show
	// the wrong code.
	_, err = store.Block("demo.go", 10)
	assert.ErrorIs(t, err, &lderrors.LivedocError{Type: lderrors.ErrorTypeSource, Code: lderrors.ErrCodeBlockNotFound})
}

func TestBlockSingleLine(t *testing.T) {
	snip, err := newSampleStore().Block("absolute/path/to/demo.go", 16)
	require.NoError(t, err)
	assert.Equal(t, 16, snip.Begin)
	assert.Equal(t, 16, snip.End)
	assert.Equal(t, []string{`Label(p, "one")`}, snip.Lines)
}

func TestBlockEmptyBody(t *testing.T) {
	snip, err := newSampleStore().Block("demo.go", 17)
	require.NoError(t, err)
	assert.Empty(t, snip.Lines)
	assert.Equal(t, "```go\nimport \"ui\"\n```", snip.Fence("go", `import "ui"`))
}

func TestBlockNotFound(t *testing.T) {
	_, err := newSampleStore().Block("demo.go", 1)
	require.Error(t, err)
	assert.True(t, lderrors.IsSourceError(err))
	assert.ErrorIs(t, err, &lderrors.LivedocError{Type: lderrors.ErrorTypeSource, Code: lderrors.ErrCodeBlockNotFound})
}

func TestSourceUnavailable(t *testing.T) {
	store := newSampleStore()
	_, err := store.Text("missing.go")
	require.Error(t, err)
	assert.ErrorIs(t, err, &lderrors.LivedocError{Type: lderrors.ErrorTypeSource, Code: lderrors.ErrCodeSourceUnavailable})

	_, err = NewStore().Lines("demo.go")
	assert.True(t, lderrors.IsSourceError(err))
}

func TestUnparsableSource(t *testing.T) {
	store := NewStore(fstest.MapFS{"bad.go": {Data: []byte("package bad\nfunc (")}})
	_, err := store.Block("bad.go", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, &lderrors.LivedocError{Type: lderrors.ErrorTypeSource, Code: lderrors.ErrCodeParseFailed})
}

func TestStoreCachesAndInvalidates(t *testing.T) {
	fsys := fstest.MapFS{"demo.go": {Data: []byte("package a\n")}}
	store := NewStore(fsys)

	text, err := store.Text("/build/dir/demo.go")
	require.NoError(t, err)
	assert.Equal(t, "package a\n", text)

	fsys["demo.go"] = &fstest.MapFile{Data: []byte("package b\n")}
	text, _ = store.Text("/build/dir/demo.go")
	assert.Equal(t, "package a\n", text)

	store.Invalidate("demo.go")
	text, _ = store.Text("/build/dir/demo.go")
	assert.Equal(t, "package b\n", text)
}

func TestPrependOverridesRoots(t *testing.T) {
	store := NewStore(fstest.MapFS{"demo.go": {Data: []byte("package embedded\n")}})
	_, err := store.Text("demo.go")
	require.NoError(t, err)

	store.Prepend(fstest.MapFS{"demo.go": {Data: []byte("package disk\n")}})
	text, err := store.Text("demo.go")
	require.NoError(t, err)
	assert.Equal(t, "package disk\n", text)
}

func TestLinesSplitting(t *testing.T) {
	store := NewStore(fstest.MapFS{"crlf.go": {Data: []byte("a\r\nb\r\n")}})
	lines, err := store.Lines("crlf.go")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)
}

func TestLocateClosureInThisFile(t *testing.T) {
	body := func(p *ui.Builder) {
		ui.Label(p, "located")
		ui.Button(p, "X")
	}

	loc, err := Locate(body)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(loc.File, "source_test.go"))

	store := NewStore(os.DirFS("."))
	snip, err := store.Block(loc.File, loc.Line)
	require.NoError(t, err)
	assert.Equal(t, []string{`ui.Label(p, "located")`, `ui.Button(p, "X")`}, snip.Lines)
}

func TestCaller(t *testing.T) {
	loc, ok := Caller(0)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(loc.File, "source_test.go"))
	assert.Contains(t, loc.Func, "TestCaller")
}

func TestFuncName(t *testing.T) {
	name, err := FuncName(ui.Button)
	require.NoError(t, err)
	assert.Equal(t, "Button", name)

	name, err = FuncName((*ui.Element).Classes)
	require.NoError(t, err)
	assert.Equal(t, "Element.Classes", name)

	el := ui.NewElement("div")
	name, err = FuncName(el.Classes)
	require.NoError(t, err)
	assert.Equal(t, "Element.Classes", name)

	_, err = FuncName(42)
	assert.Error(t, err)

	var nilFunc func()
	_, err = FuncName(nilFunc)
	assert.Error(t, err)
}

func TestLocalName(t *testing.T) {
	assert.Equal(t, "Button", LocalName("github.com/conneroisu/livedoc/pkg/ui.Button"))
	assert.Equal(t, "pages.func1", LocalName("github.com/x/site.pages.func1"))
	assert.Equal(t, "main", LocalName("main.main"))
}

func TestDocIndex(t *testing.T) {
	fsys := fstest.MapFS{
		"widgets.go": {Data: []byte(`package widgets

// Button is a clickable button.
//
// More text.
func Button() *Thing { return nil }

// Thing is a widget.
type Thing struct{}

// Classes adds classes.
func (t *Thing) Classes() {}

func Bare() {}
`)},
		"widgets_test.go": {Data: []byte("package widgets\n\n// Helper is test only.\nfunc Helper() {}\n")},
		"notes.txt":       {Data: []byte("ignored")},
	}

	idx, err := NewDocIndex(fsys, "example.com/widgets")
	require.NoError(t, err)
	assert.Equal(t, "example.com/widgets", idx.ImportPath())

	text, ok := idx.Doc("Button")
	require.True(t, ok)
	assert.Equal(t, "Button is a clickable button.\n\nMore text.\n", text)

	text, ok = idx.Doc("Bare")
	assert.True(t, ok)
	assert.Empty(t, text)

	text, ok = idx.Doc("Thing.Classes")
	assert.True(t, ok)
	assert.Equal(t, "Classes adds classes.\n", text)

	_, ok = idx.Doc("Helper")
	assert.False(t, ok)
	assert.Equal(t, []string{"Bare", "Button", "Thing", "Thing.Classes"}, idx.Names())
}

func TestDocIndexEmpty(t *testing.T) {
	_, err := NewDocIndex(fstest.MapFS{"a.txt": {Data: []byte("x")}}, "example.com/none")
	assert.Error(t, err)
}

func TestDocIndexOfWidgetLibrary(t *testing.T) {
	idx, err := NewDocIndex(ui.Sources, ui.ImportPath)
	require.NoError(t, err)

	text, ok := idx.Doc("Button")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(text, "Button is a clickable button."))

	text, ok = idx.Doc("Separator")
	assert.True(t, ok)
	assert.Empty(t, text)
}

func TestClosurePath(t *testing.T) {
	testCases := []struct {
		name     string
		full     string
		decl     string
		ordinals []int
		ok       bool
	}{
		{"top level", "github.com/conneroisu/livedoc/internal/site.homePage.func2", "homePage", []int{2}, true},
		{"nested", "example.com/demo.pages.func2.1", "pages", []int{2, 1}, true},
		{"pointer method", "example.com/demo.(*R).run.func1", "R.run", []int{1}, true},
		{"value method", "example.com/demo.R.run.func3", "R.run", []int{3}, true},
		{"not a closure", "example.com/demo.pages", "", nil, false},
		{"package var", "example.com/demo.glob..func1", "glob.", []int{1}, true},
		{"generic", "example.com/demo.run[...].func1", "", nil, false},
		{"wrapper", "example.com/demo.pages.func1.gowrap1", "", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decl, ordinals, ok := ClosurePath(tc.full)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.decl, decl)
			assert.Equal(t, tc.ordinals, ordinals)
		})
	}
}

func TestFindByClosureName(t *testing.T) {
	store := newSampleStore()

	snip, err := store.Find(Location{File: "demo.go", Line: 999, Func: "example.com/demo.pages.func2.1"})
	require.NoError(t, err)
	assert.Equal(t, []string{`Label(p, "a")`, "", `Label(p, "b")`}, snip.Lines)

	snip, err = store.Find(Location{File: "demo.go", Line: 999, Func: "example.com/demo.pages.func3"})
	require.NoError(t, err)
	assert.Equal(t, []string{`Label(p, "one")`}, snip.Lines)
}

func TestFindFallsBackToLine(t *testing.T) {
	store := newSampleStore()

	snip, err := store.Find(Location{File: "demo.go", Line: 4, Func: "example.com/demo.missing.func1"})
	require.NoError(t, err)
	assert.Equal(t, []string{`Button(p, "X")`}, snip.Lines)

	_, err = store.Find(Location{File: "demo.go", Line: 5, Func: "example.com/demo.pages.func9"})
	assert.ErrorIs(t, err, &lderrors.LivedocError{Type: lderrors.ErrorTypeSource, Code: lderrors.ErrCodeBlockNotFound})
}

func TestFindAfterLinesShifted(t *testing.T) {
	shifted := strings.Replace(sample, "package demo\n", "package demo\n\n// added\n", 1)
	store := NewStore(fstest.MapFS{"demo.go": {Data: []byte(shifted)}})

	// Line 4 held the first literal before the edit; it now holds none.
	snip, err := store.Find(Location{File: "demo.go", Line: 4, Func: "example.com/demo.pages.func1"})
	require.NoError(t, err)
	assert.Equal(t, 6, snip.Begin)
	assert.Equal(t, []string{`Button(p, "X")`}, snip.Lines)

	_, err = store.Block("demo.go", 4)
	assert.Error(t, err)
}

func TestFindClosureInThisFile(t *testing.T) {
	body := func(p *ui.Builder) {
		ui.Button(p, "found by name")
	}

	loc, err := Locate(body)
	require.NoError(t, err)
	loc.Line = 1

	snip, err := NewStore(os.DirFS(".")).Find(loc)
	require.NoError(t, err)
	assert.Equal(t, []string{`ui.Button(p, "found by name")`}, snip.Lines)
}
