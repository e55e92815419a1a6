package recorder

import (
	"os"
	"strings"
	"testing"
	"testing/fstest"

	lderrors "github.com/conneroisu/livedoc/internal/errors"
	"github.com/conneroisu/livedoc/internal/registry"
	"github.com/conneroisu/livedoc/internal/source"
	"github.com/conneroisu/livedoc/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(t *testing.T) (*Recorder, *registry.ExampleRegistry) {
	t.Helper()

	docs, err := source.NewDocIndex(ui.Sources, ui.ImportPath)
	require.NoError(t, err)

	reg := registry.NewExampleRegistry()
	return New(Config{
		Page:     "test",
		Store:    source.NewStore(os.DirFS(".")),
		Docs:     docs,
		Registry: reg,
	}), reg
}

func TestExampleTextDescription(t *testing.T) {
	rec, reg := newTestRecorder(t)

	row := rec.Example(Text("Demo"), func(p *ui.Builder) {
		ui.Button(p, "X")
	})
	require.NoError(t, rec.Err())
	require.NotNil(t, row)

	assert.Equal(t, "test-0", row.ID)
	assert.Equal(t, []string{"flex", "w-full"}, row.ClassList())
	require.Len(t, row.Children, 3)

	desc, card, code := row.Children[0], row.Children[1], row.Children[2]
	assert.True(t, desc.HasClass("mr-8"))
	assert.True(t, desc.HasClass("w-4/12"))
	assert.Equal(t, `<p class="mb-2">Demo</p>`, desc.HTML())

	assert.True(t, card.HasClass("livedoc-card"))
	assert.True(t, card.HasClass("mt-12"))
	assert.True(t, card.HasClass("w-2/12"))
	require.Len(t, card.Children, 1)
	assert.Equal(t, "button", card.Children[0].Tag)
	assert.Equal(t, "X", card.Children[0].Text())

	assert.True(t, code.HasClass("w-5/12"))
	assert.True(t, code.HasClass("overflow-auto"))
	assert.Contains(t, code.HTML(), "<pre")

	info, ok := reg.Get("test-0")
	require.True(t, ok)
	assert.Equal(t, "```go\nimport \"github.com/conneroisu/livedoc/pkg/ui\"\nui.Button(p, \"X\")\n```", info.Code)
	assert.Equal(t, "Demo", info.Title)
	assert.Equal(t, "recorder_test.go", info.File)
	assert.Equal(t, []string{"Button"}, info.Widgets)
	assert.Less(t, info.Begin, info.End)
	assert.Equal(t, 1, rec.Count())
	assert.Equal(t, 1, rec.Builder().Depth())
}

func TestExampleNestedBlockKeepsRelativeIndent(t *testing.T) {
	rec, reg := newTestRecorder(t)

	rec.Example(Text("Nested"), func(p *ui.Builder) {
		ui.Row(p, func() {
			ui.Label(p, "a")
		})
	})
	require.NoError(t, rec.Err())

	info, ok := reg.Get("test-0")
	require.True(t, ok)
	assert.Equal(t, strings.Join([]string{
		"```go",
		DefaultImportLine,
		"ui.Row(p, func() {",
		"\tui.Label(p, \"a\")",
		"})",
		"```",
	}, "\n"), info.Code)
	assert.Equal(t, []string{"Label", "Row"}, info.Widgets)
}

func TestExampleSingleLineBody(t *testing.T) {
	rec, reg := newTestRecorder(t)

	rec.Example(Text("One"), func(p *ui.Builder) { ui.Label(p, "one") })
	require.NoError(t, rec.Err())

	info, _ := reg.Get("test-0")
	assert.Equal(t, "```go\n"+DefaultImportLine+"\nui.Label(p, \"one\")\n```", info.Code)
	assert.Equal(t, info.Begin, info.End)
}

func TestExampleEntityWithDoc(t *testing.T) {
	rec, reg := newTestRecorder(t)

	row := rec.Example(Entity(ui.Button), func(p *ui.Builder) {
		ui.Button(p, "Click me!")
	})
	require.NoError(t, rec.Err())
	require.NotNil(t, row)

	desc := row.Children[0]
	assert.Equal(t, "div", desc.Tag)
	assert.True(t, desc.HasClass("w-4/12"))
	assert.Contains(t, desc.HTML(), `<h3 class="text-3xl mb-2 mt-4">Button is a clickable button.`)
	assert.NotContains(t, desc.HTML(), "<h5")

	info, _ := reg.Get("test-0")
	assert.Equal(t, "Button", info.Entity)
	assert.True(t, strings.HasPrefix(info.Title, "Button is a clickable button."))
}

func TestExampleEntityWithoutDoc(t *testing.T) {
	rec, reg := newTestRecorder(t)

	row := rec.Example(Entity(ui.Separator), func(p *ui.Builder) {
		ui.Separator(p)
	})
	require.NoError(t, rec.Err())

	desc := row.Children[0]
	assert.Equal(t, "h5", desc.Tag)
	assert.Equal(t, "Separator", desc.Text())

	row = rec.Example(Entity("Unknown"), func(p *ui.Builder) {
		ui.Label(p, "x")
	})
	require.NoError(t, rec.Err())
	assert.Equal(t, "Unknown", row.Children[0].Text())

	info, _ := reg.Get("test-1")
	assert.Equal(t, "Unknown", info.Title)
}

func TestExampleMethodEntity(t *testing.T) {
	rec, _ := newTestRecorder(t)

	row := rec.Example(Entity((*ui.Element).Classes), func(p *ui.Builder) {
		ui.Label(p, "styled").Classes("text-red-600")
	})
	require.NoError(t, rec.Err())
	assert.Contains(t, row.Children[0].HTML(), "<h3")
}

func TestExampleWithoutDocIndexFallsBackToName(t *testing.T) {
	rec := New(Config{Page: "plain", Store: source.NewStore(os.DirFS("."))})

	row := rec.Example(Entity(ui.Button), func(p *ui.Builder) {
		ui.Button(p, "X")
	})
	require.NoError(t, rec.Err())
	assert.Equal(t, "h5", row.Children[0].Tag)
	assert.Equal(t, "Button", row.Children[0].Text())
}

func TestExampleSourceUnavailableIsSticky(t *testing.T) {
	rec := New(Config{Page: "broken", Store: source.NewStore(fstest.MapFS{})})

	row := rec.Example(Text("Demo"), func(p *ui.Builder) {
		ui.Button(p, "X")
	})
	assert.Nil(t, row)

	err := rec.Err()
	require.Error(t, err)
	assert.True(t, lderrors.IsSourceError(err))
	assert.ErrorIs(t, err, &lderrors.LivedocError{Type: lderrors.ErrorTypeSource, Code: lderrors.ErrCodeSourceUnavailable})

	var le *lderrors.LivedocError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "broken", le.Page)

	ran := false
	assert.Nil(t, rec.Example(Text("Later"), func(p *ui.Builder) {
		ran = true
	}))
	assert.False(t, ran)
	assert.Empty(t, rec.Builder().Root().Children)
	assert.Equal(t, 0, rec.Count())
}

func TestExamplePanicClosesCard(t *testing.T) {
	rec, reg := newTestRecorder(t)

	body := func(p *ui.Builder) {
		ui.Label(p, "before")
		panic("boom")
	}
	assert.Panics(t, func() { rec.Example(Text("Boom"), body) })

	assert.Equal(t, 1, rec.Builder().Depth())
	assert.Equal(t, 0, reg.Count())

	// The builder is usable again after the panic.
	ui.Label(rec.Builder(), "after")
	root := rec.Builder().Root()
	last := root.Children[len(root.Children)-1]
	assert.Equal(t, "after", last.Text())
}

func TestExampleIDsFollowOrder(t *testing.T) {
	rec, reg := newTestRecorder(t)

	for i := 0; i < 3; i++ {
		rec.Example(Text("Repeated"), func(p *ui.Builder) {
			ui.Label(p, "x")
		})
	}
	require.NoError(t, rec.Err())
	assert.Equal(t, 3, rec.Count())

	var ids []string
	for _, e := range reg.ByPage("test") {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"test-0", "test-1", "test-2"}, ids)
}

func TestRenderedRow(t *testing.T) {
	rec, _ := newTestRecorder(t)

	row := rec.Example(Text("Demo"), func(p *ui.Builder) {
		ui.Button(p, "X")
	})
	require.NotNil(t, row)

	html := row.String()
	assert.True(t, strings.HasPrefix(html, `<div id="test-0" class="flex w-full">`))
	assert.Contains(t, html, `<button`)
	assert.Contains(t, rec.Builder().Root().String(), html)
}

func TestDescriptions(t *testing.T) {
	d := Titled("HTML text", `
		Using the text_html option
		you can send HTML.
	`)
	assert.Equal(t, KindText, d.Kind())
	assert.Equal(t, "#### HTML text\n\nUsing the text_html option\nyou can send HTML.", d.Markdown())

	name, err := Entity(ui.Checkbox).Name()
	require.NoError(t, err)
	assert.Equal(t, "Checkbox", name)

	name, err = Entity("Element.Props").Name()
	require.NoError(t, err)
	assert.Equal(t, "Element.Props", name)

	_, err = Entity(nil).Name()
	assert.Error(t, err)
	_, err = Entity("").Name()
	assert.Error(t, err)
	_, err = Entity(3).Name()
	assert.Error(t, err)
}
