// Package recorder lays out documentation examples. Each example is a row
// with a description, the live widgets built by a block of Go code and the
// source of that block.
package recorder

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	lderrors "github.com/conneroisu/livedoc/internal/errors"
	"github.com/conneroisu/livedoc/internal/logging"
	"github.com/conneroisu/livedoc/internal/markup"
	"github.com/conneroisu/livedoc/internal/registry"
	"github.com/conneroisu/livedoc/internal/source"
	"github.com/conneroisu/livedoc/pkg/ui"
)

// Column classes of an example row.
const (
	RowClasses         = "flex w-full"
	DescriptionClasses = "mr-8 w-4/12"
	DemoClasses        = "mt-12 w-2/12"
	CodeClasses        = "mt-12 w-5/12 overflow-auto"
)

// DefaultImportLine is shown above every snippet.
const DefaultImportLine = `import "` + ui.ImportPath + `"`

// Config holds the collaborators of a Recorder.
type Config struct {
	// Page is the slug of the page being recorded.
	Page string
	// Store reads the files holding example bodies.
	Store *source.Store
	// Docs resolves entity descriptions. Without it every entity falls
	// back to its name.
	Docs     *source.DocIndex
	Markup   *markup.Renderer
	Registry *registry.ExampleRegistry
	Logger   logging.Logger
	Context  context.Context

	// Language tags the code fence. Defaults to "go".
	Language string
	// ImportLine is the first line of every snippet.
	ImportLine string
	// Qualifier is the package name used by snippets to call widgets.
	Qualifier string
}

// Recorder appends examples to a page. It is not safe for concurrent use.
//
// The first error, such as an example whose source cannot be read, is kept:
// later calls to Example do nothing and Err reports it.
type Recorder struct {
	cfg     Config
	builder *ui.Builder
	count   int
	err     error
}

// New returns a recorder writing to a fresh page builder.
func New(cfg Config) *Recorder {
	if cfg.Store == nil {
		cfg.Store = source.NewStore()
	}
	if cfg.Markup == nil {
		cfg.Markup = markup.NewRenderer()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Language == "" {
		cfg.Language = "go"
	}
	if cfg.ImportLine == "" {
		cfg.ImportLine = DefaultImportLine
	}
	if cfg.Qualifier == "" {
		cfg.Qualifier = "ui"
	}
	cfg.Logger = cfg.Logger.WithComponent("recorder").With("page", cfg.Page)

	return &Recorder{
		cfg: cfg,
		builder: ui.NewBuilder(
			ui.WithMarkdown(cfg.Markup.Markdown),
			ui.WithSanitizer(markup.Sanitize),
		),
	}
}

// Builder returns the page builder, for content outside of examples.
func (r *Recorder) Builder() *ui.Builder {
	return r.builder
}

// Err returns the error that stopped the recorder, if any.
func (r *Recorder) Err() error {
	return r.err
}

// Count returns the number of examples recorded so far.
func (r *Recorder) Count() int {
	return r.count
}

// Example records one example. body builds the live widgets; its source,
// without the enclosing braces, is shown in the third column. Example
// returns the row, or nil once the recorder has failed.
//
// If body panics the demo card is closed before the panic propagates.
func (r *Recorder) Example(desc Description, body func(*ui.Builder)) *ui.Element {
	if r.err != nil {
		return nil
	}

	loc, err := source.Locate(body)
	if err != nil {
		return r.fail(lderrors.NewSourceError(lderrors.ErrCodeSourceUnavailable, "cannot locate example body", err))
	}
	snip, err := r.cfg.Store.Find(loc)
	if err != nil {
		return r.fail(lderrors.Wrap(err, lderrors.ErrorTypeSource, lderrors.ErrCodeSourceUnavailable, "example source unavailable"))
	}
	code := snip.Fence(r.cfg.Language, r.cfg.ImportLine)

	id := fmt.Sprintf("%s-%d", r.cfg.Page, r.count)
	row := ui.NewElement("div").Classes(RowClasses)
	row.ID = id

	p := r.builder
	var title, entity string
	p.With(row, func() {
		title, entity = r.describe(desc)
		ui.Card(p, func() {
			body(p)
		}).Classes(DemoClasses)
		ui.Markdown(p, code).Classes(CodeClasses)
	})

	if r.cfg.Registry != nil {
		r.cfg.Registry.Register(&registry.ExampleInfo{
			ID:       id,
			Page:     r.cfg.Page,
			Index:    r.count,
			Title:    title,
			Entity:   entity,
			File:     filepath.Base(loc.File),
			Line:     loc.Line,
			Begin:    snip.Begin,
			End:      snip.End,
			Code:     code,
			Widgets:  registry.WidgetsUsed(snip.Body(), r.cfg.Qualifier),
			Recorded: time.Now(),
		})
	}
	r.count++
	r.cfg.Logger.Debug(r.cfg.Context, "Recorded example", "id", id, "file", filepath.Base(loc.File), "begin", snip.Begin, "end", snip.End)
	return row
}

// describe adds the first column and returns the example's title and, for
// entity descriptions, the entity name.
func (r *Recorder) describe(desc Description) (string, string) {
	p := r.builder
	if desc.Kind() == KindText {
		el := ui.Markdown(p, desc.Markdown()).Classes(DescriptionClasses)
		return markup.Summary(el.HTML(), 80), ""
	}

	name, err := desc.Name()
	if err != nil {
		r.cfg.Logger.Warn(r.cfg.Context, err, "Unresolvable entity description")
		name = fmt.Sprintf("%v", desc.ref)
	}
	if doc := r.lookupDoc(name); doc != "" {
		el := ui.HTML(p, markup.DocSummary(doc)).Classes(DescriptionClasses)
		return markup.Summary(el.HTML(), 80), name
	}
	ui.Heading(p, 5, name)
	return name, name
}

func (r *Recorder) lookupDoc(name string) string {
	if r.cfg.Docs == nil {
		return ""
	}
	doc, ok := r.cfg.Docs.Doc(name)
	if !ok {
		r.cfg.Logger.Debug(r.cfg.Context, "Entity not in doc index", "entity", name, "package", r.cfg.Docs.ImportPath())
	}
	return doc
}

func (r *Recorder) fail(err *lderrors.LivedocError) *ui.Element {
	r.err = err.WithPage(r.cfg.Page)
	r.cfg.Logger.Error(r.cfg.Context, r.err, "Example recording failed")
	return nil
}
