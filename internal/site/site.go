// Package site builds the documentation pages.
package site

import (
	"context"
	"embed"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	lderrors "github.com/conneroisu/livedoc/internal/errors"
	"github.com/conneroisu/livedoc/internal/logging"
	"github.com/conneroisu/livedoc/internal/markup"
	"github.com/conneroisu/livedoc/internal/recorder"
	"github.com/conneroisu/livedoc/internal/registry"
	"github.com/conneroisu/livedoc/internal/source"
	"github.com/conneroisu/livedoc/pkg/ui"
)

// Sources holds the page definitions, read back to show example code, and
// the default README.
//
//go:embed *.go content/*.md
var Sources embed.FS

// DefaultReadme is the path of the embedded README within Sources.
const DefaultReadme = "content/README.md"

// HomeSlug identifies the home page.
const HomeSlug = "home"

var imageLine = regexp.MustCompile(`(?m)^<img.*\n?`)

// Options configures a build.
type Options struct {
	Title string
	// Readme is a markdown file on disk shown on the home page. The
	// embedded README is used when empty.
	Readme string
	// SourceDir, when set, is searched for page sources before the
	// embedded copies, so edited examples show their new code.
	SourceDir  string
	ImportLine string
	CodeStyle  string

	Registry *registry.ExampleRegistry
	Logger   logging.Logger
}

// Site is the result of a build.
type Site struct {
	Title    string
	Pages    []*Page
	Registry *registry.ExampleRegistry
	Built    time.Time
	Duration time.Duration
}

// Page is one built documentation page.
type Page struct {
	Slug     string
	Title    string
	Root     *ui.Element
	Examples int
}

// Path is the URL path of the page.
func (p *Page) Path() string {
	if p.Slug == HomeSlug {
		return "/"
	}
	return "/docs/" + p.Slug + "/"
}

// Home returns the home page.
func (s *Site) Home() *Page {
	return s.Pages[0]
}

// Page looks up a page by slug.
func (s *Site) Page(slug string) (*Page, bool) {
	for _, p := range s.Pages {
		if p.Slug == slug {
			return p, true
		}
	}
	return nil, false
}

// content is what pages need besides the recorder.
type content struct {
	readme string
}

type pageDef struct {
	slug  string
	build func(r *recorder.Recorder, c *content)
}

// PageTitle turns a slug such as "chat-message" into "Chat Message".
func PageTitle(slug string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}

// Slugs lists the documentation pages in navigation order, home first.
func Slugs() []string {
	slugs := make([]string, len(pages))
	for i, def := range pages {
		slugs[i] = def.slug
	}
	return slugs
}

// Build renders every page. Pages are built one after another, each with a
// fresh recorder; the first failing page aborts the build. A panic inside
// a page is reported as that page's build error.
func Build(ctx context.Context, opts Options) (*Site, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.WithComponent("site")
	perf := logging.StartOperation(logger, "build_site")

	reg := opts.Registry
	if reg == nil {
		reg = registry.NewExampleRegistry()
	}
	title := opts.Title
	if title == "" {
		title = "livedoc"
	}

	readme, err := loadReadme(opts.Readme)
	if err != nil {
		perf.EndWithError(ctx, err)
		return nil, err
	}

	store := source.NewStore(Sources)
	if opts.SourceDir != "" {
		store.Prepend(os.DirFS(opts.SourceDir))
	}
	docs, err := source.NewDocIndex(ui.Sources, ui.ImportPath)
	if err != nil {
		err = lderrors.WrapBuild(err, lderrors.ErrCodeBuildFailed, "cannot index widget docs", "")
		perf.EndWithError(ctx, err)
		return nil, err
	}
	var rendererOpts []markup.RendererOption
	if opts.CodeStyle != "" {
		rendererOpts = append(rendererOpts, markup.WithCodeStyle(opts.CodeStyle))
	}

	deps := &buildDeps{
		store:    store,
		docs:     docs,
		markup:   markup.NewRenderer(rendererOpts...),
		registry: reg,
		logger:   logger,
		content:  &content{readme: readme},
		importLn: opts.ImportLine,
	}

	start := time.Now()
	site := &Site{Title: title, Registry: reg}
	for _, def := range pages {
		if err := ctx.Err(); err != nil {
			perf.EndWithError(ctx, err)
			return nil, err
		}
		page, err := deps.buildPage(ctx, def)
		if err != nil {
			perf.EndWithError(ctx, err)
			return nil, err
		}
		if page.Slug == HomeSlug {
			page.Title = title
		}
		site.Pages = append(site.Pages, page)
	}
	site.Built = time.Now()
	site.Duration = site.Built.Sub(start)

	perf.End(ctx, "pages", len(site.Pages), "examples", reg.Count())
	return site, nil
}

type buildDeps struct {
	store    *source.Store
	docs     *source.DocIndex
	markup   *markup.Renderer
	registry *registry.ExampleRegistry
	logger   logging.Logger
	content  *content
	importLn string
}

func (d *buildDeps) buildPage(ctx context.Context, def pageDef) (page *Page, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = lderrors.FromPanic(def.slug, v)
		}
	}()

	d.registry.RemovePage(def.slug)
	rec := recorder.New(recorder.Config{
		Page:       def.slug,
		Store:      d.store,
		Docs:       d.docs,
		Markup:     d.markup,
		Registry:   d.registry,
		Logger:     d.logger,
		Context:    ctx,
		ImportLine: d.importLn,
	})
	def.build(rec, d.content)
	if err := rec.Err(); err != nil {
		return nil, lderrors.WrapBuild(err, lderrors.ErrCodePageFailed, "page build failed", def.slug)
	}

	d.logger.Debug(ctx, "Built page", "page", def.slug, "examples", rec.Count())
	return &Page{
		Slug:     def.slug,
		Title:    PageTitle(def.slug),
		Root:     rec.Builder().Root(),
		Examples: rec.Count(),
	}, nil
}

// loadReadme reads the README and drops lines that start with an <img tag.
func loadReadme(path string) (string, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = fs.ReadFile(Sources, DefaultReadme)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", lderrors.WrapIO(err, lderrors.ErrCodeBuildFailed, "cannot read README").WithLocation(path, 0)
	}
	return StripImages(string(data)), nil
}

// StripImages removes every line starting with "<img", newline included.
func StripImages(markdown string) string {
	return imageLine.ReplaceAllString(markdown, "")
}
