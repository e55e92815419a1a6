// Package build writes a built site to disk as static files.
package build

import (
	"bytes"
	"context"
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	lderrors "github.com/conneroisu/livedoc/internal/errors"
	"github.com/conneroisu/livedoc/internal/logging"
	"github.com/conneroisu/livedoc/internal/site"
	"github.com/conneroisu/livedoc/internal/version"
)

// ManifestFile is written next to the pages and lists every example.
const ManifestFile = "manifest.yaml"

// StaticExporter writes pages and the example manifest into a directory.
type StaticExporter struct {
	outputDir string
	logger    logging.Logger
}

// ExportOptions configures an export.
type ExportOptions struct {
	// BaseURL enables sitemap.xml when set.
	BaseURL string
	// Clean removes the output directory before writing.
	Clean bool
}

// Manifest describes an exported site.
type Manifest struct {
	Title     string              `yaml:"title"`
	Version   string              `yaml:"version"`
	Generated time.Time           `yaml:"generated"`
	Pages     []ManifestPage      `yaml:"pages"`
	Widgets   map[string][]string `yaml:"widgets,omitempty"`
}

// ManifestPage is one page of the manifest.
type ManifestPage struct {
	Slug     string            `yaml:"slug"`
	Title    string            `yaml:"title"`
	Path     string            `yaml:"path"`
	Examples []ManifestExample `yaml:"examples,omitempty"`
}

// ManifestExample locates one example in its source file.
type ManifestExample struct {
	ID      string `yaml:"id"`
	Summary string `yaml:"summary"`
	Entity  string `yaml:"entity,omitempty"`
	File    string `yaml:"file"`
	Begin   int    `yaml:"begin"`
	End     int    `yaml:"end"`
}

// NewStaticExporter creates an exporter writing below outputDir.
func NewStaticExporter(outputDir string, logger logging.Logger) *StaticExporter {
	if logger == nil {
		logger = logging.Discard()
	}
	return &StaticExporter{outputDir: outputDir, logger: logger.WithComponent("export")}
}

// Export writes index.html, docs/<slug>/index.html for every other page and
// the manifest. It returns the written files, sorted.
func (e *StaticExporter) Export(ctx context.Context, s *site.Site, opts ExportOptions) ([]string, error) {
	if err := validateOutputDir(e.outputDir); err != nil {
		return nil, err
	}
	perf := logging.StartOperation(e.logger, "export_site")

	if opts.Clean {
		if err := os.RemoveAll(e.outputDir); err != nil {
			return nil, lderrors.WrapIO(err, lderrors.ErrCodeBuildFailed, "failed to clean output directory")
		}
	}
	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return nil, lderrors.WrapIO(err, lderrors.ErrCodeBuildFailed, "failed to create output directory")
	}

	var written []string
	for _, page := range s.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path, err := e.writePage(ctx, s, page)
		if err != nil {
			perf.EndWithError(ctx, err)
			return nil, err
		}
		written = append(written, path)
	}

	manifestPath, err := e.writeManifest(s)
	if err != nil {
		perf.EndWithError(ctx, err)
		return nil, err
	}
	written = append(written, manifestPath)

	if opts.BaseURL != "" {
		sitemapPath, err := e.writeSitemap(s, opts.BaseURL)
		if err != nil {
			perf.EndWithError(ctx, err)
			return nil, err
		}
		written = append(written, sitemapPath)
	}

	sort.Strings(written)
	perf.End(ctx, "files", len(written), "output", e.outputDir)
	return written, nil
}

// PageFile returns the file a page is written to, relative to the output
// directory.
func PageFile(page *site.Page) string {
	if page.Slug == site.HomeSlug {
		return "index.html"
	}
	return filepath.Join("docs", page.Slug, "index.html")
}

func (e *StaticExporter) writePage(ctx context.Context, s *site.Site, page *site.Page) (string, error) {
	path := filepath.Join(e.outputDir, PageFile(page))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", lderrors.WrapIO(err, lderrors.ErrCodeBuildFailed, "failed to create page directory").WithPage(page.Slug)
	}

	var buf bytes.Buffer
	if err := site.Layout(s, page, site.LayoutOptions{}).Render(ctx, &buf); err != nil {
		return "", lderrors.WrapBuild(err, lderrors.ErrCodeBuildFailed, "failed to render page", page.Slug)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", lderrors.WrapIO(err, lderrors.ErrCodeBuildFailed, "failed to write page").WithPage(page.Slug)
	}
	e.logger.Debug(ctx, "Wrote page", "page", page.Slug, "path", path, "bytes", buf.Len())
	return path, nil
}

// BuildManifest collects the manifest of a built site.
func BuildManifest(s *site.Site) *Manifest {
	m := &Manifest{
		Title:     s.Title,
		Version:   version.GetVersion(),
		Generated: s.Built.UTC(),
		Widgets:   s.Registry.WidgetIndex(),
	}
	for _, page := range s.Pages {
		mp := ManifestPage{Slug: page.Slug, Title: page.Title, Path: page.Path()}
		for _, ex := range s.Registry.ByPage(page.Slug) {
			mp.Examples = append(mp.Examples, ManifestExample{
				ID:      ex.ID,
				Summary: ex.Title,
				Entity:  ex.Entity,
				File:    ex.File,
				Begin:   ex.Begin,
				End:     ex.End,
			})
		}
		m.Pages = append(m.Pages, mp)
	}
	return m
}

func (e *StaticExporter) writeManifest(s *site.Site) (string, error) {
	data, err := yaml.Marshal(BuildManifest(s))
	if err != nil {
		return "", lderrors.NewInternalError(lderrors.ErrCodeInternalError, "failed to encode manifest", err)
	}
	path := filepath.Join(e.outputDir, ManifestFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", lderrors.WrapIO(err, lderrors.ErrCodeBuildFailed, "failed to write manifest")
	}
	return path, nil
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// BuildSitemap lists every page below baseURL.
func BuildSitemap(s *site.Site, baseURL string) ([]byte, error) {
	set := sitemapURLSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	lastmod := s.Built.Format("2006-01-02")
	for _, page := range s.Pages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     strings.TrimSuffix(baseURL, "/") + page.Path(),
			LastMod: lastmod,
		})
	}
	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(data, '\n')...), nil
}

func (e *StaticExporter) writeSitemap(s *site.Site, baseURL string) (string, error) {
	data, err := BuildSitemap(s, baseURL)
	if err != nil {
		return "", lderrors.WrapBuild(err, lderrors.ErrCodeBuildFailed, "failed to encode sitemap", "")
	}

	path := filepath.Join(e.outputDir, "sitemap.xml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", lderrors.WrapIO(err, lderrors.ErrCodeBuildFailed, "failed to write sitemap")
	}
	return path, nil
}

// validateOutputDir rejects empty paths and paths that climb out of the
// working directory.
func validateOutputDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return lderrors.ErrInvalidPath(dir)
	}
	if filepath.IsAbs(dir) {
		return nil
	}
	clean := filepath.Clean(dir)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return lderrors.ErrPathTraversal(dir)
	}
	if clean == "." {
		return lderrors.ErrInvalidPath(dir)
	}
	return nil
}
