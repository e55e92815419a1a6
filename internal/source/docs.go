package source

import (
	"fmt"
	"go/ast"
	"go/doc"
	"go/parser"
	"go/token"
	"io/fs"
	"sort"
	"strings"
)

// DocIndex maps the exported names of one package to their doc comments.
// Methods are keyed as "Type.Method".
type DocIndex struct {
	importPath string
	docs       map[string]string
}

// NewDocIndex parses the non-test Go files at the root of fsys.
func NewDocIndex(fsys fs.FS, importPath string) (*DocIndex, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading package sources: %w", err)
	}

	fset := token.NewFileSet()
	var files []*ast.File
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		f, err := parser.ParseFile(fset, name, src, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		if len(files) > 0 && f.Name.Name != files[0].Name.Name {
			continue
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no Go files for %s", importPath)
	}

	pkg, err := doc.NewFromFiles(fset, files, importPath)
	if err != nil {
		return nil, fmt.Errorf("reading docs of %s: %w", importPath, err)
	}

	idx := &DocIndex{importPath: importPath, docs: make(map[string]string)}
	for _, f := range pkg.Funcs {
		idx.docs[f.Name] = f.Doc
	}
	for _, t := range pkg.Types {
		idx.docs[t.Name] = t.Doc
		for _, f := range t.Funcs {
			idx.docs[f.Name] = f.Doc
		}
		for _, m := range t.Methods {
			idx.docs[t.Name+"."+m.Name] = m.Doc
		}
	}
	return idx, nil
}

// ImportPath returns the indexed package's import path.
func (d *DocIndex) ImportPath() string {
	return d.importPath
}

// Doc returns the doc comment of name. The boolean is false when the name
// is unknown; a known name without a comment returns "" and true.
func (d *DocIndex) Doc(name string) (string, bool) {
	text, ok := d.docs[name]
	return text, ok
}

// Names returns the indexed names in sorted order.
func (d *DocIndex) Names() []string {
	names := make([]string, 0, len(d.docs))
	for n := range d.docs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
