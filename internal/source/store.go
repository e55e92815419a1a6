// Package source gives documentation pages access to their own Go source:
// it reads files from embedded or on-disk file systems, locates function
// literals by line, and extracts their bodies as display snippets.
package source

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"sync"

	lderrors "github.com/conneroisu/livedoc/internal/errors"
)

// Store reads source files from an ordered list of file systems. Each file
// is read and parsed at most once until Invalidate or Reset is called.
type Store struct {
	mu    sync.RWMutex
	roots []fs.FS
	fset  *token.FileSet
	files map[string]*sourceFile
}

type sourceFile struct {
	name  string
	src   []byte
	lines []string
	ast   *ast.File
}

// NewStore returns a store reading from roots, searched in order.
func NewStore(roots ...fs.FS) *Store {
	return &Store{
		roots: roots,
		fset:  token.NewFileSet(),
		files: make(map[string]*sourceFile),
	}
}

// Prepend adds a root searched before all existing ones. It is used to let
// an on-disk source directory override embedded sources.
func (s *Store) Prepend(root fs.FS) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roots = append([]fs.FS{root}, s.roots...)
	s.files = make(map[string]*sourceFile)
}

// Text returns the full text of a source file.
func (s *Store) Text(file string) (string, error) {
	f, err := s.load(file)
	if err != nil {
		return "", err
	}
	return string(f.src), nil
}

// Lines returns the lines of a source file without line terminators.
func (s *Store) Lines(file string) ([]string, error) {
	f, err := s.load(file)
	if err != nil {
		return nil, err
	}
	return f.lines, nil
}

// Invalidate drops the cached copy of a file, matched by base name.
func (s *Store) Invalidate(file string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	base := filepath.Base(file)
	for key := range s.files {
		if filepath.Base(key) == base {
			delete(s.files, key)
		}
	}
}

// Reset drops every cached file.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = make(map[string]*sourceFile)
}

func (s *Store) load(file string) (*sourceFile, error) {
	s.mu.RLock()
	f, ok := s.files[file]
	s.mu.RUnlock()
	if ok {
		return f, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.files[file]; ok {
		return f, nil
	}

	src, name, err := s.read(file)
	if err != nil {
		return nil, lderrors.ErrSourceUnavailable(file, err)
	}

	f = &sourceFile{name: name, src: src, lines: splitLines(string(src))}
	s.files[file] = f
	return f, nil
}

// read tries the path as given, then its base name, in every root.
func (s *Store) read(file string) ([]byte, string, error) {
	candidates := lookupNames(file)
	if len(s.roots) == 0 {
		return nil, "", fs.ErrNotExist
	}
	var firstErr error
	for _, root := range s.roots {
		for _, name := range candidates {
			data, err := fs.ReadFile(root, name)
			if err == nil {
				return data, name, nil
			}
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return nil, "", firstErr
}

func lookupNames(file string) []string {
	slashed := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(file)), "/")
	var names []string
	if fs.ValidPath(slashed) {
		names = append(names, slashed)
	}
	if base := path.Base(slashed); base != slashed && fs.ValidPath(base) {
		names = append(names, base)
	}
	return names
}

// parsed returns the AST of a file, parsing it on first use.
func (s *Store) parsed(file string) (*sourceFile, error) {
	f, err := s.load(file)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ast != nil {
		return f, nil
	}
	tree, err := parser.ParseFile(s.fset, f.name, f.src, parser.ParseComments)
	if err != nil {
		return nil, lderrors.NewSourceError(lderrors.ErrCodeParseFailed, "cannot parse source", err).WithLocation(file, 0)
	}
	f.ast = tree
	return f, nil
}

func splitLines(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.TrimSuffix(src, "\n")
	if src == "" {
		return nil
	}
	return strings.Split(src, "\n")
}
