package ui

import "embed"

// Sources holds this package's Go files so documentation tools can read
// widget doc comments from a compiled binary.
//
//go:embed *.go
var Sources embed.FS

// ImportPath is the import path of this package.
const ImportPath = "github.com/conneroisu/livedoc/pkg/ui"
