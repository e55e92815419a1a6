// Package internal contains the implementation packages of livedoc.
//
// # Package Organization
//
//   - source: locating example closures and cutting their source blocks
//   - markup: markdown, syntax highlighting and HTML sanitizing
//   - recorder: the three-zone example rows written into a page
//   - registry: the examples recorded by the last build
//   - site: the page definitions, the site build and the HTML layout
//   - build: static export with manifest and sitemap
//   - server: dev server, live reload websocket and JSON API
//   - watcher: file system monitoring with debouncing
//   - config, logging, errors, validation, version: shared plumbing
//   - testutils: fixtures for tests
//
// # Data Flow
//
// A build runs every page definition against a fresh recorder. Each
// example's body draws widgets from pkg/ui into the page tree while the
// recorder cuts the body's source from the embedded page sources and
// registers it. The server swaps in a new site after each successful
// rebuild and tells connected browsers to reload.
package internal
