package errors

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"
)

// BuildError is one failure recorded while building the site.
type BuildError struct {
	Page      string
	File      string
	Line      int
	Message   string
	Timestamp time.Time
}

// Error implements the error interface
func (be *BuildError) Error() string {
	if be.File == "" {
		return fmt.Sprintf("%s: %s", be.Page, be.Message)
	}
	return fmt.Sprintf("%s:%d: %s: %s", be.File, be.Line, be.Page, be.Message)
}

// ErrorCollector collects the failures of the last site build. The dev
// server reads it concurrently with rebuilds.
type ErrorCollector struct {
	buildErrors []BuildError
	mutex       sync.RWMutex
}

// NewErrorCollector creates a new error collector
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		buildErrors: make([]BuildError, 0),
	}
}

// Add adds a build error to the collector
func (ec *ErrorCollector) Add(err BuildError) {
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	ec.buildErrors = append(ec.buildErrors, err)
}

// AddError records err, pulling page and location out of a LivedocError.
func (ec *ErrorCollector) AddError(err error) {
	if err == nil {
		return
	}
	be := BuildError{Message: err.Error()}
	var le *LivedocError
	if errors.As(err, &le) {
		be.Page = le.Page
		be.File = le.FilePath
		be.Line = le.Line
	}
	ec.Add(be)
}

// GetErrors returns a copy of the collected build errors
func (ec *ErrorCollector) GetErrors() []BuildError {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	result := make([]BuildError, len(ec.buildErrors))
	copy(result, ec.buildErrors)
	return result
}

// HasErrors returns true if there are any errors
func (ec *ErrorCollector) HasErrors() bool {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	return len(ec.buildErrors) > 0
}

// Clear clears all errors
func (ec *ErrorCollector) Clear() {
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	ec.buildErrors = ec.buildErrors[:0]
}

// ErrorOverlay generates HTML for the dev server error overlay. It returns
// the empty string when the last build succeeded.
func (ec *ErrorCollector) ErrorOverlay() string {
	errs := ec.GetErrors()
	if len(errs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<div id="livedoc-error-overlay" class="fixed inset-0 z-50 overflow-auto bg-black/80 p-6 font-mono text-sm text-white">`)
	b.WriteString(`<div class="mx-auto max-w-4xl">`)
	b.WriteString(`<h2 class="mb-4 text-2xl text-red-400">Build Errors</h2>`)
	for _, err := range errs {
		b.WriteString(`<div class="mb-3 rounded border-l-4 border-red-400 bg-slate-700 p-4">`)
		fmt.Fprintf(&b, `<div class="mb-1 flex justify-between"><strong>%s</strong><span class="text-xs text-slate-300">%s</span></div>`,
			html.EscapeString(err.Message), err.Timestamp.Format("15:04:05"))
		if err.File != "" {
			fmt.Fprintf(&b, `<div class="text-xs text-slate-300">%s:%d</div>`, html.EscapeString(err.File), err.Line)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div></div>`)

	return b.String()
}
