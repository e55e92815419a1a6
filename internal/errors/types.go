// Package errors provides the structured error type shared by the page
// builder, the source store and the documentation server.
//
// Errors carry a category, a stable code, an optional source location and
// a recoverable flag. Recoverable errors are reported and the build goes
// on; everything else aborts the current site build.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeSource     ErrorType = "source"
	ErrorTypeBuild      ErrorType = "build"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeInvalidPath       = "ERR_INVALID_PATH"
	ErrCodePathTraversal     = "ERR_PATH_TRAVERSAL"
	ErrCodeSourceUnavailable = "ERR_SOURCE_UNAVAILABLE"
	ErrCodeBlockNotFound     = "ERR_BLOCK_NOT_FOUND"
	ErrCodeParseFailed       = "ERR_PARSE_FAILED"
	ErrCodePageNotFound      = "ERR_PAGE_NOT_FOUND"
	ErrCodePageFailed        = "ERR_PAGE_FAILED"
	ErrCodeBuildFailed       = "ERR_BUILD_FAILED"
	ErrCodeConfigInvalid     = "ERR_CONFIG_INVALID"
	ErrCodeInternalError     = "ERR_INTERNAL"
)

// LivedocError is a structured error type with context.
type LivedocError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	Page        string
	FilePath    string
	Line        int
	Recoverable bool
}

// Error implements the error interface.
func (e *LivedocError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Page != "" {
		parts = append(parts, "page:"+e.Page)
	}

	if e.FilePath != "" {
		location := e.FilePath
		if e.Line > 0 {
			location += fmt.Sprintf(":%d", e.Line)
		}
		parts = append(parts, location)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *LivedocError) Unwrap() error {
	return e.Cause
}

// Is matches on type and code so sentinel values can be used with errors.Is.
func (e *LivedocError) Is(target error) bool {
	var t *LivedocError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *LivedocError) WithContext(key string, value interface{}) *LivedocError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithLocation adds file location information.
func (e *LivedocError) WithLocation(filePath string, line int) *LivedocError {
	e.FilePath = filePath
	e.Line = line

	return e
}

// WithPage records the documentation page being built.
func (e *LivedocError) WithPage(page string) *LivedocError {
	e.Page = page

	return e
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *LivedocError {
	return &LivedocError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewSourceError creates an error about example source text. Source errors
// are fatal: a snippet without its source has nothing to show.
func NewSourceError(code, message string, cause error) *LivedocError {
	return &LivedocError{
		Type:        ErrorTypeSource,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewBuildError creates a page build error.
func NewBuildError(code, message string, cause error) *LivedocError {
	return &LivedocError{
		Type:        ErrorTypeBuild,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *LivedocError {
	return &LivedocError{
		Type:        ErrorTypeIO,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *LivedocError {
	return &LivedocError{
		Type:        ErrorTypeConfig,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *LivedocError {
	return &LivedocError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var le *LivedocError
	if errors.As(err, &le) {
		return le.Recoverable
	}

	return false
}

// IsSourceError checks if an error is about unavailable or unparsable
// example source.
func IsSourceError(err error) bool {
	var le *LivedocError
	if errors.As(err, &le) {
		return le.Type == ErrorTypeSource
	}

	return false
}

// ErrSourceUnavailable creates the fatal error raised when the text of a
// source file cannot be read.
func ErrSourceUnavailable(file string, cause error) *LivedocError {
	return NewSourceError(
		ErrCodeSourceUnavailable,
		"source text unavailable",
		cause,
	).WithLocation(file, 0)
}

// ErrBlockNotFound creates the error raised when no function literal starts
// on the line an example body was compiled from.
func ErrBlockNotFound(file string, line int) *LivedocError {
	return NewSourceError(
		ErrCodeBlockNotFound,
		"no function literal at location",
		nil,
	).WithLocation(file, line)
}

// ErrPageNotFound creates a page lookup error.
func ErrPageNotFound(slug string) *LivedocError {
	return NewValidationError(ErrCodePageNotFound, "page not found: "+slug)
}

// ErrInvalidPath creates a path validation error.
func ErrInvalidPath(path string) *LivedocError {
	return NewValidationError(ErrCodeInvalidPath, "invalid path: "+path)
}

// ErrPathTraversal creates a path traversal error.
func ErrPathTraversal(path string) *LivedocError {
	return &LivedocError{
		Type:    ErrorTypeValidation,
		Code:    ErrCodePathTraversal,
		Message: "path traversal attempt: " + path,
	}
}
