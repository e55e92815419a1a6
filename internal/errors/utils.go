package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps an error with additional context, creating a LivedocError if the input is not already one
func Wrap(err error, errType ErrorType, code, message string) *LivedocError {
	if err == nil {
		return nil
	}

	// Preserve location and page of an inner LivedocError
	var le *LivedocError
	if errors.As(err, &le) {
		return &LivedocError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       le,
			Context:     le.Context,
			Page:        le.Page,
			FilePath:    le.FilePath,
			Line:        le.Line,
			Recoverable: le.Recoverable,
		}
	}

	return &LivedocError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeValidation,
	}
}

// WrapBuild wraps an error as a build error for the given page
func WrapBuild(err error, code, message, page string) *LivedocError {
	le := Wrap(err, ErrorTypeBuild, code, message)
	if le != nil {
		le.Page = page
		le.Recoverable = false
	}
	return le
}

// WrapIO wraps an error as an I/O error
func WrapIO(err error, code, message string) *LivedocError {
	le := Wrap(err, ErrorTypeIO, code, message)
	if le != nil {
		le.Recoverable = false
	}
	return le
}

// WrapConfig wraps an error as a configuration error
func WrapConfig(err error, code, message string) *LivedocError {
	le := Wrap(err, ErrorTypeConfig, code, message)
	if le != nil {
		le.Recoverable = false
	}
	return le
}

// FromPanic converts a recovered panic value into an internal error.
func FromPanic(page string, v interface{}) *LivedocError {
	if err, ok := v.(error); ok {
		return WrapBuild(err, ErrCodePageFailed, "page panicked", page)
	}
	return NewBuildError(ErrCodePageFailed, fmt.Sprintf("page panicked: %v", v), nil).WithPage(page)
}
