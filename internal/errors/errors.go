// Package errors provides the structured error type (ReportError) used for
// category-based classification of authoring failures across the library and CLI.
package errors

import (
	"fmt"
	"strings"
)

// ErrorCategory represents the category of a reportdoc error for classification
type ErrorCategory string

const (
	// Element payload errors: empty image, bad channel count, fps <= 0,
	// no active figure, negative indent.
	CategoryEncoding ErrorCategory = "encoding"

	// Shape mismatch errors: table row width vs header, inconsistent
	// video frame dimensions.
	CategoryStructure ErrorCategory = "structure"

	// Document or sibling-asset write failures.
	CategoryFilesystem ErrorCategory = "filesystem"

	// Profile load and validation errors.
	CategoryConfig ErrorCategory = "config"

	// MultiDocument fan-out failures (see AggregateError).
	CategoryAggregate ErrorCategory = "aggregate"

	CategoryInternal ErrorCategory = "internal"
)

// ReportError is a structured error with category, cause, and context
type ReportError struct {
	Category ErrorCategory `json:"category"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for ReportError
type ContextFields map[string]any

// Error implements the error interface
func (e *ReportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *ReportError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *ReportError) WithContext(key string, value any) *ReportError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new ReportError
func New(category ErrorCategory, message string) *ReportError {
	return &ReportError{
		Category: category,
		Message:  message,
	}
}

// Newf creates a new ReportError with a formatted message
func Newf(category ErrorCategory, format string, args ...any) *ReportError {
	return &ReportError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new ReportError that wraps an existing error
func Wrap(err error, category ErrorCategory, message string) *ReportError {
	return &ReportError{
		Category: category,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if re, ok := err.(*ReportError); ok {
		return re.Category == category
	}
	if _, ok := err.(*AggregateError); ok {
		return category == CategoryAggregate
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal
// if it is not a reportdoc error
func GetCategory(err error) ErrorCategory {
	if re, ok := err.(*ReportError); ok {
		return re.Category
	}
	if _, ok := err.(*AggregateError); ok {
		return CategoryAggregate
	}
	return CategoryInternal
}

// Encoding creates a new encoding error (malformed or unsupported element payload)
func Encoding(format string, args ...any) *ReportError {
	return Newf(CategoryEncoding, format, args...)
}

// Structure creates a new structure error (shape mismatch)
func Structure(format string, args ...any) *ReportError {
	return Newf(CategoryStructure, format, args...)
}

// Filesystem wraps a file or asset write failure
func Filesystem(err error, message string) *ReportError {
	return Wrap(err, CategoryFilesystem, message)
}

// BackendError pairs a failed backend's name with its underlying error.
type BackendError struct {
	Backend string
	Err     error
}

func (e BackendError) Error() string {
	return fmt.Sprintf("%s: %v", e.Backend, e.Err)
}

func (e BackendError) Unwrap() error { return e.Err }

// AggregateError reports MultiDocument fan-out failures. Every backend is
// attempted before this is raised; Errors holds one entry per failed backend
// in backend-declaration order.
type AggregateError struct {
	Op     string
	Errors []BackendError
}

func (e *AggregateError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, be := range e.Errors {
		parts = append(parts, be.Error())
	}
	return fmt.Sprintf("aggregate: %s failed on %d backend(s): %s",
		e.Op, len(e.Errors), strings.Join(parts, "; "))
}

// Unwrap exposes the underlying backend errors to errors.Is/As.
func (e *AggregateError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i := range e.Errors {
		errs[i] = e.Errors[i]
	}
	return errs
}
