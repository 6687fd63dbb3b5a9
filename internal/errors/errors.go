// Package errors provides a lightweight structured error type (SiteError)
// for category-based classification across the build pipeline and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a site-build error for classification.
type ErrorCategory string

const (
	// User-facing configuration and input errors.
	CategoryConfig ErrorCategory = "config"
	CategoryPath   ErrorCategory = "path"

	// Content processing errors.
	CategoryRender    ErrorCategory = "render"
	CategorySelection ErrorCategory = "selection"
	CategoryManifest  ErrorCategory = "manifest"

	// Everything else.
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops the build.
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal.
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded output.
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact.
)

// SiteError is a structured error with category, severity, and the input path
// it relates to (when one exists).
type SiteError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Path     string        `json:"path,omitempty"`
	Cause    error         `json:"cause,omitempty"`
}

// Error implements the error interface.
func (e *SiteError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, msg, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, msg)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling.
func (e *SiteError) Unwrap() error {
	return e.Cause
}

// WithPath attaches the offending input path to the error.
func (e *SiteError) WithPath(path string) *SiteError {
	e.Path = path
	return e
}

// New creates a new SiteError.
func New(category ErrorCategory, severity ErrorSeverity, message string) *SiteError {
	return &SiteError{Category: category, Severity: severity, Message: message}
}

// Wrap creates a new SiteError that wraps an existing error.
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *SiteError {
	return &SiteError{Category: category, Severity: severity, Message: message, Cause: err}
}

// ConfigError creates a fatal configuration error (missing/malformed descriptor or config).
func ConfigError(message string) *SiteError {
	return New(CategoryConfig, SeverityFatal, message)
}

// WrapConfig wraps err as a fatal configuration error.
func WrapConfig(err error, message string) *SiteError {
	return Wrap(err, CategoryConfig, SeverityFatal, message)
}

// PathError creates an error for a missing required input directory. Fatal for
// the stage that needs the path; callers decide whether the build continues.
func PathError(message, path string) *SiteError {
	return New(CategoryPath, SeverityError, message).WithPath(path)
}

// RenderError creates a fatal conversion error carrying the failing input path.
func RenderError(err error, path string) *SiteError {
	return Wrap(err, CategoryRender, SeverityFatal, "markup conversion failed").WithPath(path)
}

// SelectionWarning creates a non-fatal content selection warning.
func SelectionWarning(message string) *SiteError {
	return New(CategorySelection, SeverityWarning, message)
}

// ManifestWarning creates a non-fatal manifest warning (e.g. no prior manifest).
func ManifestWarning(message string) *SiteError {
	return New(CategoryManifest, SeverityWarning, message)
}

// IsCategory checks if an error belongs to a specific category.
func IsCategory(err error, category ErrorCategory) bool {
	if se, ok := err.(*SiteError); ok {
		return se.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal
// if not a SiteError.
func GetCategory(err error) ErrorCategory {
	if se, ok := err.(*SiteError); ok {
		return se.Category
	}
	return CategoryInternal
}

// IsFatal reports whether an error must abort the build.
func IsFatal(err error) bool {
	if se, ok := err.(*SiteError); ok {
		return se.Severity == SeverityFatal
	}
	return true
}
