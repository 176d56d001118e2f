package unitfile

import (
	"fmt"
)

// TemplateError represents an invalid template unit name, such as a
// template instance portion that is empty.
type TemplateError struct {
	Name   string // The unit base name that failed template resolution
	Reason string // Why the name is invalid
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	return fmt.Sprintf("invalid template unit %q: %s", e.Name, e.Reason)
}

// NewTemplateError creates a new TemplateError.
func NewTemplateError(name, reason string) *TemplateError {
	return &TemplateError{Name: name, Reason: reason}
}

// ParseError represents a unit file that could not be parsed into a
// structured document.
type ParseError struct {
	Name  string // The unit base name
	Cause error  // The underlying error, nil for structural failures
	Msg   string // Human-readable description of the failure
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parsing unit %q: %s: %v", e.Name, e.Msg, e.Cause)
	}
	return fmt.Sprintf("parsing unit %q: %s", e.Name, e.Msg)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new ParseError.
func NewParseError(name, msg string, cause error) *ParseError {
	return &ParseError{Name: name, Msg: msg, Cause: cause}
}

// IsTemplateError checks if an error is a TemplateError.
func IsTemplateError(err error) bool {
	_, ok := err.(*TemplateError)
	return ok
}

// IsParseError checks if an error is a ParseError.
func IsParseError(err error) bool {
	_, ok := err.(*ParseError)
	return ok
}
