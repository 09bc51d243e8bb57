package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorType categorizes the failure.
type ErrorType string

const (
	ErrorTypeMalformed   ErrorType = "malformed_document"   // Tokenizer-level syntax error
	ErrorTypeStructural  ErrorType = "structural_violation" // Unregistered path or wrong parent kind
	ErrorTypeValidation  ErrorType = "validation"           // Post-merge invariant violated
	ErrorTypeUnsupported ErrorType = "unsupported_content"  // Content the active rule cannot interpret
	ErrorTypeIO          ErrorType = "io"                   // Document could not be read
)

// Location identifies a position within an input document.
type Location struct {
	Document string // Document name, usually a file path
	Line     int    // Line number (1-based)
	Column   int    // Column number (1-based)
}

// String returns "document:line:column", or just the document name when no
// position is known.
func (l Location) String() string {
	if l.Document == "" {
		return "<unknown>"
	}
	if l.Line <= 0 {
		return l.Document
	}
	return fmt.Sprintf("%s:%d:%d", l.Document, l.Line, l.Column)
}

// IsValid returns true if the location names a document and a line.
func (l Location) IsValid() bool {
	return l.Document != "" && l.Line > 0
}

// Error is a parse, merge or validation failure.
type Error struct {
	Type       ErrorType
	Message    string
	Location   Location
	Path       string // Element path, e.g. "faces-config/component/property"
	Kind       string // Entity kind, when one is involved
	Key        string // Identity key of that entity
	Context    string // Surrounding source lines
	Suggestion string
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))
	if e.Kind != "" {
		sb.WriteString(fmt.Sprintf(" (%s %q)", e.Kind, e.Key))
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}

	if e.Location.Document != "" {
		sb.WriteString(fmt.Sprintf("\n  --> %s", e.Location.String()))
	}
	if e.Path != "" {
		sb.WriteString(fmt.Sprintf("\n  at %s", e.Path))
	}
	if e.Context != "" {
		sb.WriteString("\n  |\n")
		sb.WriteString(strings.TrimRight(e.Context, "\n"))
		sb.WriteString("\n  |")
	}
	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an error of the given type.
func New(errType ErrorType, format string, args ...any) *Error {
	return &Error{Type: errType, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given type around cause.
func Wrap(errType ErrorType, cause error, message string) *Error {
	return &Error{Type: errType, Message: message, Cause: cause}
}

// Validation creates a validation error for an entity.
func Validation(kind, key, format string, args ...any) *Error {
	return &Error{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf(format, args...),
		Kind:    kind,
		Key:     key,
	}
}

// IsType reports whether err, or any error it wraps, is an *Error of type t.
func IsType(err error, t ErrorType) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// InDocument stamps the document name onto err when it is an *Error without
// one. Other errors are returned unchanged.
func InDocument(err error, document string) error {
	var e *Error
	if stderrors.As(err, &e) && e.Location.Document == "" {
		e.Location.Document = document
	}
	return err
}

// ErrorList collects errors for reporting tools that keep going after a
// failure.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError appends err, converting it to an *Error of type io when it is
// not one already.
func (el *ErrorList) AddError(err error, document string) {
	var e *Error
	if !stderrors.As(err, &e) {
		e = Wrap(ErrorTypeIO, err, "document failed")
	}
	if e.Location.Document == "" {
		e.Location.Document = document
	}
	el.Add(e)
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Error %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// ToError returns nil if the list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns all errors of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}
