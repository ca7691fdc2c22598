// Package errors defines the typed row-level errors produced by the cleaning
// pipeline and the collector that aggregates them for the end-of-run report.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a row-level pipeline error.
type Kind string

const (
	// KindParse marks a file that is not well-formed delimited text.
	KindParse Kind = "parse"
	// KindSchema marks a file missing a required column.
	KindSchema Kind = "schema"
	// KindFormat marks a date value no configured layout could parse.
	KindFormat Kind = "format"
	// KindUnknownState marks a state name absent from the alias table.
	KindUnknownState Kind = "unknown_state"
	// KindValidation marks a record violating a field constraint.
	KindValidation Kind = "validation"
)

// Kinds lists all error kinds in reporting order.
var Kinds = []Kind{KindParse, KindSchema, KindFormat, KindUnknownState, KindValidation}

// RowError is a positioned error for a single input row (or whole file, when
// Line is zero). Rows carrying one are skipped; the pipeline continues.
type RowError struct {
	Kind    Kind   `json:"kind"`
	File    string `json:"file"`
	Line    int    `json:"line,omitempty"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *RowError) Error() string {
	pos := e.File
	if e.Line > 0 {
		pos = fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s: %s (%s=%q)", e.Kind, pos, e.Message, e.Field, e.Value)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, pos, e.Message)
}

// Unwrap returns the underlying error
func (e *RowError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a parse error for a malformed file.
func NewParseError(file string, line int, cause error) *RowError {
	return &RowError{
		Kind:    KindParse,
		File:    file,
		Line:    line,
		Message: "malformed delimited text",
		Cause:   cause,
	}
}

// NewFileError creates a parse-kind error for a whole fragment rejected
// before parsing, e.g. by a failed pre-flight check.
func NewFileError(file string, cause error) *RowError {
	return &RowError{
		Kind:    KindParse,
		File:    file,
		Message: "fragment rejected before parsing",
		Cause:   cause,
	}
}

// NewSchemaError creates a schema error for a missing required column.
func NewSchemaError(file, column string) *RowError {
	return &RowError{
		Kind:    KindSchema,
		File:    file,
		Field:   column,
		Message: fmt.Sprintf("required column %q not found", column),
	}
}

// NewFormatError creates a format error for an unparseable date.
func NewFormatError(file string, line int, value string) *RowError {
	return &RowError{
		Kind:    KindFormat,
		File:    file,
		Line:    line,
		Field:   "date",
		Value:   value,
		Message: "no configured date format matches",
	}
}

// NewUnknownStateError creates an error for an unmapped state name.
func NewUnknownStateError(file string, line int, value string) *RowError {
	return &RowError{
		Kind:    KindUnknownState,
		File:    file,
		Line:    line,
		Field:   "state",
		Value:   value,
		Message: "state name not in alias table",
	}
}

// NewValidationError creates a validation error for a constraint violation.
func NewValidationError(file string, line int, field, value, message string) *RowError {
	return &RowError{
		Kind:    KindValidation,
		File:    file,
		Line:    line,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// GetKind returns the kind of a row error, or empty for other errors.
func GetKind(err error) Kind {
	var rowErr *RowError
	if errors.As(err, &rowErr) {
		return rowErr.Kind
	}
	return ""
}

// ErrNoInput is the only fatal input condition: a dataset with no files at all.
var ErrNoInput = errors.New("no input files found")
