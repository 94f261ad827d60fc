package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryHydration Category = "hydration"
	CategoryRuntime   Category = "runtime"
	CategoryTemplate  Category = "template"
	CategoryConfig    Category = "config"
	CategoryCLI       Category = "cli"
)

// Location represents a source location, e.g. a node in a template file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// TetherError is a structured error with a code, category and optional location.
type TetherError struct {
	// Code is a unique error identifier (e.g., "E040").
	Code string

	// Category is the error type (hydration, runtime, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of this occurrence.
	Detail string

	// Location is the source location where the error occurred.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *TetherError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *TetherError) Unwrap() error {
	return e.Wrapped
}

// WithLocation points the error at a source position. When file can be
// read, the lines around line are kept for Format.
func (e *TetherError) WithLocation(file string, line, column int) *TetherError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = sourceLines(file, line-sourceWindow/2, line+sourceWindow/2)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *TetherError) WithSuggestion(s string) *TetherError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *TetherError) WithDetail(d string) *TetherError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detail to the error.
func (e *TetherError) WithDetailf(format string, args ...any) *TetherError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *TetherError) Wrap(err error) *TetherError {
	e.Wrapped = err
	return e
}

// sourceLines returns lines first through last (1-based, inclusive) of
// file, clipped to the file. Unreadable files yield nil.
func sourceLines(file string, first, last int) []string {
	if file == "" {
		return nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for n := 1; n <= last && scanner.Scan(); n++ {
		if n >= first {
			lines = append(lines, scanner.Text())
		}
	}
	return lines
}

// New creates a TetherError from a registered error code.
func New(code string) *TetherError {
	template, ok := registry[code]
	if !ok {
		return &TetherError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &TetherError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
	}
}

// Newf creates a new TetherError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *TetherError {
	return &TetherError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a TetherError.
func FromError(err error, code string) *TetherError {
	if err == nil {
		return nil
	}
	var te *TetherError
	if As(err, &te) {
		return te
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err, or any error it wraps, is a TetherError with code.
func HasCode(err error, code string) bool {
	for err != nil {
		var te *TetherError
		if !As(err, &te) {
			return false
		}
		if te.Code == code {
			return true
		}
		err = te.Wrapped
	}
	return false
}

// CodeOf returns the code of the outermost TetherError in err's chain, or "".
func CodeOf(err error) string {
	var te *TetherError
	if As(err, &te) {
		return te.Code
	}
	return ""
}

// As is errors.As from the standard library, re-exported so callers that
// import this package as errors keep access to it.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Is is errors.Is from the standard library.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
