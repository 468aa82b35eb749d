// Package usecase implements the business logic for the proposal feature.
package usecase

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyDocument is returned when a renderer produces an empty buffer.
var ErrEmptyDocument = errors.New("rendered document is empty")

// ValidationError reports the required request fields that were absent.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// PlaceholderDiagnostic describes a single template placeholder problem.
type PlaceholderDiagnostic struct {
	Placeholder string `json:"placeholder"`
	Message     string `json:"message"`
}

// RenderError reports a template that could not be rendered. Diagnostics
// carries per-placeholder problems and must be surfaced to the caller,
// not swallowed. It is empty when the document archive itself is malformed.
type RenderError struct {
	Diagnostics []PlaceholderDiagnostic
	Err         error
}

func (e *RenderError) Error() string {
	if len(e.Diagnostics) > 0 {
		return fmt.Sprintf("template render failed: %d unresolved placeholder(s)", len(e.Diagnostics))
	}
	if e.Err != nil {
		return "template render failed: " + e.Err.Error()
	}
	return "template render failed"
}

func (e *RenderError) Unwrap() error { return e.Err }
