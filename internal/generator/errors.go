package generator

import (
	"errors"
	"fmt"
)

// Sentinel errors for every foreseeable failure in the pipeline. Callers
// match with errors.Is; the wrapped message carries the path, anchor or
// template involved so it can be shown to the user verbatim.
var (
	ErrDuplicateField  = errors.New("duplicate field")
	ErrAnchorNotFound  = errors.New("anchor not found")
	ErrAmbiguousAnchor = errors.New("ambiguous anchor")
	ErrMalformedBlock  = errors.New("malformed block")
	ErrAlreadyExists   = errors.New("file already exists")
	ErrTargetNotFound  = errors.New("target file not found")
	ErrPlanConflict    = errors.New("plan conflict")
	ErrIOFailure       = errors.New("i/o failure")
)

// TemplateError describes a template parse or evaluation failure.
type TemplateError struct {
	Template string // template identifier (e.g. "model/model.go.tmpl")
	Message  string // underlying parser/exec message, includes location
	Err      error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s: %s", e.Template, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}
