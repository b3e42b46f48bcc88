package config

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the parameter file path did not resolve. Callers
// match it with errors.Is.
var ErrNotFound = errors.New("parameter file not found")

// ParseError indicates the parameter document could not be decoded: the
// YAML is malformed or a scalar has the wrong type. Semantic checks never
// ran.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse parameter file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError indicates a semantic rule violation in an otherwise
// well-formed parameter document. Field holds the dotted path of the
// offending field, e.g. "mortality_params.age_exponent".
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameters: %s: %s", e.Field, e.Reason)
}
