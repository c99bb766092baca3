// Package errors provides the error types used across the corpora
// tool. They separate the three failure classes the merge pipeline
// cares about: fatal master-table failures, per-file submission
// failures, and plain validation problems.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors.
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedSubmission indicates a submission file that does not
	// match any intake policy's column contract
	ErrMalformedSubmission = errors.New("malformed submission")

	// ErrLocked indicates that the master table is locked by another run
	ErrLocked = errors.New("master table locked")
)

// ParseError represents a failure to read or parse a delimited file.
// Line is the 1-based line number when known, 0 otherwise.
type ParseError struct {
	Path string
	Line int
	Err  error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// SubmissionError represents a file-level failure while processing one
// submission. It is contained at the file boundary by the driver and
// never aborts the batch.
type SubmissionError struct {
	File string
	Err  error
}

// Error implements the error interface
func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission %s: %v", e.File, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SubmissionError) Is(target error) bool {
	return target == ErrMalformedSubmission && errors.Is(e.Err, ErrMalformedSubmission)
}

// NewSubmissionError creates a new SubmissionError
func NewSubmissionError(file string, err error) *SubmissionError {
	return &SubmissionError{File: file, Err: err}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsMalformedSubmission checks if an error marks an unusable submission file
func IsMalformedSubmission(err error) bool {
	return errors.Is(err, ErrMalformedSubmission)
}
