// Package shared contains common domain types and errors used across all
// domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound = errors.New("entity not found")

	// Input errors
	ErrInputRejected   = errors.New("input rejected")
	ErrArgumentInvalid = errors.New("argument invalid")
	ErrValueOutOfRange = errors.New("value out of range")

	// State errors
	ErrSequenceViolation = errors.New("selection sequence violation")
	ErrInvalidState      = errors.New("invalid state")
	ErrStateTransition   = errors.New("invalid state transition")

	// Data source errors
	ErrDataUnavailable = errors.New("data source unavailable")
	ErrDataMalformed   = errors.New("data source malformed")

	// External service errors
	ErrExternalService = errors.New("external service error")
	ErrRateLimited     = errors.New("rate limited")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "curriculum", "session", "dialog"
	Op      string // Operation that failed, e.g., "Load", "SelectGrade"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Session domain errors
var (
	ErrSessionNotFound   = NewDomainError("session", "Find", ErrNotFound, "session not found")
	ErrGradeNotSelected  = NewDomainError("session", "SelectSubject", ErrSequenceViolation, "grade must be selected first")
	ErrSelectionRequired = NewDomainError("session", "QueryWeek", ErrSequenceViolation, "grade and subject must be selected first")
)

// Curriculum domain errors
var (
	ErrUnknownGrade   = NewDomainError("curriculum", "ParseGrade", ErrInputRejected, "unknown grade")
	ErrUnknownSubject = NewDomainError("curriculum", "ParseSubject", ErrInputRejected, "unknown subject")
	ErrWeekOutOfRange = NewDomainError("curriculum", "ValidateWeek", ErrArgumentInvalid, "week must be between 1 and 40")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsSequenceViolation checks if the error is a selection sequence violation.
func IsSequenceViolation(err error) bool {
	return errors.Is(err, ErrSequenceViolation)
}

// IsDataError checks if the error came from the curriculum data source.
func IsDataError(err error) bool {
	return errors.Is(err, ErrDataUnavailable) || errors.Is(err, ErrDataMalformed)
}
