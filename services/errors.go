package services

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Handlers map these to HTTP status codes at the
// boundary; everything else surfaces as a 500.
var (
	// ErrNotFound means a referenced entity id does not exist
	ErrNotFound = errors.New("not found")

	// ErrAlreadyClaimed means a claim was attempted on an already-assigned request
	ErrAlreadyClaimed = errors.New("request is already taken")

	// ErrNotClaimed means a completion was attempted on an unclaimed request
	ErrNotClaimed = errors.New("request must be claimed before completion")

	// ErrForbidden means the caller lacks the role for the operation
	ErrForbidden = errors.New("operation not permitted for this role")
)

// ValidationError reports a missing or malformed required field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a field
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IntegrityError reports a location hierarchy mismatch, e.g. a room whose
// building differs from its floor's building
type IntegrityError struct {
	Reason string
}

func (e *IntegrityError) Error() string {
	return e.Reason
}

// NewIntegrityError builds an IntegrityError
func NewIntegrityError(reason string) error {
	return &IntegrityError{Reason: reason}
}

// IsIntegrity reports whether err is an IntegrityError
func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}
