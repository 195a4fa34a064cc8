package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced id does not exist.
	// Read paths never return it - missing content is simply absent.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned when an administrative mutation is
	// not allowed, e.g. it would leave the system without an ADMIN_MASTER.
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError rejects a create/update call before any mutation happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
