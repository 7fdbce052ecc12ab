package services

import (
	"errors"
	"fmt"

	"farmlink/models"
)

// Failure taxonomy of the fulfillment pipeline. Nothing here is fatal:
// every error returns control to the caller with the data model intact.
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrStateConflict = errors.New("state conflict")
)

func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func stateConflictErr(current models.OrderStatus) error {
	return fmt.Errorf("%w: order cannot be cancelled (already %s)", ErrStateConflict, current)
}
