package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// FieldValidationError carries per-field messages for multi-field forms
// (passenger details, card details). Keys follow the form's own naming,
// e.g. "phone-1" or "cardExpiry".
type FieldValidationError struct {
	Fields map[string]string
}

func (e FieldValidationError) Error() string {
	if len(e.Fields) == 1 {
		for k, v := range e.Fields {
			return fmt.Sprintf("%s: %s", k, v)
		}
	}
	return fmt.Sprintf("validation failed for %d fields", len(e.Fields))
}

// MissingSelectionError rejects a step transition that requires a prior
// choice (a bus, at least one seat).
type MissingSelectionError struct {
	Subject string
}

func (e MissingSelectionError) Error() string {
	if e.Subject == "" {
		return "selection required"
	}
	return fmt.Sprintf("no %s selected", e.Subject)
}

// CapacityExceededError rejects seat selection beyond the per-booking cap.
type CapacityExceededError struct {
	Limit int
}

func (e CapacityExceededError) Error() string {
	return fmt.Sprintf("maximum %d seats can be booked at once", e.Limit)
}

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

// AsFieldValidation extracts the field map when err is a FieldValidationError.
func AsFieldValidation(err error) (FieldValidationError, bool) {
	var target FieldValidationError
	ok := errors.As(err, &target)
	return target, ok
}

func IsMissingSelection(err error) bool {
	var target MissingSelectionError
	return errors.As(err, &target)
}

func IsCapacityExceeded(err error) bool {
	var target CapacityExceededError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
