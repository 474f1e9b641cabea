package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidInput           = errors.New("invalid input")
	ErrBookingCreateFailed    = errors.New("booking could not be created")
)

// InputError carries field-scoped problems with a request.
type InputError struct {
	Fields map[string]string
}

func newInputError(field, msg string) *InputError {
	return &InputError{Fields: map[string]string{field: msg}}
}

func (e *InputError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid input: " + strings.Join(keys, ", ")
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }
