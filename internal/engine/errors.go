package engine

import (
	"errors"
	"fmt"
)

// Error kinds returned by the engine. Match them with errors.Is.
var (
	// ErrInvalidInput covers a missing or empty résumé and an incomplete job description.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInputTooLarge means a text exceeded the configured byte ceiling.
	ErrInputTooLarge = errors.New("input too large")
)

// InputError describes a rejected request field.
type InputError struct {
	Kind    error
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %s: %s", e.Kind, e.Field, e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Kind
}

func invalid(field, message string) error {
	return &InputError{Kind: ErrInvalidInput, Field: field, Message: message}
}

func tooLarge(field string, size, limit int) error {
	return &InputError{
		Kind:    ErrInputTooLarge,
		Field:   field,
		Message: fmt.Sprintf("%d bytes exceeds the %d byte limit", size, limit),
	}
}
