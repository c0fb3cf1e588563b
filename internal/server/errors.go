package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-scorer/internal/engine"
	"github.com/jonathan/resume-scorer/internal/taxonomy"
)

// ErrValidation indicates a request body the server could not accept before it reached
// the engine.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		tooBig     *http.MaxBytesError
		loadErr    *taxonomy.LoadError
	)
	switch {
	case errors.As(err, &validation), errors.Is(err, engine.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.As(err, &tooBig), errors.Is(err, engine.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, taxonomy.ErrTaxonomyUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &loadErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON error payload. Field is set for rejected inputs.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func newErrorBody(err error) errorBody {
	body := errorBody{Error: err.Error()}

	var (
		inputErr   *engine.InputError
		validation *ErrValidation
	)
	switch {
	case errors.As(err, &inputErr):
		body.Field = inputErr.Field
	case errors.As(err, &validation):
		body.Field = validation.Field
	}

	// Internal failures are logged, not echoed.
	if HTTPStatus(err) == http.StatusInternalServerError {
		body.Error = "internal error"
	}
	return body
}
