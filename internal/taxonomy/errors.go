package taxonomy

import (
	"errors"
	"fmt"
)

// ErrTaxonomyUnavailable is returned when no skill taxonomy has been loaded. A process
// that cannot load one cannot serve any request.
var ErrTaxonomyUnavailable = errors.New("skill taxonomy unavailable")

// LoadError represents an error reading or validating a taxonomy source
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("taxonomy %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("taxonomy %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
