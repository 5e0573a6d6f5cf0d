package model

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that an entity id did not resolve. Callers surface it
// without retrying.
var ErrNotFound = errors.New("not found")

// NotFoundf wraps ErrNotFound with the entity kind and id.
func NotFoundf(entity, id string) error {
	return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
}

// ValidationError reports a malformed input. Invalid values are rejected,
// never silently corrected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
