package domain

import "fmt"

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is matches any ValidationError on the same field, so callers can use errors.Is against ErrInvalidDuration.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Field == e.Field
}

// ErrInvalidDuration is returned when the submitted duration is missing, non-numeric or not positive.
var ErrInvalidDuration = &ValidationError{Field: "duration", Reason: "must be a number greater than zero"}
