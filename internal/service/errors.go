package service

import "errors"

// ValidationError reports a required field that was missing or empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "required field missing: " + e.Field
}

// ErrImmutableField is returned when a save attempts to change a field
// that is fixed at creation time (the owning user, the creation timestamp).
var ErrImmutableField = errors.New("immutable field changed")

// ErrUnknownStatus is returned when a status value outside the defined
// workflow set is supplied. This includes the reserved value 5.
var ErrUnknownStatus = errors.New("unknown message status")
