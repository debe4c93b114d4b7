package site

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount indicates a donation amount of zero or less.
	ErrInvalidAmount = errors.New("site: amount must be positive")

	// ErrNotANumber indicates text with no leading number.
	ErrNotANumber = errors.New("site: not a number")

	// ErrMissingField indicates an empty required form field.
	ErrMissingField = errors.New("site: required field is empty")

	// ErrInvalidEmail indicates a malformed email address.
	ErrInvalidEmail = errors.New("site: invalid email address")
)

// RelayError is a non-success response from the email relay.
type RelayError struct {
	Status int
	Body   string
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("site: relay returned %d: %s", e.Status, e.Body)
}
