package services

import "errors"

// Domain errors returned by the services. Handlers translate these into
// HTTP status codes with errors.Is; everything else surfaces as a 500.
var (
	// ErrValidation wraps client-correctable input problems
	ErrValidation = errors.New("validation error")

	// ErrEmailTaken is returned when a sign-up reuses an existing email
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong password,
	// so a caller cannot probe which accounts exist
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWrongPasscode is returned when a membership or admin passcode does not match
	ErrWrongPasscode = errors.New("wrong passcode")

	// ErrMessageNotFound is returned when a delete targets an unknown message id
	ErrMessageNotFound = errors.New("message not found")
)
