package service

import "errors"

var (
	// ErrGenerationExhausted is returned when every generated share code
	// candidate collided with an already stored value. With a 36^6 keyspace
	// this bound exists to stop runaway loops, not because it is expected
	// to trip.
	ErrGenerationExhausted = errors.New("share code generation exhausted")
	// ErrShareCodeExpired is returned when a share code exists but its
	// validity window has closed. Distinct from not-found so callers can
	// prompt for regeneration instead of reporting an invalid code.
	ErrShareCodeExpired = errors.New("share code expired")
	// ErrAccessDenied is returned when a caller is not allowed to view or
	// mutate the requested resource.
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidCredentials is returned when login fails. It deliberately
	// does not say whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
