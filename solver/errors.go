package solver

import "errors"

// Failures a Client reports. Callers treat all of them the same way, as a
// tick without production, but log which one happened.
var (
	ErrUnreachable = errors.New("solver unreachable")
	ErrSpawn       = errors.New("solver process failed to start")
	ErrTimeout     = errors.New("solver timed out")
	ErrMalformed   = errors.New("malformed solver message")
)
