package domain

import "errors"

// Error taxonomy shared by the remote client, the controllers and the
// reference API. Callers match with errors.Is.
var (
	ErrNetwork    = errors.New("network failure")
	ErrValidation = errors.New("validation failure")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)
