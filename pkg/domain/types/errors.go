package types

import "errors"

// Sentinel errors shared across the domain. Boundary code maps these to
// HTTP status codes.
var (
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation failed")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrUnauthorized         = errors.New("unauthorized")
)
