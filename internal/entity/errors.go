package entity

import "errors"

// Sentinel errors shared across repositories and services. Handlers map them
// to HTTP status codes at the request boundary.
var (
	ErrValidation         = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrForbidden          = errors.New("forbidden")
)
