// Package common defines shared constants and sentinel errors used across
// the server and trainer components of ReviewPulse. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors (empty input, malformed form fields).
	ErrorValidation = errors.New("validation error")

	// Auth errors (invalid or malformed session token).
	ErrInvalidToken = errors.New("invalid token")

	// Session lifecycle errors.
	ErrSessionExpired = errors.New("session expired")
)
