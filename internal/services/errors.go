package services

import "errors"

// Sentinel errors shared across services; handlers map these to HTTP status
// codes.
var (
	ErrValidationFailed = errors.New("validation failed")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrGoogleAuthFailed   = errors.New("google authentication failed")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("resource not found")

	ErrGenerationNotConfigured = errors.New("generation api not configured")
	ErrGenerationFailed        = errors.New("generation request failed")
)
