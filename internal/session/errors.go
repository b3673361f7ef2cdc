package session

import "errors"

var (
	// ErrSessionNotFound is returned for unknown, logged-out or expired sessions.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidCredentials indicates a login or password check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingFields indicates a required form field was empty.
	ErrMissingFields = errors.New("required fields missing")
	// ErrPasswordMismatch indicates the new password and its confirmation differ.
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	// ErrInvalidTheme indicates an unsupported theme value.
	ErrInvalidTheme = errors.New("theme must be light or dark")
)
