package session

import "errors"

// Session errors.
var (
	// ErrNotConfigured is returned when a controller asks for a session but
	// the app has no session manager.
	ErrNotConfigured = errors.New("session: not configured")

	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("session: not found")

	// ErrExpired is returned when a session has expired.
	ErrExpired = errors.New("session: expired")

	// ErrTypeMismatch is returned by Value when the stored type differs.
	ErrTypeMismatch = errors.New("session: type mismatch")
)
