package domain

import "errors"

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found or expired")
)

var (
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var (
	// ErrEventFull is returned only when capacity enforcement is enabled.
	ErrEventFull = errors.New("event has no free spots")
)

var (
	ErrValidation = errors.New("validation error")
)
