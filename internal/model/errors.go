package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountBanned      = errors.New("account is banned")
	ErrAccountNotFound    = errors.New("account not found")

	// Profile errors
	ErrProfileNotFound = errors.New("player not found")

	// Session errors
	ErrInvalidToken = errors.New("invalid token")
	ErrNotAdmin     = errors.New("admin access required")
)
