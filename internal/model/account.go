package model

import "time"

// AccountID uniquely identifies an account across the system
type AccountID int64

// Account is the credential and authorization identity for a player.
// Exactly one Account exists per registration; the username is unique.
type Account struct {
	ID           AccountID
	Username     string
	PasswordHash string // legacy SHA-256 hex digest (see account service)
	CreatedAt    time.Time
	LastLogin    time.Time // zero until the first successful login
	IsAdmin      bool
	IsBanned     bool
}
