package model

import "time"

// Session is a bearer credential resolving to an Account for as long as it
// remains unrevoked. ExpiresAt is stored but not enforced: it is set equal
// to CreatedAt, matching the existing data contract. Sessions die only by
// revocation (kick, ban, account deletion).
type Session struct {
	ID        int64
	AccountID AccountID
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// TokenLength is the length of a session token: 32 random bytes hex-encoded
const TokenLength = 64
