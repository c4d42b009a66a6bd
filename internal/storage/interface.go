package storage

import (
	"context"
	"time"

	"github.com/arkade-games/adastra-server/internal/model"
)

// ResetValues are the starting values applied to non-admin profiles by a
// galaxy reset. The opaque blobs are always cleared to empty objects.
type ResetValues struct {
	Credits       int64
	Turns         int
	CurrentSector int
}

// Storage defines the interface for data persistence.
//
// Every method is a single atomic operation with respect to concurrent
// callers: a reader never observes a partially-applied multi-column update,
// and the multi-row operations (DeleteAccount, ResetProfiles, ReplaceWorld,
// PatchProfile) commit all-or-nothing.
type Storage interface {
	// Account operations
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccountByID(ctx context.Context, id model.AccountID) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
	SetLastLogin(ctx context.Context, id model.AccountID, at time.Time) error
	SetAccountBanned(ctx context.Context, id model.AccountID, banned bool) error
	SetAccountAdmin(ctx context.Context, id model.AccountID, admin bool) error
	// DeleteAccount removes the profile, all sessions and the account itself
	DeleteAccount(ctx context.Context, id model.AccountID) error

	// Profile operations
	GetProfile(ctx context.Context, accountID model.AccountID) (*model.Profile, error)
	SaveProfile(ctx context.Context, profile *model.Profile) error
	// PatchProfile applies a partial admin update as one read-modify-write
	PatchProfile(ctx context.Context, accountID model.AccountID, patch model.ProfilePatch) error
	// ListPlayers returns every profile joined with its account, ordered by
	// last activity descending with account id as a stable tiebreaker
	ListPlayers(ctx context.Context) ([]model.PlayerRecord, error)
	// ResetProfiles overwrites the starting values and clears the blobs for
	// every profile whose account is not an admin; returns rows affected
	ResetProfiles(ctx context.Context, values ResetValues) (int, error)

	// Session operations
	CreateSession(ctx context.Context, session *model.Session) error
	GetSessionByToken(ctx context.Context, token string) (*model.Session, error)
	DeleteSessionsForAccount(ctx context.Context, accountID model.AccountID) error

	// Settings operations
	GetSettingValues(ctx context.Context) (map[string]string, error)
	PutSettingValues(ctx context.Context, values map[string]string) error

	// World snapshot operations
	GetWorld(ctx context.Context) (*model.WorldSnapshot, error)
	ReplaceWorld(ctx context.Context, snapshot *model.WorldSnapshot) error

	// Stats returns the derived counters; activeSince bounds the
	// recently-active window
	Stats(ctx context.Context, activeSince time.Time) (model.Stats, error)

	Close() error
}
