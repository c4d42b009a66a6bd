// Package player owns the 1:1 account-to-profile record and the client
// sync path.
package player

import (
	"context"
	"log/slog"

	"github.com/arkade-games/adastra-server/internal/dependencies/clock"
	"github.com/arkade-games/adastra-server/internal/model"
	"github.com/arkade-games/adastra-server/internal/storage"
)

// Service handles player profile reads and syncs
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new player service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// Get returns the profile for an account. Every registered account gets a
// profile, but a missing row is still reported as ErrProfileNotFound rather
// than assumed impossible.
func (s *Service) Get(ctx context.Context, accountID model.AccountID) (*model.Profile, error) {
	return s.storage.GetProfile(ctx, accountID)
}

// SyncFields are the caller-supplied profile fields for an upsert.
// Numeric fields are stored as-is with no range validation: the client is
// authoritative for them under the current contract.
type SyncFields struct {
	PilotName     string
	ShipName      string
	ShipType      string
	ShipVariant   int
	Credits       int64
	Turns         int
	CurrentSector int
	Cargo         model.JSONObject
	Equipment     model.JSONObject
	GameState     model.JSONObject
}

// Upsert overwrites the profile with the supplied fields, stamping
// last_activity. If no profile row exists yet one is created, falling back
// to the documented defaults for anything the caller left empty.
func (s *Service) Upsert(ctx context.Context, accountID model.AccountID, fields SyncFields) error {
	profile := &model.Profile{
		AccountID:     accountID,
		PilotName:     fields.PilotName,
		ShipName:      fields.ShipName,
		ShipType:      fields.ShipType,
		ShipVariant:   fields.ShipVariant,
		Credits:       fields.Credits,
		Turns:         fields.Turns,
		CurrentSector: fields.CurrentSector,
		Cargo:         fields.Cargo,
		Equipment:     fields.Equipment,
		GameState:     fields.GameState,
		LastActivity:  s.clock.Now(),
	}
	if profile.Cargo == nil {
		profile.Cargo = model.JSONObject{}
	}
	if profile.Equipment == nil {
		profile.Equipment = model.JSONObject{}
	}
	if profile.GameState == nil {
		profile.GameState = model.JSONObject{}
	}
	if profile.PilotName == "" {
		profile.PilotName = model.DefaultPilotName
	}
	if profile.ShipName == "" {
		profile.ShipName = model.DefaultShipName
	}
	if profile.ShipType == "" {
		profile.ShipType = model.DefaultShipType
	}
	if profile.ShipVariant == 0 {
		profile.ShipVariant = model.DefaultShipVariant
	}

	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		return err
	}

	s.logger.Debug("profile synced", slog.Int64("account_id", int64(accountID)))
	return nil
}
