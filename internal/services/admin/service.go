// Package admin is the sysop control surface: player inspection and
// mutation, kick/ban, galaxy reset, settings and dashboard stats.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arkade-games/adastra-server/internal/dependencies/clock"
	"github.com/arkade-games/adastra-server/internal/model"
	"github.com/arkade-games/adastra-server/internal/services/account"
	"github.com/arkade-games/adastra-server/internal/services/session"
	"github.com/arkade-games/adastra-server/internal/storage"
)

// RecentActivityWindow is how far back the stats counter looks for
// "recently active" players
const RecentActivityWindow = 10 * time.Minute

// Service composes the credential store, session authority and profile
// store into the admin operations
type Service struct {
	storage  storage.Storage
	accounts *account.Service
	sessions *session.Service
	clock    clock.Clock
	logger   *slog.Logger
}

// New creates a new admin service
func New(store storage.Storage, accounts *account.Service, sessions *session.Service, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage:  store,
		accounts: accounts,
		sessions: sessions,
		clock:    clk,
		logger:   logger,
	}
}

// ListPlayers returns every profile joined with its account, most recent
// activity first
func (s *Service) ListPlayers(ctx context.Context) ([]model.PlayerRecord, error) {
	return s.storage.ListPlayers(ctx)
}

// GetPlayer returns the joined record for one username
func (s *Service) GetPlayer(ctx context.Context, username string) (*model.PlayerRecord, error) {
	acct, err := s.storage.GetAccountByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	profile, err := s.storage.GetProfile(ctx, acct.ID)
	if err != nil {
		return nil, err
	}
	return &model.PlayerRecord{Profile: *profile, Account: *acct}, nil
}

// UpdatePlayer applies a partial update to the player's profile. Hull and
// fuel merge into game_state.ship; a full gameState replacement only
// applies when neither is present (see model.ProfilePatch).
func (s *Service) UpdatePlayer(ctx context.Context, username string, patch model.ProfilePatch) error {
	acct, err := s.storage.GetAccountByUsername(ctx, username)
	if err != nil {
		return err
	}
	if patch.IsZero() {
		return nil
	}
	if err := s.storage.PatchProfile(ctx, acct.ID, patch); err != nil {
		return err
	}
	s.logger.Info("player updated by admin", slog.String("username", username))
	return nil
}

// DeletePlayer removes the profile, all sessions and the account
func (s *Service) DeletePlayer(ctx context.Context, username string) error {
	acct, err := s.storage.GetAccountByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.storage.DeleteAccount(ctx, acct.ID); err != nil {
		return err
	}
	s.logger.Info("player deleted", slog.String("username", username))
	return nil
}

// KickPlayer revokes every session for the player. Account and profile are
// untouched; the player can log straight back in.
func (s *Service) KickPlayer(ctx context.Context, username string) error {
	acct, err := s.storage.GetAccountByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.sessions.RevokeAll(ctx, acct.ID)
}

// BanPlayer sets or clears the ban flag; banning also revokes sessions.
// An unknown username is a no-op success: the endpoint updates whatever
// matches and reports success either way.
func (s *Service) BanPlayer(ctx context.Context, username string, banned bool) error {
	err := s.accounts.SetBanned(ctx, username, banned)
	if errors.Is(err, model.ErrAccountNotFound) {
		return nil
	}
	return err
}

// ResetResult summarizes a galaxy reset
type ResetResult struct {
	PlayersReset int
	Settings     model.Settings
}

// ResetGalaxy resets every non-admin profile to the configured starting
// values and clears cargo, equipment and game state. Admin profiles are
// never touched.
func (s *Service) ResetGalaxy(ctx context.Context) (*ResetResult, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	affected, err := s.storage.ResetProfiles(ctx, storage.ResetValues{
		Credits:       int64(settings.StartingCredits),
		Turns:         settings.StartingTurns,
		CurrentSector: settings.StartingSector,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("galaxy reset", slog.Int("players_reset", affected))
	return &ResetResult{PlayersReset: affected, Settings: settings}, nil
}

// GetSettings reads the six tunables, falling back to hard-coded defaults
// for any missing key. Unknown keys in the table are ignored.
func (s *Service) GetSettings(ctx context.Context) (model.Settings, error) {
	values, err := s.storage.GetSettingValues(ctx)
	if err != nil {
		return model.Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return model.SettingsFromValues(values), nil
}

// UpdateSettings writes the provided subset of keys and returns which of
// the known keys were updated. Unknown keys in the request are ignored.
func (s *Service) UpdateSettings(ctx context.Context, values map[string]string) ([]string, error) {
	known := map[string]bool{
		model.SettingStartingSector:  true,
		model.SettingStartingCredits: true,
		model.SettingStartingTurns:   true,
		model.SettingStartingFuel:    true,
		model.SettingStartingHull:    true,
		model.SettingStartingShields: true,
	}
	filtered := make(map[string]string, len(values))
	var updated []string
	for key, value := range values {
		if known[key] {
			filtered[key] = value
			updated = append(updated, key)
		}
	}
	if len(filtered) == 0 {
		return nil, nil
	}
	if err := s.storage.PutSettingValues(ctx, filtered); err != nil {
		return nil, err
	}
	s.logger.Info("settings updated", slog.Any("keys", updated))
	return updated, nil
}

// Stats returns the dashboard counters
func (s *Service) Stats(ctx context.Context) (model.Stats, error) {
	return s.storage.Stats(ctx, s.clock.Now().Add(-RecentActivityWindow))
}
