// Package account is the credential store: it owns registration,
// authentication and the admin/ban flags on accounts.
package account

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/arkade-games/adastra-server/internal/dependencies/clock"
	"github.com/arkade-games/adastra-server/internal/model"
	"github.com/arkade-games/adastra-server/internal/storage"
)

// Service handles account credentials and authorization flags
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new account service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// HashPassword returns the legacy digest stored for account passwords:
// an unsalted SHA-256 of the UTF-8 bytes, hex-encoded. Existing account
// rows were written with this digest, so it cannot change without a
// migration of every stored hash.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register creates a new account and its empty player profile.
// Returns model.ErrUsernameTaken if the username exists (case-sensitive
// exact match).
func (s *Service) Register(ctx context.Context, username, password, pilotName, shipName string) (*model.Account, error) {
	now := s.clock.Now()

	account := &model.Account{
		Username:     username,
		PasswordHash: HashPassword(password),
		CreatedAt:    now,
	}
	if err := s.storage.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	profile := model.NewProfile(account.ID)
	if pilotName != "" {
		profile.PilotName = pilotName
	}
	if shipName != "" {
		profile.ShipName = shipName
	}
	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.logger.Info("account registered",
		slog.String("username", username),
		slog.Int64("account_id", int64(account.ID)),
	)
	return account, nil
}

// Authenticate checks username and password. The ban flag is checked
// strictly before any caller gets the account back, so no session can be
// issued to a banned account. last_login is updated on success only.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.Account, error) {
	account, err := s.storage.GetAccountByUsername(ctx, username)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}
	if account.PasswordHash != HashPassword(password) {
		return nil, model.ErrInvalidCredentials
	}
	if account.IsBanned {
		return nil, model.ErrAccountBanned
	}

	now := s.clock.Now()
	if err := s.storage.SetLastLogin(ctx, account.ID, now); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	account.LastLogin = now

	return account, nil
}

// SetBanned sets the ban flag. Banning also revokes every live session, so
// outstanding tokens stop resolving immediately.
func (s *Service) SetBanned(ctx context.Context, username string, banned bool) error {
	account, err := s.storage.GetAccountByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.storage.SetAccountBanned(ctx, account.ID, banned); err != nil {
		return err
	}
	if banned {
		if err := s.storage.DeleteSessionsForAccount(ctx, account.ID); err != nil {
			return fmt.Errorf("revoke sessions: %w", err)
		}
	}
	s.logger.Info("account ban flag changed",
		slog.String("username", username),
		slog.Bool("banned", banned),
	)
	return nil
}

// PromoteToAdmin idempotently sets the admin flag. Used only by the startup
// bootstrap; not exposed as a network endpoint.
func (s *Service) PromoteToAdmin(ctx context.Context, username string) error {
	account, err := s.storage.GetAccountByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.storage.SetAccountAdmin(ctx, account.ID, true)
}

// EnsureAdmin creates the default admin account if it does not exist and
// promotes it otherwise. Called once at startup.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	if _, err := s.storage.GetAccountByUsername(ctx, username); err == nil {
		return s.PromoteToAdmin(ctx, username)
	}

	account := &model.Account{
		Username:     username,
		PasswordHash: HashPassword(password),
		CreatedAt:    s.clock.Now(),
		IsAdmin:      true,
	}
	if err := s.storage.CreateAccount(ctx, account); err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}
	if err := s.storage.SaveProfile(ctx, model.NewProfile(account.ID)); err != nil {
		return fmt.Errorf("create admin profile: %w", err)
	}

	s.logger.Info("admin account created", slog.String("username", username))
	return nil
}
