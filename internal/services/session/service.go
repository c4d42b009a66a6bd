// Package session is the session authority: it issues, resolves and revokes
// the bearer tokens that map requests to accounts.
package session

import (
	"context"
	"log/slog"

	"github.com/arkade-games/adastra-server/internal/dependencies/clock"
	"github.com/arkade-games/adastra-server/internal/dependencies/random"
	"github.com/arkade-games/adastra-server/internal/model"
	"github.com/arkade-games/adastra-server/internal/storage"
)

const hexAlphabet = "0123456789abcdef"

// Service issues and resolves bearer tokens
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new session service
func New(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		random:  rnd,
		logger:  logger,
	}
}

// Issue creates a session with a fresh 256-bit token (64 hex characters).
// expires_at is stored equal to created_at: sessions do not auto-expire
// under the current contract, they persist until revoked.
func (s *Service) Issue(ctx context.Context, accountID model.AccountID) (*model.Session, error) {
	now := s.clock.Now()
	session := &model.Session{
		AccountID: accountID,
		Token:     s.random.String(model.TokenLength, hexAlphabet),
		CreatedAt: now,
		ExpiresAt: now,
	}
	if err := s.storage.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Resolve maps a token to its account id. It does not check the ban flag;
// callers that care (login) re-check via the credential store.
func (s *Service) Resolve(ctx context.Context, token string) (model.AccountID, error) {
	if token == "" {
		return 0, model.ErrInvalidToken
	}
	session, err := s.storage.GetSessionByToken(ctx, token)
	if err != nil {
		return 0, err
	}
	return session.AccountID, nil
}

// ResolveAccount resolves a token and loads its account
func (s *Service) ResolveAccount(ctx context.Context, token string) (*model.Account, error) {
	accountID, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	account, err := s.storage.GetAccountByID(ctx, accountID)
	if err != nil {
		// Session row outlived its account; treat the token as dead
		return nil, model.ErrInvalidToken
	}
	return account, nil
}

// ResolveAdmin resolves a token and requires the admin flag on its account
func (s *Service) ResolveAdmin(ctx context.Context, token string) (*model.Account, error) {
	account, err := s.ResolveAccount(ctx, token)
	if err != nil {
		return nil, err
	}
	if !account.IsAdmin {
		return nil, model.ErrNotAdmin
	}
	return account, nil
}

// RevokeAll deletes every session for the account, forcing re-login
func (s *Service) RevokeAll(ctx context.Context, accountID model.AccountID) error {
	if err := s.storage.DeleteSessionsForAccount(ctx, accountID); err != nil {
		return err
	}
	s.logger.Info("sessions revoked", slog.Int64("account_id", int64(accountID)))
	return nil
}
