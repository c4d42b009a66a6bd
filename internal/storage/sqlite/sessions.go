package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arkade-games/adastra-server/internal/model"
)

func (s *Storage) CreateSession(ctx context.Context, session *model.Session) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (account_id, token, created_at, expires_at)
		 VALUES (?, ?, ?, ?)`,
		session.AccountID,
		session.Token,
		formatTime(session.CreatedAt),
		formatTime(session.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("session id: %w", err)
	}
	session.ID = id
	return nil
}

func (s *Storage) GetSessionByToken(ctx context.Context, token string) (*model.Session, error) {
	var (
		session   model.Session
		createdAt sql.NullString
		expiresAt sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, account_id, token, created_at, expires_at FROM sessions WHERE token = ?`,
		token,
	).Scan(&session.ID, &session.AccountID, &session.Token, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrInvalidToken
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	session.CreatedAt = parseTime(createdAt)
	session.ExpiresAt = parseTime(expiresAt)
	return &session, nil
}

func (s *Storage) DeleteSessionsForAccount(ctx context.Context, accountID model.AccountID) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE account_id = ?`, accountID); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return nil
}
