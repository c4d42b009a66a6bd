package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arkade-games/adastra-server/internal/model"
)

func (s *Storage) CreateAccount(ctx context.Context, account *model.Account) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (username, password_hash, created_at, last_login, is_admin, is_banned)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		account.Username,
		account.PasswordHash,
		formatTime(account.CreatedAt),
		formatTime(account.LastLogin),
		account.IsAdmin,
		account.IsBanned,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrUsernameTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("account id: %w", err)
	}
	account.ID = model.AccountID(id)
	return nil
}

const accountColumns = `id, username, password_hash, created_at, last_login, is_admin, is_banned`

func (s *Storage) GetAccountByID(ctx context.Context, id model.AccountID) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = ?`, username)
	return scanAccount(row)
}

func (s *Storage) SetLastLogin(ctx context.Context, id model.AccountID, at time.Time) error {
	return s.updateAccount(ctx,
		`UPDATE accounts SET last_login = ? WHERE id = ?`, formatTime(at), id)
}

func (s *Storage) SetAccountBanned(ctx context.Context, id model.AccountID, banned bool) error {
	return s.updateAccount(ctx,
		`UPDATE accounts SET is_banned = ? WHERE id = ?`, banned, id)
}

func (s *Storage) SetAccountAdmin(ctx context.Context, id model.AccountID, admin bool) error {
	return s.updateAccount(ctx,
		`UPDATE accounts SET is_admin = ? WHERE id = ?`, admin, id)
}

// DeleteAccount removes the profile, every session and the account row in
// one transaction, in referential order
func (s *Storage) DeleteAccount(ctx context.Context, id model.AccountID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete account: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM accounts WHERE id = ?`, id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrAccountNotFound
		}
		return fmt.Errorf("check account: %w", err)
	}

	for _, stmt := range []string{
		`DELETE FROM players WHERE account_id = ?`,
		`DELETE FROM sessions WHERE account_id = ?`,
		`DELETE FROM accounts WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("delete account: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Storage) updateAccount(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if affected == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*model.Account, error) {
	var (
		account   model.Account
		createdAt sql.NullString
		lastLogin sql.NullString
	)
	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&createdAt,
		&lastLogin,
		&account.IsAdmin,
		&account.IsBanned,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	account.CreatedAt = parseTime(createdAt)
	account.LastLogin = parseTime(lastLogin)
	return &account, nil
}
