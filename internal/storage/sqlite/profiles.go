package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arkade-games/adastra-server/internal/model"
	"github.com/arkade-games/adastra-server/internal/storage"
)

const profileColumns = `account_id, pilot_name, ship_name, ship_type, ship_variant,
	credits, turns, current_sector, cargo, equipment, game_state, last_activity`

func (s *Storage) GetProfile(ctx context.Context, accountID model.AccountID) (*model.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM players WHERE account_id = ?`, accountID)
	return scanProfile(row)
}

// SaveProfile inserts or fully overwrites the profile row for its account
func (s *Storage) SaveProfile(ctx context.Context, profile *model.Profile) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO players (account_id, pilot_name, ship_name, ship_type, ship_variant,
			credits, turns, current_sector, cargo, equipment, game_state, last_activity)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (account_id) DO UPDATE SET
			pilot_name = excluded.pilot_name,
			ship_name = excluded.ship_name,
			ship_type = excluded.ship_type,
			ship_variant = excluded.ship_variant,
			credits = excluded.credits,
			turns = excluded.turns,
			current_sector = excluded.current_sector,
			cargo = excluded.cargo,
			equipment = excluded.equipment,
			game_state = excluded.game_state,
			last_activity = excluded.last_activity`,
		profile.AccountID,
		profile.PilotName,
		profile.ShipName,
		profile.ShipType,
		profile.ShipVariant,
		profile.Credits,
		profile.Turns,
		profile.CurrentSector,
		string(profile.Cargo.Encode()),
		string(profile.Equipment.Encode()),
		string(profile.GameState.Encode()),
		formatTime(profile.LastActivity),
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// PatchProfile applies a partial admin update as one transaction, so the
// game_state read-modify-write for a hull/fuel merge is atomic
func (s *Storage) PatchProfile(ctx context.Context, accountID model.AccountID, patch model.ProfilePatch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin patch profile: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM players WHERE account_id = ?`, accountID)
	profile, err := scanProfile(row)
	if err != nil {
		return err
	}

	patch.Apply(profile)

	if _, err := tx.ExecContext(ctx,
		`UPDATE players SET
			pilot_name = ?, ship_name = ?, ship_type = ?, ship_variant = ?,
			credits = ?, turns = ?, current_sector = ?, game_state = ?
		 WHERE account_id = ?`,
		profile.PilotName,
		profile.ShipName,
		profile.ShipType,
		profile.ShipVariant,
		profile.Credits,
		profile.Turns,
		profile.CurrentSector,
		string(profile.GameState.Encode()),
		accountID,
	); err != nil {
		return fmt.Errorf("patch profile: %w", err)
	}

	return tx.Commit()
}

// ListPlayers joins every profile with its account, newest activity first.
// NULL activity sorts last; account id keeps the ordering deterministic.
func (s *Storage) ListPlayers(ctx context.Context) ([]model.PlayerRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.account_id, p.pilot_name, p.ship_name, p.ship_type, p.ship_variant,
			p.credits, p.turns, p.current_sector, p.cargo, p.equipment, p.game_state, p.last_activity,
			a.id, a.username, a.password_hash, a.created_at, a.last_login, a.is_admin, a.is_banned
		 FROM players p
		 JOIN accounts a ON p.account_id = a.id
		 ORDER BY p.last_activity IS NULL, p.last_activity DESC, a.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.PlayerRecord
	for rows.Next() {
		var (
			profile      model.Profile
			account      model.Account
			cargo        sql.NullString
			equipment    sql.NullString
			gameState    sql.NullString
			lastActivity sql.NullString
			createdAt    sql.NullString
			lastLogin    sql.NullString
		)
		if err := rows.Scan(
			&profile.AccountID,
			&profile.PilotName,
			&profile.ShipName,
			&profile.ShipType,
			&profile.ShipVariant,
			&profile.Credits,
			&profile.Turns,
			&profile.CurrentSector,
			&cargo,
			&equipment,
			&gameState,
			&lastActivity,
			&account.ID,
			&account.Username,
			&account.PasswordHash,
			&createdAt,
			&lastLogin,
			&account.IsAdmin,
			&account.IsBanned,
		); err != nil {
			return nil, fmt.Errorf("scan player record: %w", err)
		}
		profile.Cargo = model.DecodeObject([]byte(cargo.String))
		profile.Equipment = model.DecodeObject([]byte(equipment.String))
		profile.GameState = model.DecodeObject([]byte(gameState.String))
		profile.LastActivity = parseTime(lastActivity)
		account.CreatedAt = parseTime(createdAt)
		account.LastLogin = parseTime(lastLogin)
		records = append(records, model.PlayerRecord{Profile: profile, Account: account})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return records, nil
}

// ResetProfiles bulk-overwrites every non-admin profile with the starting
// values and clears the opaque blobs, in one statement
func (s *Storage) ResetProfiles(ctx context.Context, values storage.ResetValues) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE players SET
			credits = ?, turns = ?, current_sector = ?,
			cargo = '{}', equipment = '{}', game_state = '{}'
		 WHERE account_id IN (SELECT id FROM accounts WHERE is_admin = 0)`,
		values.Credits, values.Turns, values.CurrentSector,
	)
	if err != nil {
		return 0, fmt.Errorf("reset profiles: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reset profiles: %w", err)
	}
	return int(affected), nil
}

func scanProfile(row rowScanner) (*model.Profile, error) {
	var (
		profile      model.Profile
		cargo        sql.NullString
		equipment    sql.NullString
		gameState    sql.NullString
		lastActivity sql.NullString
	)
	err := row.Scan(
		&profile.AccountID,
		&profile.PilotName,
		&profile.ShipName,
		&profile.ShipType,
		&profile.ShipVariant,
		&profile.Credits,
		&profile.Turns,
		&profile.CurrentSector,
		&cargo,
		&equipment,
		&gameState,
		&lastActivity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	profile.Cargo = model.DecodeObject([]byte(cargo.String))
	profile.Equipment = model.DecodeObject([]byte(equipment.String))
	profile.GameState = model.DecodeObject([]byte(gameState.String))
	profile.LastActivity = parseTime(lastActivity)
	return &profile, nil
}
