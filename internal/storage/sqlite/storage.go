// Package sqlite provides the durable storage backend: a single SQLite file
// holding the accounts, players, sessions, game_settings and world_state
// tables.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/arkade-games/adastra-server/internal/model"
	"github.com/arkade-games/adastra-server/internal/storage"
)

// timeFormat pads the fraction to nine digits so stored text compares and
// sorts like the instant it encodes. RFC3339Nano would trim trailing zeros,
// and ".5Z" sorts lexicographically above ".52Z".
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Storage persists all game state in one SQLite file
type Storage struct {
	db *sql.DB
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Open opens (or creates) the database file at path and applies migrations.
// The busy timeout bounds how long a request waits on the writer lock.
func Open(path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database handle
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// migrate creates the schema and applies the additive column migrations.
// Everything here is idempotent so it runs unconditionally at startup.
func (s *Storage) migrate() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL,
			last_login TEXT,
			is_admin INTEGER NOT NULL DEFAULT 0,
			is_banned INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS players (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			account_id INTEGER NOT NULL UNIQUE,
			pilot_name TEXT NOT NULL,
			ship_name TEXT,
			credits INTEGER DEFAULT 10000,
			turns INTEGER DEFAULT 50,
			current_sector INTEGER DEFAULT 1,
			ship_type TEXT DEFAULT 'scout',
			ship_variant INTEGER DEFAULT 1,
			cargo TEXT DEFAULT '{}',
			equipment TEXT DEFAULT '{}',
			game_state TEXT DEFAULT '{}',
			last_activity TEXT,
			FOREIGN KEY (account_id) REFERENCES accounts(id)
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			account_id INTEGER NOT NULL,
			token TEXT UNIQUE NOT NULL,
			created_at TEXT NOT NULL,
			expires_at TEXT NOT NULL,
			FOREIGN KEY (account_id) REFERENCES accounts(id)
		)`,
		`CREATE TABLE IF NOT EXISTS game_settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS world_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			data TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	// Additive column migrations for databases created by older builds.
	// "duplicate column name" means the column is already there.
	additive := []string{
		`ALTER TABLE accounts ADD COLUMN is_banned INTEGER NOT NULL DEFAULT 0`,
		`ALTER TABLE players ADD COLUMN ship_variant INTEGER DEFAULT 1`,
		`ALTER TABLE players ADD COLUMN last_activity TEXT`,
	}
	for _, stmt := range additive {
		if _, err := s.db.Exec(stmt); err != nil && !isAlreadyExistsError(err) {
			return fmt.Errorf("additive migration: %w", err)
		}
	}

	// Seed default settings without clobbering tuned values
	for key, value := range model.DefaultSettings().Values() {
		if _, err := s.db.Exec(
			`INSERT OR IGNORE INTO game_settings (key, value) VALUES (?, ?)`,
			key, value,
		); err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
	}

	return nil
}

// isUniqueViolation reports whether err is a unique/primary-key constraint
// failure
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

// isAlreadyExistsError reports whether this error indicates idempotent DDL
// success
func isAlreadyExistsError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate column name")
}

// formatTime renders a time as fixed-width UTC text; the zero time stores
// as NULL
func formatTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(timeFormat)
}

// parseTime is the inverse of formatTime; NULL and unparseable text yield
// the zero time
func parseTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}
