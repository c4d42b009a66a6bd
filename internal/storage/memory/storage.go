package memory

import (
	"context"
	"sync"
	"time"

	"github.com/arkade-games/adastra-server/internal/model"
	"github.com/arkade-games/adastra-server/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// It mirrors the SQLite backend's semantics closely enough that services
// can be unit-tested against it.
type Storage struct {
	mu sync.RWMutex

	nextAccountID model.AccountID
	nextSessionID int64

	accounts      map[model.AccountID]*model.Account
	usernameIndex map[string]model.AccountID
	profiles      map[model.AccountID]*model.Profile
	sessions      map[string]*model.Session
	settings      map[string]string
	world         *model.WorldSnapshot
}

// New creates a new in-memory storage instance seeded with the default
// game settings, as a fresh database file would be
func New() *Storage {
	return &Storage{
		nextAccountID: 1,
		nextSessionID: 1,
		accounts:      make(map[model.AccountID]*model.Account),
		usernameIndex: make(map[string]model.AccountID),
		profiles:      make(map[model.AccountID]*model.Profile),
		sessions:      make(map[string]*model.Session),
		settings:      model.DefaultSettings().Values(),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) CreateAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.usernameIndex[account.Username]; exists {
		return model.ErrUsernameTaken
	}
	account.ID = s.nextAccountID
	s.nextAccountID++
	cp := *account
	s.accounts[account.ID] = &cp
	s.usernameIndex[account.Username] = account.ID
	return nil
}

func (s *Storage) GetAccountByID(ctx context.Context, id model.AccountID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	cp := *account
	return &cp, nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	cp := *s.accounts[id]
	return &cp, nil
}

func (s *Storage) SetLastLogin(ctx context.Context, id model.AccountID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return model.ErrAccountNotFound
	}
	account.LastLogin = at
	return nil
}

func (s *Storage) SetAccountBanned(ctx context.Context, id model.AccountID, banned bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return model.ErrAccountNotFound
	}
	account.IsBanned = banned
	return nil
}

func (s *Storage) SetAccountAdmin(ctx context.Context, id model.AccountID, admin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return model.ErrAccountNotFound
	}
	account.IsAdmin = admin
	return nil
}

func (s *Storage) DeleteAccount(ctx context.Context, id model.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return model.ErrAccountNotFound
	}
	// Profile and sessions first, then the account (referential order)
	delete(s.profiles, id)
	for token, session := range s.sessions {
		if session.AccountID == id {
			delete(s.sessions, token)
		}
	}
	delete(s.usernameIndex, account.Username)
	delete(s.accounts, id)
	return nil
}

// Profile operations

func (s *Storage) GetProfile(ctx context.Context, accountID model.AccountID) (*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[accountID]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	return copyProfile(profile), nil
}

func (s *Storage) SaveProfile(ctx context.Context, profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.AccountID] = copyProfile(profile)
	return nil
}

func (s *Storage) PatchProfile(ctx context.Context, accountID model.AccountID, patch model.ProfilePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[accountID]
	if !ok {
		return model.ErrProfileNotFound
	}
	patch.Apply(profile)
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]model.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]model.PlayerRecord, 0, len(s.profiles))
	for id, profile := range s.profiles {
		account, ok := s.accounts[id]
		if !ok {
			continue
		}
		records = append(records, model.PlayerRecord{
			Profile: *copyProfile(profile),
			Account: *account,
		})
	}
	sortPlayerRecords(records)
	return records, nil
}

func (s *Storage) ResetProfiles(ctx context.Context, values storage.ResetValues) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	affected := 0
	for id, profile := range s.profiles {
		account, ok := s.accounts[id]
		if !ok || account.IsAdmin {
			continue
		}
		profile.Credits = values.Credits
		profile.Turns = values.Turns
		profile.CurrentSector = values.CurrentSector
		profile.Cargo = model.JSONObject{}
		profile.Equipment = model.JSONObject{}
		profile.GameState = model.JSONObject{}
		affected++
	}
	return affected, nil
}

// Session operations

func (s *Storage) CreateSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.ID = s.nextSessionID
	s.nextSessionID++
	cp := *session
	s.sessions[session.Token] = &cp
	return nil
}

func (s *Storage) GetSessionByToken(ctx context.Context, token string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrInvalidToken
	}
	cp := *session
	return &cp, nil
}

func (s *Storage) DeleteSessionsForAccount(ctx context.Context, accountID model.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, session := range s.sessions {
		if session.AccountID == accountID {
			delete(s.sessions, token)
		}
	}
	return nil
}

// Settings operations

func (s *Storage) GetSettingValues(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values := make(map[string]string, len(s.settings))
	for k, v := range s.settings {
		values[k] = v
	}
	return values, nil
}

func (s *Storage) PutSettingValues(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.settings[k] = v
	}
	return nil
}

// World snapshot operations

func (s *Storage) GetWorld(ctx context.Context) (*model.WorldSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.world == nil {
		return nil, nil
	}
	return &model.WorldSnapshot{
		Data:      s.world.Data.Clone(),
		UpdatedAt: s.world.UpdatedAt,
	}, nil
}

func (s *Storage) ReplaceWorld(ctx context.Context, snapshot *model.WorldSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.world = &model.WorldSnapshot{
		Data:      snapshot.Data.Clone(),
		UpdatedAt: snapshot.UpdatedAt,
	}
	return nil
}

// Stats

func (s *Storage) Stats(ctx context.Context, activeSince time.Time) (model.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stats model.Stats
	for _, account := range s.accounts {
		if !account.IsAdmin {
			stats.TotalPlayers++
		}
	}
	seen := make(map[model.AccountID]bool)
	for _, session := range s.sessions {
		stats.TotalConnections++
		if !seen[session.AccountID] {
			seen[session.AccountID] = true
			stats.ActiveSessions++
		}
	}
	for _, profile := range s.profiles {
		if profile.LastActivity.After(activeSince) {
			stats.RecentlyActive++
		}
	}
	return stats, nil
}

// Close is a no-op for the in-memory backend
func (s *Storage) Close() error {
	return nil
}

func copyProfile(p *model.Profile) *model.Profile {
	cp := *p
	cp.Cargo = p.Cargo.Clone()
	cp.Equipment = p.Equipment.Clone()
	cp.GameState = p.GameState.Clone()
	return &cp
}
