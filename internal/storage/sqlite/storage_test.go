package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/arkade-games/adastra-server/internal/model"
	"github.com/arkade-games/adastra-server/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	path    string
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "game.db")
	store, err := Open(s.path)
	s.Require().NoError(err)
	s.storage = store
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	s.Require().NoError(s.storage.Close())
}

func (s *StorageSuite) createAccount(username string, admin bool) *model.Account {
	account := &model.Account{
		Username:     username,
		PasswordHash: "hash",
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		IsAdmin:      admin,
	}
	s.Require().NoError(s.storage.CreateAccount(s.ctx, account))
	s.Require().NoError(s.storage.SaveProfile(s.ctx, model.NewProfile(account.ID)))
	return account
}

func (s *StorageSuite) TestOpenRequiresPath() {
	_, err := Open("  ")
	s.Error(err)
}

func (s *StorageSuite) TestMigrationsAreIdempotent() {
	// Reopening the same file re-runs every migration
	s.Require().NoError(s.storage.Close())

	store, err := Open(s.path)
	s.Require().NoError(err)
	s.storage = store
}

func (s *StorageSuite) TestSettingsSeededOnce() {
	values, err := s.storage.GetSettingValues(s.ctx)
	s.Require().NoError(err)
	s.Equal("10000", values[model.SettingStartingCredits])

	// Tuned values survive a reopen; the seed never overwrites
	s.Require().NoError(s.storage.PutSettingValues(s.ctx, map[string]string{
		model.SettingStartingCredits: "2500",
	}))
	s.Require().NoError(s.storage.Close())
	store, err := Open(s.path)
	s.Require().NoError(err)
	s.storage = store

	values, err = s.storage.GetSettingValues(s.ctx)
	s.Require().NoError(err)
	s.Equal("2500", values[model.SettingStartingCredits])
}

func (s *StorageSuite) TestCreateAccountDuplicateUsername() {
	s.createAccount("alice", false)

	err := s.storage.CreateAccount(s.ctx, &model.Account{
		Username:     "alice",
		PasswordHash: "other",
		CreatedAt:    time.Now(),
	})
	s.ErrorIs(err, model.ErrUsernameTaken)
}

func (s *StorageSuite) TestAccountTimestampsRoundTrip() {
	created := s.createAccount("alice", false)
	loginAt := time.Date(2024, 2, 3, 4, 5, 6, 789000000, time.UTC)
	s.Require().NoError(s.storage.SetLastLogin(s.ctx, created.ID, loginAt))

	account, err := s.storage.GetAccountByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.True(account.CreatedAt.Equal(created.CreatedAt))
	s.True(account.LastLogin.Equal(loginAt))
}

func (s *StorageSuite) TestZeroLastLoginStoredAsNull() {
	created := s.createAccount("alice", false)

	account, err := s.storage.GetAccountByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.True(account.LastLogin.IsZero())
}

func (s *StorageSuite) TestProfileBlobsRoundTrip() {
	account := s.createAccount("alice", false)

	profile, _ := s.storage.GetProfile(s.ctx, account.ID)
	profile.Cargo = model.JSONObject{"ore": float64(7)}
	profile.GameState = model.DecodeObject([]byte(`{"ship":{"hull":90,"fuel":50}}`))
	profile.LastActivity = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s.Require().NoError(s.storage.SaveProfile(s.ctx, profile))

	fresh, err := s.storage.GetProfile(s.ctx, account.ID)
	s.Require().NoError(err)
	s.Equal(model.JSONObject{"ore": float64(7)}, fresh.Cargo)
	ship := fresh.GameState["ship"].(map[string]any)
	s.Equal(float64(90), ship["hull"])
	s.True(fresh.LastActivity.Equal(profile.LastActivity))
}

func (s *StorageSuite) TestPatchProfileMergesHullIntoGameState() {
	account := s.createAccount("alice", false)
	profile, _ := s.storage.GetProfile(s.ctx, account.ID)
	profile.GameState = model.DecodeObject([]byte(`{"ship":{"hull":100,"fuel":80},"visited":[1]}`))
	s.Require().NoError(s.storage.SaveProfile(s.ctx, profile))

	hull := 15
	s.Require().NoError(s.storage.PatchProfile(s.ctx, account.ID, model.ProfilePatch{Hull: &hull}))

	fresh, _ := s.storage.GetProfile(s.ctx, account.ID)
	ship := fresh.GameState["ship"].(map[string]any)
	s.Equal(float64(15), ship["hull"])
	s.Equal(float64(80), ship["fuel"])
	s.Contains(fresh.GameState, "visited")
}

func (s *StorageSuite) TestResetProfilesSkipsAdmins() {
	s.createAccount("alice", false)
	s.createAccount("bob", false)
	admin := s.createAccount("root", true)

	affected, err := s.storage.ResetProfiles(s.ctx, storage.ResetValues{
		Credits:       500,
		Turns:         25,
		CurrentSector: 2,
	})
	s.Require().NoError(err)
	s.Equal(2, affected)

	adminProfile, _ := s.storage.GetProfile(s.ctx, admin.ID)
	s.Equal(int64(model.DefaultCredits), adminProfile.Credits)
}

func (s *StorageSuite) TestDeleteAccountCascades() {
	account := s.createAccount("alice", false)
	s.Require().NoError(s.storage.CreateSession(s.ctx, &model.Session{
		AccountID: account.ID,
		Token:     "tok",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now(),
	}))

	s.Require().NoError(s.storage.DeleteAccount(s.ctx, account.ID))

	_, err := s.storage.GetAccountByID(s.ctx, account.ID)
	s.ErrorIs(err, model.ErrAccountNotFound)
	_, err = s.storage.GetProfile(s.ctx, account.ID)
	s.ErrorIs(err, model.ErrProfileNotFound)
	_, err = s.storage.GetSessionByToken(s.ctx, "tok")
	s.ErrorIs(err, model.ErrInvalidToken)
}

func (s *StorageSuite) TestSessionLookup() {
	account := s.createAccount("alice", false)
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.storage.CreateSession(s.ctx, &model.Session{
		AccountID: account.ID,
		Token:     "tok",
		CreatedAt: at,
		ExpiresAt: at,
	}))

	session, err := s.storage.GetSessionByToken(s.ctx, "tok")
	s.Require().NoError(err)
	s.Equal(account.ID, session.AccountID)
	s.True(session.CreatedAt.Equal(at))

	_, err = s.storage.GetSessionByToken(s.ctx, "missing")
	s.ErrorIs(err, model.ErrInvalidToken)
}

func (s *StorageSuite) TestListPlayersOrdering() {
	a := s.createAccount("alice", false)
	b := s.createAccount("bob", false)
	s.createAccount("carol", false) // never active

	profileA, _ := s.storage.GetProfile(s.ctx, a.ID)
	profileA.LastActivity = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	s.Require().NoError(s.storage.SaveProfile(s.ctx, profileA))
	profileB, _ := s.storage.GetProfile(s.ctx, b.ID)
	profileB.LastActivity = time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
	s.Require().NoError(s.storage.SaveProfile(s.ctx, profileB))

	records, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal("bob", records[0].Account.Username)
	s.Equal("alice", records[1].Account.Username)
	s.Equal("carol", records[2].Account.Username)
}

func (s *StorageSuite) TestTimestampTextOrdersChronologically() {
	// .5s and .52s are digit-prefixes of each other; trimmed fractional
	// text would sort them backwards
	a := s.createAccount("alice", false)
	b := s.createAccount("bob", false)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	profileA, _ := s.storage.GetProfile(s.ctx, a.ID)
	profileA.LastActivity = base.Add(500 * time.Millisecond)
	s.Require().NoError(s.storage.SaveProfile(s.ctx, profileA))
	profileB, _ := s.storage.GetProfile(s.ctx, b.ID)
	profileB.LastActivity = base.Add(520 * time.Millisecond)
	s.Require().NoError(s.storage.SaveProfile(s.ctx, profileB))

	records, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal("bob", records[0].Account.Username)
	s.Equal("alice", records[1].Account.Username)

	// The activity cutoff comparison sees the same ordering
	stats, err := s.storage.Stats(s.ctx, base.Add(510*time.Millisecond))
	s.Require().NoError(err)
	s.Equal(1, stats.RecentlyActive)
}

func (s *StorageSuite) TestWorldSingleRow() {
	snapshot, err := s.storage.GetWorld(s.ctx)
	s.Require().NoError(err)
	s.Nil(snapshot)

	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.storage.ReplaceWorld(s.ctx, &model.WorldSnapshot{
		Data:      model.JSONObject{"tick": float64(1)},
		UpdatedAt: at,
	}))
	s.Require().NoError(s.storage.ReplaceWorld(s.ctx, &model.WorldSnapshot{
		Data:      model.JSONObject{"tick": float64(2)},
		UpdatedAt: at.Add(time.Minute),
	}))

	snapshot, err = s.storage.GetWorld(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.JSONObject{"tick": float64(2)}, snapshot.Data)
}

func (s *StorageSuite) TestStatsCounters() {
	alice := s.createAccount("alice", false)
	s.createAccount("root", true)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.storage.CreateSession(s.ctx, &model.Session{
		AccountID: alice.ID, Token: "t1", CreatedAt: now, ExpiresAt: now,
	}))
	s.Require().NoError(s.storage.CreateSession(s.ctx, &model.Session{
		AccountID: alice.ID, Token: "t2", CreatedAt: now, ExpiresAt: now,
	}))

	profile, _ := s.storage.GetProfile(s.ctx, alice.ID)
	profile.LastActivity = now
	s.Require().NoError(s.storage.SaveProfile(s.ctx, profile))

	stats, err := s.storage.Stats(s.ctx, now.Add(-10*time.Minute))
	s.Require().NoError(err)
	s.Equal(1, stats.TotalPlayers)
	s.Equal(1, stats.ActiveSessions)
	s.Equal(2, stats.TotalConnections)
	s.Equal(1, stats.RecentlyActive)
}
