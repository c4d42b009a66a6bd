package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/arkade-games/adastra-server/internal/dependencies/mocks"
	"github.com/arkade-games/adastra-server/internal/model"
	"github.com/arkade-games/adastra-server/internal/storage/memory"
	"github.com/arkade-games/adastra-server/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context

	accountID model.AccountID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()

	account := &model.Account{Username: "alice"}
	s.Require().NoError(s.storage.CreateAccount(s.ctx, account))
	s.Require().NoError(s.storage.SaveProfile(s.ctx, model.NewProfile(account.ID)))
	s.accountID = account.ID
}

// Get tests

func (s *ServiceSuite) TestGetReturnsProfile() {
	profile, err := s.service.Get(s.ctx, s.accountID)
	s.Require().NoError(err)
	s.Equal(model.DefaultPilotName, profile.PilotName)
}

func (s *ServiceSuite) TestGetUnknownAccount() {
	_, err := s.service.Get(s.ctx, 999)
	s.ErrorIs(err, model.ErrProfileNotFound)
}

// Upsert tests

func (s *ServiceSuite) TestUpsertOverwritesProfile() {
	err := s.service.Upsert(s.ctx, s.accountID, SyncFields{
		PilotName:     "Ace",
		ShipName:      "Nebula",
		ShipType:      "freighter",
		ShipVariant:   2,
		Credits:       5000,
		Turns:         30,
		CurrentSector: 12,
		Cargo:         model.JSONObject{"ore": float64(4)},
		GameState:     model.JSONObject{"ship": map[string]any{"hull": float64(90)}},
	})
	s.Require().NoError(err)

	profile, _ := s.service.Get(s.ctx, s.accountID)
	s.Equal("Ace", profile.PilotName)
	s.Equal("freighter", profile.ShipType)
	s.Equal(2, profile.ShipVariant)
	s.Equal(int64(5000), profile.Credits)
	s.Equal(12, profile.CurrentSector)
	s.Equal(model.JSONObject{"ore": float64(4)}, profile.Cargo)
}

func (s *ServiceSuite) TestUpsertStampsLastActivity() {
	s.clock.Advance(30 * time.Minute)

	s.Require().NoError(s.service.Upsert(s.ctx, s.accountID, SyncFields{}))

	profile, _ := s.service.Get(s.ctx, s.accountID)
	s.Equal(s.clock.Now(), profile.LastActivity)
}

func (s *ServiceSuite) TestUpsertDefaultsEmptyFields() {
	s.Require().NoError(s.service.Upsert(s.ctx, s.accountID, SyncFields{}))

	profile, _ := s.service.Get(s.ctx, s.accountID)
	s.Equal(model.DefaultPilotName, profile.PilotName)
	s.Equal(model.DefaultShipName, profile.ShipName)
	s.Equal(model.DefaultShipType, profile.ShipType)
	s.Equal(model.DefaultShipVariant, profile.ShipVariant)
	s.NotNil(profile.Cargo)
	s.NotNil(profile.Equipment)
	s.NotNil(profile.GameState)
}

func (s *ServiceSuite) TestUpsertCreatesMissingProfile() {
	account := &model.Account{Username: "bob"}
	s.Require().NoError(s.storage.CreateAccount(s.ctx, account))

	err := s.service.Upsert(s.ctx, account.ID, SyncFields{PilotName: "Bob"})
	s.Require().NoError(err)

	profile, err := s.service.Get(s.ctx, account.ID)
	s.Require().NoError(err)
	s.Equal("Bob", profile.PilotName)
}
