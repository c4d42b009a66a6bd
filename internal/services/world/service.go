// Package world owns the singleton multiplayer snapshot. The blob is
// opaque: it is stored and returned verbatim, never validated.
package world

import (
	"context"
	"log/slog"

	"github.com/arkade-games/adastra-server/internal/dependencies/clock"
	"github.com/arkade-games/adastra-server/internal/model"
	"github.com/arkade-games/adastra-server/internal/storage"
)

// Service handles the shared world snapshot
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new world service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// Get returns the latest snapshot data, or an empty object if none has ever
// been written
func (s *Service) Get(ctx context.Context) (model.JSONObject, error) {
	snapshot, err := s.storage.GetWorld(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return model.JSONObject{}, nil
	}
	return snapshot.Data, nil
}

// Replace overwrites the snapshot wholesale and stamps updated_at
func (s *Service) Replace(ctx context.Context, data model.JSONObject) error {
	if data == nil {
		data = model.JSONObject{}
	}
	return s.storage.ReplaceWorld(ctx, &model.WorldSnapshot{
		Data:      data,
		UpdatedAt: s.clock.Now(),
	})
}
