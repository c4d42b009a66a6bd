package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/arkade-games/adastra-server/internal/dependencies/mocks"
	"github.com/arkade-games/adastra-server/internal/dependencies/random"
	"github.com/arkade-games/adastra-server/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// MockClock controls time in tests. Randomness stays real so issued
	// session tokens never collide.
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with a controllable clock
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(store, mockClock, random.New(), logger)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
