package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/arkade-games/adastra-server/internal/dependencies/clock"
	"github.com/arkade-games/adastra-server/internal/dependencies/random"
	"github.com/arkade-games/adastra-server/internal/services/account"
	"github.com/arkade-games/adastra-server/internal/services/admin"
	"github.com/arkade-games/adastra-server/internal/services/player"
	"github.com/arkade-games/adastra-server/internal/services/session"
	"github.com/arkade-games/adastra-server/internal/services/world"
	"github.com/arkade-games/adastra-server/internal/storage"
	"github.com/arkade-games/adastra-server/internal/storage/memory"
	sqlitestorage "github.com/arkade-games/adastra-server/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AccountService *account.Service
	SessionService *session.Service
	PlayerService  *player.Service
	WorldService   *world.Service
	AdminService   *admin.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// DBPath is the SQLite database file (required if StorageType is "sqlite")
	DBPath string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeSQLite:
		if cfg.DBPath == "" {
			return nil, errors.New("DBPath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlitestorage.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'sqlite'")
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	accountService := account.New(store, clk, logger)
	sessionService := session.New(store, clk, rnd, logger)
	playerService := player.New(store, clk, logger)
	worldService := world.New(store, clk, logger)
	adminService := admin.New(store, accountService, sessionService, clk, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		AccountService: accountService,
		SessionService: sessionService,
		PlayerService:  playerService,
		WorldService:   worldService,
		AdminService:   adminService,
	}
}
