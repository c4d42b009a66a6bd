package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arkade-games/adastra-server/internal/api/handler"
	"github.com/arkade-games/adastra-server/internal/api/middleware"
	"github.com/arkade-games/adastra-server/internal/services/account"
	"github.com/arkade-games/adastra-server/internal/services/admin"
	"github.com/arkade-games/adastra-server/internal/services/player"
	"github.com/arkade-games/adastra-server/internal/services/session"
	"github.com/arkade-games/adastra-server/internal/services/world"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AccountService *account.Service
	SessionService *session.Service
	PlayerService  *player.Service
	WorldService   *world.Service
	AdminService   *admin.Service
	SysopToken     *session.SysopToken
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(cfg.AccountService, cfg.SessionService)
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	worldHandler := handler.NewWorldHandler(cfg.WorldService)
	adminHandler := handler.NewAdminHandler(cfg.AdminService)

	authMiddleware := middleware.Auth(cfg.SessionService)
	adminMiddleware := middleware.Admin(cfg.SessionService, cfg.SysopToken)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no token required)
	api.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)

	// Profile routes (bearer token required)
	playerRoutes := api.PathPrefix("/player").Subrouter()
	playerRoutes.Use(authMiddleware)
	playerRoutes.HandleFunc("", playerHandler.Get).Methods(http.MethodGet)
	playerRoutes.HandleFunc("", playerHandler.Sync).Methods(http.MethodPut)

	// Shared world snapshot (unauthenticated)
	api.HandleFunc("/multiplayer", worldHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/multiplayer", worldHandler.Replace).Methods(http.MethodPut)

	// Operator routes (admin bearer token or sysop token)
	adminRoutes := api.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(adminMiddleware)
	adminRoutes.HandleFunc("/players", adminHandler.ListPlayers).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/player/{username}", adminHandler.GetPlayer).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/player/{username}", adminHandler.UpdatePlayer).Methods(http.MethodPut)
	adminRoutes.HandleFunc("/player/{username}", adminHandler.DeletePlayer).Methods(http.MethodDelete)
	adminRoutes.HandleFunc("/player/{username}/kick", adminHandler.KickPlayer).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/player/{username}/ban", adminHandler.BanPlayer).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/reset-galaxy", adminHandler.ResetGalaxy).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/settings", adminHandler.GetSettings).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/settings", adminHandler.UpdateSettings).Methods(http.MethodPut)
	adminRoutes.HandleFunc("/stats", adminHandler.Stats).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
