package handler

import (
	"encoding/json"
	"net/http"

	"github.com/arkade-games/adastra-server/internal/api/middleware"
	"github.com/arkade-games/adastra-server/internal/api/request"
	"github.com/arkade-games/adastra-server/internal/api/response"
	"github.com/arkade-games/adastra-server/internal/model"
	"github.com/arkade-games/adastra-server/internal/services/player"
)

// PlayerHandler handles the authenticated profile endpoints
type PlayerHandler struct {
	players *player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players *player.Service) *PlayerHandler {
	return &PlayerHandler{
		players: players,
	}
}

// Get handles GET /api/player
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	acct := middleware.MustGetAccount(r.Context())

	profile, err := h.players.Get(r.Context(), acct.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	record := &model.PlayerRecord{Profile: *profile, Account: *acct}
	response.JSON(w, http.StatusOK, response.PlayerFromRecord(record))
}

// Sync handles PUT /api/player. The body replaces the profile wholesale;
// absent numeric fields fall back to the documented starting values rather
// than zero.
func (h *PlayerHandler) Sync(w http.ResponseWriter, r *http.Request) {
	acct := middleware.MustGetAccount(r.Context())

	var req request.PlayerSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewValidationError("Invalid request body"))
		return
	}

	fields := player.SyncFields{
		PilotName:     req.PilotName,
		ShipName:      req.ShipName,
		ShipType:      req.ShipType,
		ShipVariant:   intOr(req.ShipVariant, model.DefaultShipVariant),
		Credits:       int64Or(req.Credits, model.DefaultCredits),
		Turns:         intOr(req.Turns, model.DefaultTurns),
		CurrentSector: intOr(req.CurrentSector, model.DefaultCurrentSector),
		Cargo:         req.Cargo,
		Equipment:     req.Equipment,
		GameState:     req.GameState,
	}

	if err := h.players.Upsert(r.Context(), acct.ID, fields); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OK)
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func int64Or(v *int64, fallback int64) int64 {
	if v == nil {
		return fallback
	}
	return *v
}
