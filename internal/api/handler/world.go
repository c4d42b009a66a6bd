package handler

import (
	"encoding/json"
	"net/http"

	"github.com/arkade-games/adastra-server/internal/api/response"
	"github.com/arkade-games/adastra-server/internal/model"
	"github.com/arkade-games/adastra-server/internal/services/world"
)

// WorldHandler handles the shared multiplayer snapshot endpoints
type WorldHandler struct {
	worlds *world.Service
}

// NewWorldHandler creates a new world handler
func NewWorldHandler(worlds *world.Service) *WorldHandler {
	return &WorldHandler{
		worlds: worlds,
	}
}

// Get handles GET /api/multiplayer
func (h *WorldHandler) Get(w http.ResponseWriter, r *http.Request) {
	data, err := h.worlds.Get(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, data)
}

// Replace handles PUT /api/multiplayer
func (h *WorldHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var data model.JSONObject
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		WriteError(w, NewValidationError("Invalid request body"))
		return
	}

	if err := h.worlds.Replace(r.Context(), data); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OK)
}
