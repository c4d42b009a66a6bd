package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/arkade-games/adastra-server/internal/api/request"
	"github.com/arkade-games/adastra-server/internal/api/response"
	"github.com/arkade-games/adastra-server/internal/model"
	"github.com/arkade-games/adastra-server/internal/services/admin"
)

// AdminHandler handles the operator endpoints
type AdminHandler struct {
	admins *admin.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admins *admin.Service) *AdminHandler {
	return &AdminHandler{
		admins: admins,
	}
}

// ListPlayers handles GET /api/admin/players
func (h *AdminHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	records, err := h.admins.ListPlayers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	players := make([]response.AdminPlayer, 0, len(records))
	for i := range records {
		players = append(players, response.AdminPlayerFromRecord(&records[i]))
	}

	response.JSON(w, http.StatusOK, response.PlayerList{Players: players})
}

// GetPlayer handles GET /api/admin/player/{username}
func (h *AdminHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	record, err := h.admins.GetPlayer(r.Context(), username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AdminPlayerFromRecord(record))
}

// UpdatePlayer handles PUT /api/admin/player/{username}
func (h *AdminHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	var req request.AdminUpdatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewValidationError("Invalid request body"))
		return
	}

	if err := h.admins.UpdatePlayer(r.Context(), username, req.Patch()); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OK)
}

// DeletePlayer handles DELETE /api/admin/player/{username}
func (h *AdminHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	if err := h.admins.DeletePlayer(r.Context(), username); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Message{
		Success: true,
		Message: fmt.Sprintf("Player %s deleted", username),
	})
}

// KickPlayer handles POST /api/admin/player/{username}/kick
func (h *AdminHandler) KickPlayer(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	if err := h.admins.KickPlayer(r.Context(), username); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Message{
		Success: true,
		Message: fmt.Sprintf("Player %s kicked", username),
	})
}

// BanPlayer handles POST /api/admin/player/{username}/ban
func (h *AdminHandler) BanPlayer(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	// Missing body or missing field both mean ban
	banned := true
	var req request.BanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Banned != nil {
		banned = *req.Banned
	}

	if err := h.admins.BanPlayer(r.Context(), username, banned); err != nil {
		WriteError(w, err)
		return
	}

	action := "banned"
	if !banned {
		action = "unbanned"
	}
	response.JSON(w, http.StatusOK, response.Message{
		Success: true,
		Message: fmt.Sprintf("Player %s %s", username, action),
	})
}

// ResetGalaxy handles POST /api/admin/reset-galaxy
func (h *AdminHandler) ResetGalaxy(w http.ResponseWriter, r *http.Request) {
	result, err := h.admins.ResetGalaxy(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ResetResponse{
		Success:      true,
		Message:      fmt.Sprintf("Reset %d players to starting values", result.PlayersReset),
		PlayersReset: result.PlayersReset,
		Settings: response.ResetSettings{
			Sector:  result.Settings.StartingSector,
			Credits: result.Settings.StartingCredits,
			Turns:   result.Settings.StartingTurns,
		},
	})
}

// GetSettings handles GET /api/admin/settings
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.admins.GetSettings(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SettingsResponse{
		Success:  true,
		Settings: response.SettingsFromModel(settings),
	})
}

// settingsKeyMap maps wire keys onto settings table keys
var settingsKeyMap = map[string]string{
	"startingSector":  model.SettingStartingSector,
	"startingCredits": model.SettingStartingCredits,
	"startingTurns":   model.SettingStartingTurns,
	"startingFuel":    model.SettingStartingFuel,
	"startingHull":    model.SettingStartingHull,
	"startingShields": model.SettingStartingShields,
}

// settingsKeyOrder fixes the reply ordering for updated keys
var settingsKeyOrder = []string{
	"startingSector",
	"startingCredits",
	"startingTurns",
	"startingFuel",
	"startingHull",
	"startingShields",
}

// UpdateSettings handles PUT /api/admin/settings. Unknown keys are ignored;
// values are stringified however they arrive.
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body) == 0 {
		WriteError(w, NewValidationError("No data provided"))
		return
	}

	values := make(map[string]string)
	updated := make([]string, 0, len(settingsKeyOrder))
	for _, apiKey := range settingsKeyOrder {
		raw, ok := body[apiKey]
		if !ok {
			continue
		}
		values[settingsKeyMap[apiKey]] = stringifySetting(raw)
		updated = append(updated, apiKey)
	}

	if _, err := h.admins.UpdateSettings(r.Context(), values); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SettingsUpdateResponse{
		Success: true,
		Message: fmt.Sprintf("Updated settings: %s", strings.Join(updated, ", ")),
		Updated: updated,
	})
}

// stringifySetting renders a JSON value the way the settings table stores
// it; whole floats lose their fractional part so "100" round-trips
func stringifySetting(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%v", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admins.Stats(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatsFromModel(stats))
}
