package request

import "github.com/arkade-games/adastra-server/internal/model"

// RegisterRequest is the request body for creating an account
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	PilotName string `json:"pilotName"`
	ShipName  string `json:"shipName"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PlayerSyncRequest is the request body for the client profile sync.
// Pointer fields distinguish "absent" from zero so the documented defaults
// only apply to fields the client did not send.
type PlayerSyncRequest struct {
	PilotName     string           `json:"pilotName"`
	ShipName      string           `json:"shipName"`
	ShipType      string           `json:"shipType"`
	ShipVariant   *int             `json:"shipVariant"`
	Credits       *int64           `json:"credits"`
	Turns         *int             `json:"turns"`
	CurrentSector *int             `json:"currentSector"`
	Cargo         model.JSONObject `json:"cargo"`
	Equipment     model.JSONObject `json:"equipment"`
	GameState     model.JSONObject `json:"gameState"`
}

// AdminUpdatePlayerRequest is the partial-update body for the admin player
// edit. hull and fuel are not profile columns: they merge into the ship
// object nested in game state, and take precedence over a wholesale
// gameState replacement.
type AdminUpdatePlayerRequest struct {
	PilotName     *string          `json:"pilotName"`
	ShipName      *string          `json:"shipName"`
	ShipType      *string          `json:"shipType"`
	ShipVariant   *int             `json:"shipVariant"`
	Credits       *int64           `json:"credits"`
	Turns         *int             `json:"turns"`
	CurrentSector *int             `json:"currentSector"`
	Hull          *int             `json:"hull"`
	Fuel          *int             `json:"fuel"`
	GameState     model.JSONObject `json:"gameState"`
}

// Patch converts the request into a model patch
func (r AdminUpdatePlayerRequest) Patch() model.ProfilePatch {
	return model.ProfilePatch{
		PilotName:     r.PilotName,
		ShipName:      r.ShipName,
		ShipType:      r.ShipType,
		ShipVariant:   r.ShipVariant,
		Credits:       r.Credits,
		Turns:         r.Turns,
		CurrentSector: r.CurrentSector,
		Hull:          r.Hull,
		Fuel:          r.Fuel,
		GameState:     r.GameState,
	}
}

// BanRequest is the request body for banning or unbanning a player.
// A missing banned field defaults to true.
type BanRequest struct {
	Banned *bool `json:"banned"`
}
