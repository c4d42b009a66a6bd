package response

import (
	"time"

	"github.com/arkade-games/adastra-server/internal/model"
)

// Success is the bare {success: true} envelope
type Success struct {
	Success bool `json:"success"`
}

// OK is the standard success envelope
var OK = Success{Success: true}

// Message is the success envelope carrying a human-readable message
type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AuthResponse is the body returned by register and login
type AuthResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	Username string `json:"username"`
	IsAdmin  *bool  `json:"is_admin,omitempty"` // login only
}

// Player is the profile as seen by its owner
type Player struct {
	Username      string           `json:"username"`
	PilotName     string           `json:"pilotName"`
	ShipName      string           `json:"shipName"`
	ShipType      string           `json:"shipType"`
	ShipVariant   int              `json:"shipVariant"`
	Credits       int64            `json:"credits"`
	Turns         int              `json:"turns"`
	CurrentSector int              `json:"currentSector"`
	Cargo         model.JSONObject `json:"cargo"`
	Equipment     model.JSONObject `json:"equipment"`
	GameState     model.JSONObject `json:"gameState"`
	LastActivity  *string          `json:"lastActivity"`
	IsAdmin       bool             `json:"is_admin"`
}

// PlayerFromRecord converts a joined record into the owner-facing shape
func PlayerFromRecord(r *model.PlayerRecord) Player {
	return Player{
		Username:      r.Account.Username,
		PilotName:     r.Profile.PilotName,
		ShipName:      r.Profile.ShipName,
		ShipType:      r.Profile.ShipType,
		ShipVariant:   r.Profile.ShipVariant,
		Credits:       r.Profile.Credits,
		Turns:         r.Profile.Turns,
		CurrentSector: r.Profile.CurrentSector,
		Cargo:         r.Profile.Cargo,
		Equipment:     r.Profile.Equipment,
		GameState:     r.Profile.GameState,
		LastActivity:  timePtr(r.Profile.LastActivity),
		IsAdmin:       r.Account.IsAdmin,
	}
}

// AdminPlayer is the admin-facing projection: the owner shape plus the
// account audit fields
type AdminPlayer struct {
	Username      string           `json:"username"`
	PilotName     string           `json:"pilotName"`
	ShipName      string           `json:"shipName"`
	ShipType      string           `json:"shipType"`
	ShipVariant   int              `json:"shipVariant"`
	Credits       int64            `json:"credits"`
	Turns         int              `json:"turns"`
	CurrentSector int              `json:"currentSector"`
	Cargo         model.JSONObject `json:"cargo"`
	Equipment     model.JSONObject `json:"equipment"`
	GameState     model.JSONObject `json:"gameState"`
	LastActivity  *string          `json:"lastActivity"`
	LastLogin     *string          `json:"lastLogin"`
	CreatedAt     *string          `json:"createdAt"`
	IsAdmin       bool             `json:"isAdmin"`
	IsBanned      bool             `json:"isBanned"`
}

// AdminPlayerFromRecord converts a joined record into the admin projection
func AdminPlayerFromRecord(r *model.PlayerRecord) AdminPlayer {
	return AdminPlayer{
		Username:      r.Account.Username,
		PilotName:     r.Profile.PilotName,
		ShipName:      r.Profile.ShipName,
		ShipType:      r.Profile.ShipType,
		ShipVariant:   r.Profile.ShipVariant,
		Credits:       r.Profile.Credits,
		Turns:         r.Profile.Turns,
		CurrentSector: r.Profile.CurrentSector,
		Cargo:         r.Profile.Cargo,
		Equipment:     r.Profile.Equipment,
		GameState:     r.Profile.GameState,
		LastActivity:  timePtr(r.Profile.LastActivity),
		LastLogin:     timePtr(r.Account.LastLogin),
		CreatedAt:     timePtr(r.Account.CreatedAt),
		IsAdmin:       r.Account.IsAdmin,
		IsBanned:      r.Account.IsBanned,
	}
}

// PlayerList wraps the admin listing
type PlayerList struct {
	Players []AdminPlayer `json:"players"`
}

// Settings is the camelCase settings object on the wire
type Settings struct {
	StartingSector  int `json:"startingSector"`
	StartingCredits int `json:"startingCredits"`
	StartingTurns   int `json:"startingTurns"`
	StartingFuel    int `json:"startingFuel"`
	StartingHull    int `json:"startingHull"`
	StartingShields int `json:"startingShields"`
}

// SettingsFromModel converts model.Settings
func SettingsFromModel(s model.Settings) Settings {
	return Settings{
		StartingSector:  s.StartingSector,
		StartingCredits: s.StartingCredits,
		StartingTurns:   s.StartingTurns,
		StartingFuel:    s.StartingFuel,
		StartingHull:    s.StartingHull,
		StartingShields: s.StartingShields,
	}
}

// SettingsResponse is the body of the settings read
type SettingsResponse struct {
	Success  bool     `json:"success"`
	Settings Settings `json:"settings"`
}

// SettingsUpdateResponse reports which keys an update touched
type SettingsUpdateResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Updated []string `json:"updated"`
}

// ResetSettings is the starting-value summary attached to a reset reply
type ResetSettings struct {
	Sector  int `json:"sector"`
	Credits int `json:"credits"`
	Turns   int `json:"turns"`
}

// ResetResponse is the body of a galaxy reset
type ResetResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	PlayersReset int           `json:"playersReset"`
	Settings     ResetSettings `json:"settings"`
}

// Stats is the dashboard counters object
type Stats struct {
	TotalPlayers     int `json:"totalPlayers"`
	ActiveSessions   int `json:"activeSessions"`
	RecentlyActive   int `json:"recentlyActive"`
	TotalConnections int `json:"totalConnections"`
}

// StatsFromModel converts model.Stats
func StatsFromModel(s model.Stats) Stats {
	return Stats{
		TotalPlayers:     s.TotalPlayers,
		ActiveSessions:   s.ActiveSessions,
		RecentlyActive:   s.RecentlyActive,
		TotalConnections: s.TotalConnections,
	}
}

// timePtr renders a timestamp as RFC3339Nano, or null for the zero time
func timePtr(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339Nano)
	return &s
}
