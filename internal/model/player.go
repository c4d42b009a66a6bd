package model

import "time"

// Profile is the game-specific record owned 1:1 by an Account.
// Cargo, Equipment and GameState are opaque to the server: they are stored
// and returned as parsed JSON, never interpreted except for the admin
// hull/fuel patch path (see JSONObject.SetShipField).
type Profile struct {
	AccountID     AccountID
	PilotName     string
	ShipName      string
	ShipType      string
	ShipVariant   int
	Credits       int64
	Turns         int
	CurrentSector int
	Cargo         JSONObject
	Equipment     JSONObject
	GameState     JSONObject
	LastActivity  time.Time // zero until the first sync
}

// Starting values used when a profile is created without explicit fields
const (
	DefaultPilotName     = "Unknown"
	DefaultShipName      = "Scout"
	DefaultShipType      = "scout"
	DefaultShipVariant   = 1
	DefaultCredits       = 10000
	DefaultTurns         = 50
	DefaultCurrentSector = 1
)

// NewProfile returns a profile populated with the documented defaults
func NewProfile(accountID AccountID) *Profile {
	return &Profile{
		AccountID:     accountID,
		PilotName:     DefaultPilotName,
		ShipName:      DefaultShipName,
		ShipType:      DefaultShipType,
		ShipVariant:   DefaultShipVariant,
		Credits:       DefaultCredits,
		Turns:         DefaultTurns,
		CurrentSector: DefaultCurrentSector,
		Cargo:         JSONObject{},
		Equipment:     JSONObject{},
		GameState:     JSONObject{},
	}
}

// PlayerRecord joins a profile with its owning account for read projections.
// Admin listings use named fields rather than row positions.
type PlayerRecord struct {
	Profile Profile
	Account Account
}

// ProfilePatch is a partial update applied by the admin surface.
// Nil pointers mean "field not present in the request".
//
// Hull and Fuel are not profile columns: they merge into the ship object
// nested in GameState. A wholesale GameState replacement only applies when
// neither Hull nor Fuel is present; the two paths never mix.
type ProfilePatch struct {
	PilotName     *string
	ShipName      *string
	ShipType      *string
	ShipVariant   *int
	Credits       *int64
	Turns         *int
	CurrentSector *int
	Hull          *int
	Fuel          *int
	GameState     JSONObject
}

// IsZero reports whether the patch carries no fields at all
func (p ProfilePatch) IsZero() bool {
	return p.PilotName == nil && p.ShipName == nil && p.ShipType == nil &&
		p.ShipVariant == nil && p.Credits == nil && p.Turns == nil &&
		p.CurrentSector == nil && p.Hull == nil && p.Fuel == nil &&
		p.GameState == nil
}

// Apply mutates the profile in place according to the patch rules
func (p ProfilePatch) Apply(profile *Profile) {
	if p.PilotName != nil {
		profile.PilotName = *p.PilotName
	}
	if p.ShipName != nil {
		profile.ShipName = *p.ShipName
	}
	if p.ShipType != nil {
		profile.ShipType = *p.ShipType
	}
	if p.ShipVariant != nil {
		profile.ShipVariant = *p.ShipVariant
	}
	if p.Credits != nil {
		profile.Credits = *p.Credits
	}
	if p.Turns != nil {
		profile.Turns = *p.Turns
	}
	if p.CurrentSector != nil {
		profile.CurrentSector = *p.CurrentSector
	}

	switch {
	case p.Hull != nil || p.Fuel != nil:
		// Merge into game_state.ship, preserving every other key
		if profile.GameState == nil {
			profile.GameState = JSONObject{}
		}
		if p.Hull != nil {
			profile.GameState.SetShipField("hull", *p.Hull)
		}
		if p.Fuel != nil {
			profile.GameState.SetShipField("fuel", *p.Fuel)
		}
	case p.GameState != nil:
		profile.GameState = p.GameState
	}
}
