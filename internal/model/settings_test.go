package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingsFromValuesParsesKnownKeys(t *testing.T) {
	s := SettingsFromValues(map[string]string{
		"starting_sector":  "5",
		"starting_credits": "2500",
		"starting_turns":   "75",
	})

	assert.Equal(t, 5, s.StartingSector)
	assert.Equal(t, 2500, s.StartingCredits)
	assert.Equal(t, 75, s.StartingTurns)
	// Missing keys fall back to defaults
	assert.Equal(t, 100, s.StartingFuel)
	assert.Equal(t, 100, s.StartingHull)
	assert.Equal(t, 100, s.StartingShields)
}

func TestSettingsFromValuesIgnoresUnparseable(t *testing.T) {
	s := SettingsFromValues(map[string]string{
		"starting_credits": "not-a-number",
	})
	assert.Equal(t, 10000, s.StartingCredits)
}

func TestSettingsFromValuesIgnoresUnknownKeys(t *testing.T) {
	s := SettingsFromValues(map[string]string{
		"max_players": "64",
	})
	assert.Equal(t, DefaultSettings(), s)
}

func TestSettingsValuesRoundTrip(t *testing.T) {
	s := Settings{
		StartingSector:  3,
		StartingCredits: 500,
		StartingTurns:   20,
		StartingFuel:    90,
		StartingHull:    80,
		StartingShields: 70,
	}
	assert.Equal(t, s, SettingsFromValues(s.Values()))
}
