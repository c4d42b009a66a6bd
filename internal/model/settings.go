package model

import "strconv"

// Settings are the admin-tunable starting values consumed by a galaxy reset.
// They are stored as string key/value rows; exactly six keys are known and
// unknown keys are ignored on read.
type Settings struct {
	StartingSector  int
	StartingCredits int
	StartingTurns   int
	StartingFuel    int
	StartingHull    int
	StartingShields int
}

// Storage keys for the six settings
const (
	SettingStartingSector  = "starting_sector"
	SettingStartingCredits = "starting_credits"
	SettingStartingTurns   = "starting_turns"
	SettingStartingFuel    = "starting_fuel"
	SettingStartingHull    = "starting_hull"
	SettingStartingShields = "starting_shields"
)

// DefaultSettings returns the hard-coded fallbacks used for any missing key
func DefaultSettings() Settings {
	return Settings{
		StartingSector:  1,
		StartingCredits: 10000,
		StartingTurns:   50,
		StartingFuel:    100,
		StartingHull:    100,
		StartingShields: 100,
	}
}

// SettingsFromValues builds Settings from raw key/value rows, falling back
// to the defaults for keys that are missing or fail to parse
func SettingsFromValues(values map[string]string) Settings {
	s := DefaultSettings()
	assign := func(key string, dst *int) {
		if raw, ok := values[key]; ok {
			if n, err := strconv.Atoi(raw); err == nil {
				*dst = n
			}
		}
	}
	assign(SettingStartingSector, &s.StartingSector)
	assign(SettingStartingCredits, &s.StartingCredits)
	assign(SettingStartingTurns, &s.StartingTurns)
	assign(SettingStartingFuel, &s.StartingFuel)
	assign(SettingStartingHull, &s.StartingHull)
	assign(SettingStartingShields, &s.StartingShields)
	return s
}

// Values returns the string-encoded rows for every known key
func (s Settings) Values() map[string]string {
	return map[string]string{
		SettingStartingSector:  strconv.Itoa(s.StartingSector),
		SettingStartingCredits: strconv.Itoa(s.StartingCredits),
		SettingStartingTurns:   strconv.Itoa(s.StartingTurns),
		SettingStartingFuel:    strconv.Itoa(s.StartingFuel),
		SettingStartingHull:    strconv.Itoa(s.StartingHull),
		SettingStartingShields: strconv.Itoa(s.StartingShields),
	}
}
