package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case PlayerList:
		o.printPlayerList(v)
	case ActionResult:
		o.printActionResult(v)
	case ResetResult:
		o.printResetResult(v)
	case SettingsResult:
		o.printSettings(v.Settings)
	case SettingsUpdateResult:
		o.printActionResult(ActionResult{Success: v.Success, Message: v.Message})
	case Stats:
		o.printStats(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player is a player row as seen by the operator API
type Player struct {
	Username      string         `json:"username"`
	PilotName     string         `json:"pilotName"`
	ShipName      string         `json:"shipName"`
	ShipType      string         `json:"shipType"`
	ShipVariant   int            `json:"shipVariant"`
	Credits       int64          `json:"credits"`
	Turns         int            `json:"turns"`
	CurrentSector int            `json:"currentSector"`
	Cargo         map[string]any `json:"cargo"`
	Equipment     map[string]any `json:"equipment"`
	GameState     map[string]any `json:"gameState"`
	LastActivity  *string        `json:"lastActivity"`
	LastLogin     *string        `json:"lastLogin"`
	CreatedAt     *string        `json:"createdAt"`
	IsAdmin       bool           `json:"isAdmin"`
	IsBanned      bool           `json:"isBanned"`
}

// PlayerList wraps the listing response
type PlayerList struct {
	Players []Player `json:"players"`
}

// ActionResult is a success/message reply
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ResetResult is the galaxy reset reply
type ResetResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	PlayersReset int    `json:"playersReset"`
	Settings     struct {
		Sector  int `json:"sector"`
		Credits int `json:"credits"`
		Turns   int `json:"turns"`
	} `json:"settings"`
}

// Settings is the tunables object
type Settings struct {
	StartingSector  int `json:"startingSector"`
	StartingCredits int `json:"startingCredits"`
	StartingTurns   int `json:"startingTurns"`
	StartingFuel    int `json:"startingFuel"`
	StartingHull    int `json:"startingHull"`
	StartingShields int `json:"startingShields"`
}

// SettingsResult wraps the settings read
type SettingsResult struct {
	Success  bool     `json:"success"`
	Settings Settings `json:"settings"`
}

// SettingsUpdateResult reports an update
type SettingsUpdateResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Updated []string `json:"updated"`
}

// Stats is the dashboard counters reply
type Stats struct {
	TotalPlayers     int `json:"totalPlayers"`
	ActiveSessions   int `json:"activeSessions"`
	RecentlyActive   int `json:"recentlyActive"`
	TotalConnections int `json:"totalConnections"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s\n", p.Username)
	fmt.Printf("Pilot: %s\n", p.PilotName)
	fmt.Printf("Ship: %s (%s, variant %d)\n", p.ShipName, p.ShipType, p.ShipVariant)
	fmt.Printf("Credits: %d\n", p.Credits)
	fmt.Printf("Turns: %d\n", p.Turns)
	fmt.Printf("Sector: %d\n", p.CurrentSector)
	if p.LastActivity != nil {
		fmt.Printf("Last Activity: %s\n", *p.LastActivity)
	}
	if p.LastLogin != nil {
		fmt.Printf("Last Login: %s\n", *p.LastLogin)
	}
	if p.CreatedAt != nil {
		fmt.Printf("Created: %s\n", *p.CreatedAt)
	}
	if p.IsAdmin {
		fmt.Println("Admin: yes")
	}
	if p.IsBanned {
		fmt.Println("Banned: yes")
	}
}

func (o *Output) printPlayerList(l PlayerList) {
	fmt.Printf("Players (%d):\n", len(l.Players))
	for _, p := range l.Players {
		flags := ""
		if p.IsAdmin {
			flags += " [admin]"
		}
		if p.IsBanned {
			flags += " [banned]"
		}
		fmt.Printf("  - %s (%s) - sector %d, %d credits, %d turns%s\n",
			p.Username, p.PilotName, p.CurrentSector, p.Credits, p.Turns, flags)
	}
}

func (o *Output) printActionResult(r ActionResult) {
	if r.Message != "" {
		fmt.Println(r.Message)
	} else if r.Success {
		fmt.Println("OK")
	}
}

func (o *Output) printResetResult(r ResetResult) {
	fmt.Println(r.Message)
	fmt.Printf("Starting sector: %d\n", r.Settings.Sector)
	fmt.Printf("Starting credits: %d\n", r.Settings.Credits)
	fmt.Printf("Starting turns: %d\n", r.Settings.Turns)
}

func (o *Output) printSettings(s Settings) {
	fmt.Printf("Starting Sector: %d\n", s.StartingSector)
	fmt.Printf("Starting Credits: %d\n", s.StartingCredits)
	fmt.Printf("Starting Turns: %d\n", s.StartingTurns)
	fmt.Printf("Starting Fuel: %d\n", s.StartingFuel)
	fmt.Printf("Starting Hull: %d\n", s.StartingHull)
	fmt.Printf("Starting Shields: %d\n", s.StartingShields)
}

func (o *Output) printStats(s Stats) {
	fmt.Printf("Total Players: %d\n", s.TotalPlayers)
	fmt.Printf("Active Sessions: %d\n", s.ActiveSessions)
	fmt.Printf("Recently Active: %d\n", s.RecentlyActive)
	fmt.Printf("Total Connections: %d\n", s.TotalConnections)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
