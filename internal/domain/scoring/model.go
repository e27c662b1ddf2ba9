package scoring

import (
	"time"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/player"
)

// LineItem is one labeled point contribution in a score breakdown.
type LineItem struct {
	Category string  `json:"category"`
	Stat     string  `json:"stat"`
	Value    float64 `json:"value"`
	Points   float64 `json:"points"`
}

// PlayerScore is the computed weekly result for one roster entry. Derived
// data: always recomputable from stats + rules + lineup, safe to overwrite.
type PlayerScore struct {
	Week           int
	TeamID         string
	RosterPlayerID string
	PlayerID       string
	PlayerName     string
	Position       player.Position
	NFLTeam        string
	IsStarter      bool
	Points         float64
	Breakdown      []LineItem
	CalculatedAt   time.Time
}

// TeamScore aggregates a team's players for one week.
type TeamScore struct {
	Week          int
	TeamID        string
	TeamName      string
	StarterPoints float64
	BenchPoints   float64
	TotalPoints   float64
	Players       []PlayerScore
	CalculatedAt  time.Time
}
