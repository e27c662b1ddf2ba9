package player

import "fmt"

// Position represents the NFL position groups recognized by the competition.
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDEF Position = "DEF"
)

var AllPositions = map[Position]struct{}{
	PositionQB:  {},
	PositionRB:  {},
	PositionWR:  {},
	PositionTE:  {},
	PositionK:   {},
	PositionDEF: {},
}

// Player is a real NFL player (or team defense) shared across fantasy rosters.
// Immutable once created.
type Player struct {
	ID       string
	Name     string
	Position Position
	NFLTeam  string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.NFLTeam == "" {
		return fmt.Errorf("player nfl team is required")
	}

	return nil
}
