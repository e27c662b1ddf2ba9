package stats

import "time"

// PlayerGameStats is one player's box score for one week. Upserted by
// ingestion; read-only to the scoring engine.
type PlayerGameStats struct {
	PlayerID string
	Week     int

	PassCompletions int
	PassAttempts    int
	PassYards       int
	PassTDs         int
	Interceptions   int
	PassTwoPoint    int

	RushYards    int
	RushTDs      int
	RushTwoPoint int

	Receptions  int
	RecYards    int
	RecTDs      int
	RecTwoPoint int

	FumblesLost int

	FGMadeUnder53   int
	FGMade53to54    int
	FGMade55Plus    int
	FGMissedUnder40 int
	FGMissed40Plus  int
	FGLongest       int
	XPMade          int
	XPMissed        int

	UpdatedAt time.Time
}

// DefenseGameStats is one team defense's box score for one week.
type DefenseGameStats struct {
	NFLTeam string
	Week    int

	PointsAllowed    int
	YardsAllowed     int
	Sacks            int
	Interceptions    int
	FumbleRecoveries int
	BlockedKicks     int
	DefensiveTDs     int
	ReturnTDs        int
	Safeties         int

	UpdatedAt time.Time
}

// Game event types. TD events carry the play's yardage; bonus events carry
// a verbatim point value entered by a league operator.
const (
	EventPassingTD   = "passing_td"
	EventRushingTD   = "rushing_td"
	EventReceivingTD = "receiving_td"
	EventBonus       = "bonus"
)

// GameEvent is an additive per-game bonus trigger. EntityID is a player ID,
// or an NFL team abbreviation for defense bonuses.
type GameEvent struct {
	ID       string
	Week     int
	EntityID string
	Type     string
	Yards    int
	Points   float64
	Note     string
}
