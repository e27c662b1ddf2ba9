package schedule

import (
	"strings"
	"time"
)

// TeamMulti is the placeholder team for bye-week and unassigned defense
// entries. It is never considered locked.
const TeamMulti = "Multi"

const (
	StatusScheduled  = "SCHEDULED"
	StatusInProgress = "IN_PROGRESS"
	StatusFinal      = "FINAL"
)

// Game is one real-world NFL game in a competition week.
type Game struct {
	ID        string
	Week      int
	HomeTeam  string
	AwayTeam  string
	Kickoff   time.Time
	Status    string
	HomeScore *int
	AwayScore *int
}

func (g Game) Involves(nflTeam string) bool {
	return g.HomeTeam == nflTeam || g.AwayTeam == nflTeam
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsInProgressStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusInProgress, "LIVE", "HALFTIME", "IN_PLAY":
		return true
	default:
		return false
	}
}

func IsFinalStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinal, "FINAL_OT", "COMPLETE", "CLOSED":
		return true
	default:
		return false
	}
}
