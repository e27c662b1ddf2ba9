package httpapi

import (
	"net/http"
	"time"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/scoring"
)

type lineItemDTO struct {
	Category string  `json:"category"`
	Stat     string  `json:"stat"`
	Value    float64 `json:"value"`
	Points   float64 `json:"points"`
}

type playerScoreDTO struct {
	RosterPlayerID string        `json:"rosterPlayerId"`
	PlayerID       string        `json:"playerId"`
	PlayerName     string        `json:"playerName"`
	Position       string        `json:"position"`
	NFLTeam        string        `json:"nflTeam"`
	IsStarter      bool          `json:"isStarter"`
	Points         float64       `json:"points"`
	Breakdown      []lineItemDTO `json:"breakdown,omitempty"`
}

type teamScoreDTO struct {
	Week          int              `json:"week"`
	TeamID        string           `json:"teamId"`
	TeamName      string           `json:"teamName"`
	StarterPoints float64          `json:"starterPoints"`
	BenchPoints   float64          `json:"benchPoints"`
	TotalPoints   float64          `json:"totalPoints"`
	Players       []playerScoreDTO `json:"players"`
	CalculatedAt  *time.Time       `json:"calculatedAt,omitempty"`
}

func (h *Handler) ComputeWeekScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ComputeWeekScores")
	defer span.End()

	week, err := weekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	scores, err := h.scoringService.ComputeTeamScores(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "compute week scores failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamScoresToDTO(scores))
}

func (h *Handler) PersistWeekScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PersistWeekScores")
	defer span.End()

	week, err := weekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	scores, err := h.scoringService.PersistTeamScores(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "persist week scores failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamScoresToDTO(scores))
}

func (h *Handler) ListWeekScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeekScores")
	defer span.End()

	week, err := weekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	scores, err := h.scoringService.ListWeekScores(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list week scores failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamScoresToDTO(scores))
}

// GetWeekScoreReadiness reports whether scoring has every input it
// needs for the week. Missing inputs surface as a 412 with one error
// item per gap.
func (h *Handler) GetWeekScoreReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekScoreReadiness")
	defer span.End()

	week, err := weekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.scoringService.CanCompute(ctx, week); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"week": week, "ready": true})
}

func (h *Handler) GetTeamScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamScore")
	defer span.End()

	teamID := r.PathValue("teamID")
	week, err := weekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	score, err := h.scoringService.GetTeamScore(ctx, teamID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "get team score failed", "team_id", teamID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamScoreToDTO(score))
}

func teamScoresToDTO(scores []scoring.TeamScore) []teamScoreDTO {
	out := make([]teamScoreDTO, 0, len(scores))
	for _, score := range scores {
		out = append(out, teamScoreToDTO(score))
	}
	return out
}

func teamScoreToDTO(score scoring.TeamScore) teamScoreDTO {
	players := make([]playerScoreDTO, 0, len(score.Players))
	for _, ps := range score.Players {
		breakdown := make([]lineItemDTO, 0, len(ps.Breakdown))
		for _, item := range ps.Breakdown {
			breakdown = append(breakdown, lineItemDTO(item))
		}
		players = append(players, playerScoreDTO{
			RosterPlayerID: ps.RosterPlayerID,
			PlayerID:       ps.PlayerID,
			PlayerName:     ps.PlayerName,
			Position:       string(ps.Position),
			NFLTeam:        ps.NFLTeam,
			IsStarter:      ps.IsStarter,
			Points:         ps.Points,
			Breakdown:      breakdown,
		})
	}

	dto := teamScoreDTO{
		Week:          score.Week,
		TeamID:        score.TeamID,
		TeamName:      score.TeamName,
		StarterPoints: score.StarterPoints,
		BenchPoints:   score.BenchPoints,
		TotalPoints:   score.TotalPoints,
		Players:       players,
	}
	// Only persisted scores carry a timestamp; ad-hoc computes stay
	// repeatable byte for byte.
	if !score.CalculatedAt.IsZero() {
		calculatedAt := score.CalculatedAt
		dto.CalculatedAt = &calculatedAt
	}
	return dto
}
