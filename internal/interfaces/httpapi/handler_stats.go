package httpapi

import (
	"net/http"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/usecase"
)

type statLineDTO struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Position string `json:"position"`
	NFLTeam  string `json:"nflTeam"`
	Week     int    `json:"week"`
	Line     string `json:"line"`
}

type bonusEventRequest struct {
	Week     int     `json:"week" validate:"required,min=1"`
	EntityID string  `json:"entityId" validate:"required"`
	Points   float64 `json:"points" validate:"required"`
	Note     string  `json:"note"`
}

type bonusEventDTO struct {
	ID       string  `json:"id"`
	Week     int     `json:"week"`
	EntityID string  `json:"entityId"`
	Points   float64 `json:"points"`
	Note     string  `json:"note,omitempty"`
}

type syncWeekRequest struct {
	Week int `json:"week" validate:"required,min=1"`
}

func (h *Handler) GetPlayerStatLine(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStatLine")
	defer span.End()

	playerID := r.PathValue("playerID")
	week, err := weekFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	line, err := h.statLineService.GetPlayerLine(ctx, playerID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "get player stat line failed", "player_id", playerID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statLineDTO{
		PlayerID: line.PlayerID,
		Name:     line.Name,
		Position: string(line.Position),
		NFLTeam:  line.NFLTeam,
		Week:     line.Week,
		Line:     line.Line,
	})
}

func (h *Handler) RecordBonusEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordBonusEvent")
	defer span.End()

	var req bonusEventRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	event, err := h.ingestionService.RecordBonusEvent(ctx, usecase.BonusEventInput{
		Week:     req.Week,
		EntityID: req.EntityID,
		Points:   req.Points,
		Note:     req.Note,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record bonus event failed", "entity_id", req.EntityID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, bonusEventDTO{
		ID:       event.ID,
		Week:     event.Week,
		EntityID: event.EntityID,
		Points:   event.Points,
		Note:     event.Note,
	})
}

// RunSyncWeekJob pulls the week's games and stats from the upstream
// provider. Sits behind the internal job token.
func (h *Handler) RunSyncWeekJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncWeekJob")
	defer span.End()

	var req syncWeekRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.ingestionService.SyncWeek(ctx, req.Week); err != nil {
		h.logger.ErrorContext(ctx, "sync week job failed", "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"status": "synced", "week": req.Week})
}

// RunRecomputeWeekJob recomputes and persists the week's scores. The
// job queue calls this after a sync lands fresh data.
func (h *Handler) RunRecomputeWeekJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputeWeekJob")
	defer span.End()

	var req syncWeekRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	scores, err := h.scoringService.PersistTeamScores(ctx, req.Week)
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute week job failed", "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"status": "recomputed", "week": req.Week, "teams": len(scores)})
}
