package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/lineup"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/usecase"
)

type assignSlotRequest struct {
	RosterPlayerID string `json:"rosterPlayerId" validate:"required"`
	Week           int    `json:"week" validate:"required,min=1"`
	Slot           string `json:"slot" validate:"required"`
	Override       bool   `json:"override"`
}

type benchPlayerRequest struct {
	RosterPlayerID string `json:"rosterPlayerId" validate:"required"`
	Week           int    `json:"week" validate:"required,min=1"`
	Override       bool   `json:"override"`
}

type assignSlotResponse struct {
	PlayerName     string `json:"playerName"`
	SwappedOutName string `json:"swappedOutName,omitempty"`
}

type lineupSlotDTO struct {
	RosterPlayerID string  `json:"rosterPlayerId"`
	PlayerID       string  `json:"playerId"`
	PlayerName     string  `json:"playerName"`
	Position       string  `json:"position"`
	NFLTeam        string  `json:"nflTeam"`
	Slot           *string `json:"slot,omitempty"`
	Locked         bool    `json:"locked"`
	LockReason     string  `json:"lockReason,omitempty"`
}

type weekLineupDTO struct {
	TeamID   string          `json:"teamId"`
	TeamName string          `json:"teamName"`
	Week     int             `json:"week"`
	Starters []lineupSlotDTO `json:"starters"`
	Bench    []lineupSlotDTO `json:"bench"`
}

func (h *Handler) AssignLineupSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignLineupSlot")
	defer span.End()

	teamID := r.PathValue("teamID")

	var req assignSlotRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.lineupService.AssignSlot(ctx, usecase.AssignSlotInput{
		TeamID:         teamID,
		RosterPlayerID: req.RosterPlayerID,
		Week:           req.Week,
		Slot:           lineup.Slot(strings.ToUpper(strings.TrimSpace(req.Slot))),
		Override:       req.Override,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "assign lineup slot failed",
			"team_id", teamID, "roster_player_id", req.RosterPlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, assignSlotResponse{
		PlayerName:     result.PlayerName,
		SwappedOutName: result.SwappedOutName,
	})
}

func (h *Handler) BenchLineupPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BenchLineupPlayer")
	defer span.End()

	teamID := r.PathValue("teamID")

	var req benchPlayerRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	err := h.lineupService.BenchPlayer(ctx, usecase.BenchPlayerInput{
		TeamID:         teamID,
		RosterPlayerID: req.RosterPlayerID,
		Week:           req.Week,
		Override:       req.Override,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "bench player failed",
			"team_id", teamID, "roster_player_id", req.RosterPlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "benched"})
}

func (h *Handler) GetWeekLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekLineup")
	defer span.End()

	teamID := r.PathValue("teamID")
	week, err := weekFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.lineupService.GetWeekLineup(ctx, teamID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "get week lineup failed", "team_id", teamID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekLineupToDTO(result))
}

func weekLineupToDTO(item usecase.WeekLineup) weekLineupDTO {
	out := weekLineupDTO{
		TeamID:   item.TeamID,
		TeamName: item.TeamName,
		Week:     item.Week,
		Starters: make([]lineupSlotDTO, 0, len(item.Starters)),
		Bench:    make([]lineupSlotDTO, 0, len(item.Bench)),
	}
	for _, view := range item.Starters {
		out.Starters = append(out.Starters, lineupSlotToDTO(view))
	}
	for _, view := range item.Bench {
		out.Bench = append(out.Bench, lineupSlotToDTO(view))
	}
	return out
}

func lineupSlotToDTO(view usecase.LineupSlotView) lineupSlotDTO {
	dto := lineupSlotDTO{
		RosterPlayerID: view.RosterPlayerID,
		PlayerID:       view.PlayerID,
		PlayerName:     view.PlayerName,
		Position:       string(view.Position),
		NFLTeam:        view.NFLTeam,
		Locked:         view.Locked,
		LockReason:     view.LockReason,
	}
	if view.Slot != nil {
		slot := string(*view.Slot)
		dto.Slot = &slot
	}
	return dto
}

func weekFromQuery(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("week"))
	if raw == "" {
		return 0, fmt.Errorf("%w: week query parameter is required", usecase.ErrInvalidInput)
	}
	week, err := strconv.Atoi(raw)
	if err != nil || week < 1 {
		return 0, fmt.Errorf("%w: week must be a positive number", usecase.ErrInvalidInput)
	}
	return week, nil
}

func weekFromPath(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("week"))
	week, err := strconv.Atoi(raw)
	if err != nil || week < 1 {
		return 0, fmt.Errorf("%w: week must be a positive number", usecase.ErrInvalidInput)
	}
	return week, nil
}
