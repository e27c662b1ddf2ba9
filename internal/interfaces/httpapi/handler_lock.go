package httpapi

import (
	"net/http"
)

type lockStatusDTO struct {
	NFLTeam string `json:"nflTeam"`
	Week    int    `json:"week"`
	Locked  bool   `json:"locked"`
	Reason  string `json:"reason,omitempty"`
}

func (h *Handler) GetLockStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLockStatus")
	defer span.End()

	nflTeam := r.PathValue("nflTeam")
	week, err := weekFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	status, err := h.lockService.IsLocked(ctx, nflTeam, week)
	if err != nil {
		h.logger.WarnContext(ctx, "get lock status failed", "nfl_team", nflTeam, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lockStatusDTO{
		NFLTeam: nflTeam,
		Week:    week,
		Locked:  status.Locked,
		Reason:  status.Reason,
	})
}
