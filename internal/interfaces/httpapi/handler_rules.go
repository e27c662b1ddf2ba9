package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/rules"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/usecase"
)

// maxRulesPayloadBytes caps uploaded rule set documents.
const maxRulesPayloadBytes = 1 << 20

type ruleSetDTO struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Active    bool            `json:"active"`
	Rules     json.RawMessage `json:"rules,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// UploadRuleSet accepts the raw rules document as the request body.
// Shape normalization happens in the service, so admin tooling can post
// either the flat or the metadata-wrapped form.
func (h *Handler) UploadRuleSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadRuleSet")
	defer span.End()

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRulesPayloadBytes))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read rules payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.rulesService.Upload(ctx, raw)
	if err != nil {
		h.logger.WarnContext(ctx, "upload rule set failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, ruleSetToDTO(item, true))
}

func (h *Handler) ActivateRuleSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ActivateRuleSet")
	defer span.End()

	ruleSetID := r.PathValue("ruleSetID")
	if err := h.rulesService.Activate(ctx, ruleSetID); err != nil {
		h.logger.WarnContext(ctx, "activate rule set failed", "rule_set_id", ruleSetID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "activated", "id": ruleSetID})
}

func (h *Handler) GetActiveRuleSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetActiveRuleSet")
	defer span.End()

	item, err := h.rulesService.GetActive(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ruleSetToDTO(item, true))
}

func (h *Handler) ListRuleSets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRuleSets")
	defer span.End()

	items, err := h.rulesService.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]ruleSetDTO, 0, len(items))
	for _, item := range items {
		// Listing omits the payload; fetch the active set for the full document.
		out = append(out, ruleSetToDTO(item, false))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func ruleSetToDTO(item rules.RuleSet, includeRules bool) ruleSetDTO {
	dto := ruleSetDTO{
		ID:        item.ID,
		Name:      item.Name,
		Active:    item.Active,
		UpdatedAt: item.UpdatedAt,
	}
	if includeRules {
		dto.Rules = json.RawMessage(item.Rules)
	}
	return dto
}
