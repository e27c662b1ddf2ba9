package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/platform/logging"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/usecase"
)

type Handler struct {
	lineupService    *usecase.LineupService
	scoringService   *usecase.ScoringService
	rulesService     *usecase.RulesService
	lockService      *usecase.LockService
	ingestionService *usecase.IngestionService
	statLineService  *usecase.StatLineService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	lineupService *usecase.LineupService,
	scoringService *usecase.ScoringService,
	rulesService *usecase.RulesService,
	lockService *usecase.LockService,
	ingestionService *usecase.IngestionService,
	statLineService *usecase.StatLineService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		lineupService:    lineupService,
		scoringService:   scoringService,
		rulesService:     rulesService,
		lockService:      lockService,
		ingestionService: ingestionService,
		statLineService:  statLineService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest strictly decodes a JSON request body into out. An empty
// body leaves out at its zero value.
func decodeRequest(r *http.Request, out any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
