package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/stats"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/infrastructure/repository/memory"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/platform/logging"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/usecase"
)

const testJobToken = "test-job-token"

func newTestRouter(t *testing.T) (http.Handler, *memory.StatsRepository) {
	t.Helper()

	logger := logging.NewNop()

	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	rosterRepo := memory.NewRosterRepository(memory.SeedRoster())
	lineupRepo := memory.NewLineupRepository()
	scheduleRepo := memory.NewScheduleRepository(memory.SeedGames(1))
	statsRepo := memory.NewStatsRepository()
	rulesRepo := memory.NewRulesRepository(memory.SeedRuleSets())
	scoreRepo := memory.NewScoringRepository()

	lockSvc := usecase.NewLockService(scheduleRepo, nil)
	lineupSvc := usecase.NewLineupService(teamRepo, rosterRepo, playerRepo, lineupRepo, lockSvc, logger)
	scoringSvc := usecase.NewScoringService(teamRepo, rosterRepo, playerRepo, lineupRepo, scheduleRepo, statsRepo, rulesRepo, scoreRepo, logger)
	rulesSvc := usecase.NewRulesService(rulesRepo)
	ingestionSvc := usecase.NewIngestionService(scheduleRepo, statsRepo, nil, nil, logger)
	statLineSvc := usecase.NewStatLineService(playerRepo, statsRepo)

	handler := NewHandler(lineupSvc, scoringSvc, rulesSvc, lockSvc, ingestionSvc, statLineSvc, logger)
	return NewRouter(handler, logger, []string{"*"}, testJobToken), statsRepo
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestRouter_Healthz(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["status"].(string); got != "ok" {
		t.Fatalf("expected status ok, got %v", data["status"])
	}
}

func TestRouter_UploadAndListRuleSets(t *testing.T) {
	router, _ := newTestRouter(t)

	payload := `{"name":"test upload","active":false,"passing":{"tdPoints":4}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/rules", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/rules", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	items, _ := body["data"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 rule sets (seed + upload), got %d", len(items))
	}
}

func TestRouter_ScoreReadinessReportsMissingInputs(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/scores/weeks/1/readiness", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusPreconditionFailed {
		t.Fatalf("expected status 412, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	errorObj, _ := body["error"].(map[string]any)
	items, _ := errorObj["errors"].([]any)
	// Seeds provide rule set, teams, and games; lineup entries and
	// player stats are absent.
	if len(items) != 2 {
		t.Fatalf("expected 2 missing inputs, got %d: %s", len(items), rec.Body.String())
	}
}

func TestRouter_GetPlayerStatLine(t *testing.T) {
	router, statsRepo := newTestRouter(t)

	err := statsRepo.UpsertPlayerStats(context.Background(), stats.PlayerGameStats{
		PlayerID:      "p-qb-01",
		Week:          1,
		PassYards:     320,
		PassTDs:       2,
		Interceptions: 1,
	})
	if err != nil {
		t.Fatalf("seed player stats: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/players/p-qb-01/statline?week=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	line, _ := data["line"].(string)
	if line == "" {
		t.Fatalf("expected a formatted stat line, got empty string")
	}
	if !strings.Contains(line, "320") {
		t.Fatalf("expected passing yards in stat line, got %q", line)
	}
}

func TestRouter_SyncWeekJobRequiresToken(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync-week", strings.NewReader(`{"week":1}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRouter_AssignSlotRejectsUnknownSlot(t *testing.T) {
	router, _ := newTestRouter(t)

	payload := `{"rosterPlayerId":"rp-01","week":1,"slot":"PUNTER"}`
	req := httptest.NewRequest(http.MethodPut, "/v1/teams/team-gridironers/lineup/slots", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	errorObj, _ := body["error"].(map[string]any)
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}
