package gridstats

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/platform/logging"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/platform/resilience"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler, cfg ClientConfig) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.BaseURL = server.URL
	if cfg.APIKey == "" {
		cfg.APIKey = "test-key"
	}
	cfg.Logger = logging.NewNop()
	client := NewClient(cfg)
	client.retryBaseDelay = time.Millisecond
	return client
}

func TestClient_FetchWeekGames(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weeks/1/games" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Errorf("missing api_key query param")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"id":"g-1","week":1,"homeTeam":"PHI","awayTeam":"DAL","kickoffAt":"2026-09-13T17:00:00Z","status":"SCHEDULED"},
			{"id":"g-2","week":1,"homeTeam":"KC","awayTeam":"BUF","kickoffAt":"2026-09-13T20:25:00Z","status":"FINAL","homeScore":27,"awayScore":24}
		]}`))
	})

	client := newTestClient(t, handler, ClientConfig{})
	games, err := client.FetchWeekGames(context.Background(), 1)
	if err != nil {
		t.Fatalf("fetch week games: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got=%d", len(games))
	}
	if games[0].ID != "g-1" || games[0].HomeTeam != "PHI" {
		t.Fatalf("unexpected first game: %+v", games[0])
	}
	want := time.Date(2026, 9, 13, 17, 0, 0, 0, time.UTC)
	if !games[0].Kickoff.Equal(want) {
		t.Fatalf("unexpected kickoff: %s", games[0].Kickoff)
	}
	if games[1].HomeScore == nil || *games[1].HomeScore != 27 {
		t.Fatalf("expected home score 27, got=%v", games[1].HomeScore)
	}
}

func TestClient_FetchWeekPlayerStats_MergesGames(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/weeks/1/games":
			_, _ = w.Write([]byte(`{"data":[
				{"id":"g-1","week":1,"homeTeam":"PHI","awayTeam":"DAL","kickoffAt":"2026-09-13T17:00:00Z","status":"FINAL"},
				{"id":"g-2","week":1,"homeTeam":"KC","awayTeam":"BUF","kickoffAt":"2026-09-13T20:25:00Z","status":"FINAL"}
			]}`))
		case r.URL.Path == "/games/g-1/player-stats":
			_, _ = w.Write([]byte(`{"data":[{"playerId":"p-qb-01","passYards":320,"passTds":2,"interceptions":1}]}`))
		case r.URL.Path == "/games/g-2/player-stats":
			_, _ = w.Write([]byte(`{"data":[{"playerId":"p-rb-02","rushYards":95,"rushTds":1,"receptions":3,"recYards":22}]}`))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	client := newTestClient(t, handler, ClientConfig{PoolSize: 2})
	statLines, err := client.FetchWeekPlayerStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("fetch week player stats: %v", err)
	}
	if len(statLines) != 2 {
		t.Fatalf("expected 2 stat lines, got=%d", len(statLines))
	}
	if statLines[0].PlayerID != "p-qb-01" || statLines[0].PassYards != 320 {
		t.Fatalf("unexpected first stat line: %+v", statLines[0])
	}
	if statLines[1].PlayerID != "p-rb-02" || statLines[1].RushYards != 95 {
		t.Fatalf("unexpected second stat line: %+v", statLines[1])
	}
	if statLines[0].Week != 1 {
		t.Fatalf("expected week stamped on stat line, got=%d", statLines[0].Week)
	}
}

func TestClient_FetchWeekDefenseStats(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weeks/3/defense-stats" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"nflTeam":"PHI","pointsAllowed":10,"yardsAllowed":240,"sacks":4,"interceptions":2,"defensiveTds":1}]}`))
	})

	client := newTestClient(t, handler, ClientConfig{})
	defenseLines, err := client.FetchWeekDefenseStats(context.Background(), 3)
	if err != nil {
		t.Fatalf("fetch week defense stats: %v", err)
	}
	if len(defenseLines) != 1 {
		t.Fatalf("expected 1 defense line, got=%d", len(defenseLines))
	}
	line := defenseLines[0]
	if line.NFLTeam != "PHI" || line.Week != 3 || line.Sacks != 4 || line.DefensiveTDs != 1 {
		t.Fatalf("unexpected defense line: %+v", line)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	client := newTestClient(t, handler, ClientConfig{MaxRetries: 2})
	if _, err := client.FetchWeekGames(context.Background(), 1); err != nil {
		t.Fatalf("expected retry to recover, got: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 calls, got=%d", got)
	}
}

func TestClient_NonRetryableStatusFailsFast(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	})

	client := newTestClient(t, handler, ClientConfig{MaxRetries: 3})
	_, err := client.FetchWeekGames(context.Background(), 1)
	if err == nil {
		t.Fatalf("expected error for 401 response")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single call for non-retryable status, got=%d", got)
	}
}

func TestClient_CircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := newTestClient(t, handler, ClientConfig{
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for i := 0; i < 2; i++ {
		if _, err := client.FetchWeekGames(context.Background(), 1); err == nil {
			t.Fatalf("expected error from failing provider")
		}
	}

	_, err := client.FetchWeekGames(context.Background(), 1)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable after circuit opened, got: %v", err)
	}
}

func TestSanitizeSensitiveText_RedactsKey(t *testing.T) {
	t.Parallel()

	got := sanitizeSensitiveText("Get \"https://host/weeks/1/games?api_key=secret-123\": dial tcp: timeout", "secret-123")
	if strings.Contains(got, "secret-123") {
		t.Fatalf("expected api key redacted, got: %s", got)
	}
	if !strings.Contains(got, "REDACTED") {
		t.Fatalf("expected REDACTED marker, got: %s", got)
	}
}
