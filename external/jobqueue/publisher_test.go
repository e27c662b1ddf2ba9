package jobqueue

import (
	"context"
	"errors"
	"io"
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

func newTestPublisher(t *testing.T, handler http.Handler, cfg PublisherConfig) *Publisher {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.BaseURL = server.URL
	if cfg.Token == "" {
		cfg.Token = "qs-token"
	}
	if cfg.TargetBaseURL == "" {
		cfg.TargetBaseURL = "https://api.example.com"
	}
	cfg.Logger = logging.NewNop()

	publisher, err := NewPublisher(cfg)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	publisher.retryBaseDelay = time.Millisecond
	return publisher
}

func TestPublisher_PublishRecompute(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth, gotDedup, gotForward string
	var gotBody []byte
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotDedup = r.Header.Get("Upstash-Deduplication-Id")
		gotForward = r.Header.Get("Upstash-Forward-X-Internal-Job-Token")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	})

	publisher := newTestPublisher(t, handler, PublisherConfig{InternalJobToken: "job-secret"})
	if err := publisher.PublishRecompute(context.Background(), 4); err != nil {
		t.Fatalf("publish recompute: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/v2/publish/") {
		t.Fatalf("unexpected publish path: %s", gotPath)
	}
	if !strings.HasSuffix(gotPath, "/v1/internal/jobs/recompute-week") {
		t.Fatalf("expected target job path in publish URL, got: %s", gotPath)
	}
	if gotAuth != "Bearer qs-token" {
		t.Fatalf("unexpected authorization header: %s", gotAuth)
	}
	if gotDedup != "recompute-week-4" {
		t.Fatalf("unexpected deduplication id: %s", gotDedup)
	}
	if gotForward != "job-secret" {
		t.Fatalf("expected internal job token forwarded, got: %s", gotForward)
	}
	if string(gotBody) != `{"week":4}` {
		t.Fatalf("unexpected body: %s", gotBody)
	}
}

func TestPublisher_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	publisher := newTestPublisher(t, handler, PublisherConfig{Retries: 2})
	if err := publisher.PublishRecompute(context.Background(), 1); err != nil {
		t.Fatalf("expected retry to recover, got: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 calls, got=%d", got)
	}
}

func TestPublisher_RejectsBadRequestWithoutRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid destination"}`))
	})

	publisher := newTestPublisher(t, handler, PublisherConfig{Retries: 3})
	if err := publisher.PublishRecompute(context.Background(), 1); err == nil {
		t.Fatalf("expected error for 400 response")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single call for non-retryable status, got=%d", got)
	}
}

func TestPublisher_CircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	publisher := newTestPublisher(t, handler, PublisherConfig{
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for i := 0; i < 2; i++ {
		if err := publisher.PublishRecompute(context.Background(), 1); err == nil {
			t.Fatalf("expected error from failing queue")
		}
	}

	err := publisher.PublishRecompute(context.Background(), 1)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable after circuit opened, got: %v", err)
	}
}

func TestPublisher_RejectsInvalidWeek(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("queue should not be called for invalid week")
	})

	publisher := newTestPublisher(t, handler, PublisherConfig{})
	if err := publisher.PublishRecompute(context.Background(), 0); err == nil {
		t.Fatalf("expected error for week 0")
	}
}

func TestNewPublisher_ValidatesConfig(t *testing.T) {
	t.Parallel()

	_, err := NewPublisher(PublisherConfig{
		Token:         "",
		TargetBaseURL: "https://api.example.com",
		Logger:        logging.NewNop(),
	})
	if err == nil {
		t.Fatalf("expected error for missing token")
	}

	_, err = NewPublisher(PublisherConfig{
		Token:         "qs-token",
		TargetBaseURL: "ftp://api.example.com",
		Logger:        logging.NewNop(),
	})
	if err == nil {
		t.Fatalf("expected error for unsupported target scheme")
	}
}
