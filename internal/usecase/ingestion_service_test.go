package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/schedule"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/stats"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/infrastructure/repository/memory"
)

type stubProvider struct {
	games        []schedule.Game
	playerStats  []stats.PlayerGameStats
	defenseStats []stats.DefenseGameStats
	err          error
}

func (p *stubProvider) FetchWeekGames(context.Context, int) ([]schedule.Game, error) {
	return p.games, p.err
}

func (p *stubProvider) FetchWeekPlayerStats(context.Context, int) ([]stats.PlayerGameStats, error) {
	return p.playerStats, p.err
}

func (p *stubProvider) FetchWeekDefenseStats(context.Context, int) ([]stats.DefenseGameStats, error) {
	return p.defenseStats, p.err
}

type stubPublisher struct {
	weeks []int
	err   error
}

func (p *stubPublisher) PublishRecompute(_ context.Context, week int) error {
	p.weeks = append(p.weeks, week)
	return p.err
}

func TestIngestionService_SyncWeek(t *testing.T) {
	scheduleRepo := memory.NewScheduleRepository(nil)
	statsRepo := memory.NewStatsRepository()
	provider := &stubProvider{
		games: []schedule.Game{
			{ID: "g1", HomeTeam: "PHI", AwayTeam: "DAL", Kickoff: time.Now(), Status: "live"},
		},
		playerStats:  []stats.PlayerGameStats{{PlayerID: "p-qb-01", PassYards: 210}},
		defenseStats: []stats.DefenseGameStats{{NFLTeam: "PHI", PointsAllowed: 10, YardsAllowed: 290}},
	}
	publisher := &stubPublisher{}

	svc := NewIngestionService(scheduleRepo, statsRepo, provider, publisher, nil)
	if err := svc.SyncWeek(t.Context(), 3); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	game, exists, err := scheduleRepo.GetByTeamWeek(t.Context(), "PHI", 3)
	if err != nil || !exists {
		t.Fatalf("game not stored: exists=%v err=%v", exists, err)
	}
	if game.Status != "LIVE" || !schedule.IsInProgressStatus(game.Status) {
		t.Fatalf("status not normalized: %s", game.Status)
	}

	if _, exists, _ := statsRepo.GetPlayerStats(t.Context(), "p-qb-01", 3); !exists {
		t.Fatal("player stats not stored with sync week")
	}
	if _, exists, _ := statsRepo.GetDefenseStats(t.Context(), "PHI", 3); !exists {
		t.Fatal("defense stats not stored with sync week")
	}

	if len(publisher.weeks) != 1 || publisher.weeks[0] != 3 {
		t.Fatalf("recompute not published: %v", publisher.weeks)
	}
}

func TestIngestionService_SyncWeekToleratesPublishFailure(t *testing.T) {
	svc := NewIngestionService(
		memory.NewScheduleRepository(nil),
		memory.NewStatsRepository(),
		&stubProvider{},
		&stubPublisher{err: errors.New("queue down")},
		nil,
	)

	if err := svc.SyncWeek(t.Context(), 1); err != nil {
		t.Fatalf("publish failure must not fail the sync: %v", err)
	}
}

func TestIngestionService_SyncWeekWithoutProvider(t *testing.T) {
	svc := NewIngestionService(memory.NewScheduleRepository(nil), memory.NewStatsRepository(), nil, nil, nil)

	if err := svc.SyncWeek(t.Context(), 1); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestIngestionService_RecordBonusEvent(t *testing.T) {
	statsRepo := memory.NewStatsRepository()
	svc := NewIngestionService(memory.NewScheduleRepository(nil), statsRepo, nil, nil, nil)

	event, err := svc.RecordBonusEvent(t.Context(), BonusEventInput{
		Week: 2, EntityID: "p-rb-01", Points: 1.5, Note: "league vote",
	})
	if err != nil {
		t.Fatalf("record bonus failed: %v", err)
	}
	if event.Type != stats.EventBonus {
		t.Fatalf("unexpected event type: %s", event.Type)
	}

	events, err := statsRepo.ListEventsByWeek(t.Context(), 2)
	if err != nil {
		t.Fatalf("list events failed: %v", err)
	}
	if len(events) != 1 || events[0].Points != 1.5 {
		t.Fatalf("stored events = %+v", events)
	}
}

func TestIngestionService_RecordBonusEventValidation(t *testing.T) {
	svc := NewIngestionService(memory.NewScheduleRepository(nil), memory.NewStatsRepository(), nil, nil, nil)

	cases := []BonusEventInput{
		{Week: 1, EntityID: "", Points: 1},
		{Week: 0, EntityID: "p-rb-01", Points: 1},
		{Week: 1, EntityID: "p-rb-01", Points: 0},
	}
	for _, input := range cases {
		if _, err := svc.RecordBonusEvent(t.Context(), input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", input, err)
		}
	}
}
