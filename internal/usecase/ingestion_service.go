package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/schedule"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/stats"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/platform/logging"
)

// StatsProvider pulls a week of NFL data from the upstream feed.
type StatsProvider interface {
	FetchWeekGames(ctx context.Context, week int) ([]schedule.Game, error)
	FetchWeekPlayerStats(ctx context.Context, week int) ([]stats.PlayerGameStats, error)
	FetchWeekDefenseStats(ctx context.Context, week int) ([]stats.DefenseGameStats, error)
}

// RecomputePublisher schedules a score recompute after fresh data
// lands. Delivery is best-effort; scoring reads stats at compute time
// anyway.
type RecomputePublisher interface {
	PublishRecompute(ctx context.Context, week int) error
}

type BonusEventInput struct {
	Week     int
	EntityID string
	Points   float64
	Note     string
}

// IngestionService writes provider data and manual events into the
// stores the scoring engine reads from.
type IngestionService struct {
	scheduleRepo schedule.Repository
	statsRepo    stats.Repository
	provider     StatsProvider
	publisher    RecomputePublisher
	logger       *logging.Logger
	now          func() time.Time
}

func NewIngestionService(
	scheduleRepo schedule.Repository,
	statsRepo stats.Repository,
	provider StatsProvider,
	publisher RecomputePublisher,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		scheduleRepo: scheduleRepo,
		statsRepo:    statsRepo,
		provider:     provider,
		publisher:    publisher,
		logger:       logger,
		now:          time.Now,
	}
}

// SyncWeek pulls the week's games and stat lines from the provider and
// upserts them. A recompute is published afterwards when a publisher is
// configured; publish failures are logged, not returned, since the data
// itself landed.
func (s *IngestionService) SyncWeek(ctx context.Context, week int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncWeek")
	defer span.End()

	if week < 1 {
		return fmt.Errorf("%w: week must be positive", ErrInvalidInput)
	}
	if s.provider == nil {
		return fmt.Errorf("%w: no stats provider configured", ErrDependencyUnavailable)
	}

	games, err := s.provider.FetchWeekGames(ctx, week)
	if err != nil {
		return fmt.Errorf("fetch week games: %w", err)
	}
	for _, game := range games {
		game.HomeTeam = strings.TrimSpace(game.HomeTeam)
		game.AwayTeam = strings.TrimSpace(game.AwayTeam)
		game.Status = schedule.NormalizeStatus(game.Status)
		game.Week = week
		if game.ID == "" || game.HomeTeam == "" || game.AwayTeam == "" {
			return fmt.Errorf("%w: game id, home team and away team are required", ErrInvalidInput)
		}
		if err := s.scheduleRepo.Upsert(ctx, game); err != nil {
			return fmt.Errorf("upsert game %s: %w", game.ID, err)
		}
	}

	playerStats, err := s.provider.FetchWeekPlayerStats(ctx, week)
	if err != nil {
		return fmt.Errorf("fetch week player stats: %w", err)
	}
	for _, ps := range playerStats {
		ps.Week = week
		if strings.TrimSpace(ps.PlayerID) == "" {
			return fmt.Errorf("%w: player id is required on stat line", ErrInvalidInput)
		}
		if err := s.statsRepo.UpsertPlayerStats(ctx, ps); err != nil {
			return fmt.Errorf("upsert player stats for %s: %w", ps.PlayerID, err)
		}
	}

	defenseStats, err := s.provider.FetchWeekDefenseStats(ctx, week)
	if err != nil {
		return fmt.Errorf("fetch week defense stats: %w", err)
	}
	for _, ds := range defenseStats {
		ds.Week = week
		ds.NFLTeam = strings.TrimSpace(ds.NFLTeam)
		if ds.NFLTeam == "" {
			return fmt.Errorf("%w: nfl team is required on defense stat line", ErrInvalidInput)
		}
		if err := s.statsRepo.UpsertDefenseStats(ctx, ds); err != nil {
			return fmt.Errorf("upsert defense stats for %s: %w", ds.NFLTeam, err)
		}
	}

	s.logger.InfoContext(ctx, "week synced",
		"week", week, "games", len(games), "player_stats", len(playerStats), "defense_stats", len(defenseStats))

	if s.publisher != nil {
		if err := s.publisher.PublishRecompute(ctx, week); err != nil {
			s.logger.WarnContext(ctx, "recompute publish failed", "week", week, "error", err)
		}
	}
	return nil
}

// RecordBonusEvent stores a manual point adjustment. The points flow
// into the entity's next score computation exactly as entered.
func (s *IngestionService) RecordBonusEvent(ctx context.Context, input BonusEventInput) (stats.GameEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.RecordBonusEvent")
	defer span.End()

	input.EntityID = strings.TrimSpace(input.EntityID)
	if input.EntityID == "" {
		return stats.GameEvent{}, fmt.Errorf("%w: entity id is required", ErrInvalidInput)
	}
	if input.Week < 1 {
		return stats.GameEvent{}, fmt.Errorf("%w: week must be positive", ErrInvalidInput)
	}
	if input.Points == 0 {
		return stats.GameEvent{}, fmt.Errorf("%w: bonus points cannot be zero", ErrInvalidInput)
	}

	now := s.now().UTC()
	event := stats.GameEvent{
		ID:       "ev-" + strconv.FormatInt(now.UnixNano(), 36),
		Week:     input.Week,
		EntityID: input.EntityID,
		Type:     stats.EventBonus,
		Points:   input.Points,
		Note:     strings.TrimSpace(input.Note),
	}
	if err := s.statsRepo.AddEvent(ctx, event); err != nil {
		return stats.GameEvent{}, fmt.Errorf("add bonus event: %w", err)
	}

	return event, nil
}
