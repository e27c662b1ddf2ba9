package schedule

import "context"

// Repository exposes the real-world game schedule.
type Repository interface {
	GetByTeamWeek(ctx context.Context, nflTeam string, week int) (Game, bool, error)
	ListByWeek(ctx context.Context, week int) ([]Game, error)
	Upsert(ctx context.Context, item Game) error
}
