package stats

import "context"

// Repository exposes ingested stat rows and game events.
type Repository interface {
	GetPlayerStats(ctx context.Context, playerID string, week int) (PlayerGameStats, bool, error)
	ListPlayerStatsByWeek(ctx context.Context, week int) ([]PlayerGameStats, error)
	UpsertPlayerStats(ctx context.Context, item PlayerGameStats) error

	GetDefenseStats(ctx context.Context, nflTeam string, week int) (DefenseGameStats, bool, error)
	ListDefenseStatsByWeek(ctx context.Context, week int) ([]DefenseGameStats, error)
	UpsertDefenseStats(ctx context.Context, item DefenseGameStats) error

	ListEventsByWeek(ctx context.Context, week int) ([]GameEvent, error)
	AddEvent(ctx context.Context, item GameEvent) error
}
