package scoring

import "context"

// Repository persists computed scores as an overwritable cache.
type Repository interface {
	UpsertTeamScore(ctx context.Context, item TeamScore) error
	ListTeamScoresByWeek(ctx context.Context, week int) ([]TeamScore, error)
	GetTeamScore(ctx context.Context, teamID string, week int) (TeamScore, bool, error)
}
