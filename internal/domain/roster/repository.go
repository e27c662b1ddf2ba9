package roster

import "context"

// Repository exposes roster membership persistence operations.
type Repository interface {
	GetByID(ctx context.Context, id string) (RosterPlayer, bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]RosterPlayer, error)
	Create(ctx context.Context, item RosterPlayer) error
	Delete(ctx context.Context, id string) error
}
