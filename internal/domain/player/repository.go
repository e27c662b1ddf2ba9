package player

import "context"

// Repository exposes player pool persistence operations.
type Repository interface {
	GetByID(ctx context.Context, id string) (Player, bool, error)
	ListByIDs(ctx context.Context, ids []string) ([]Player, error)
	List(ctx context.Context) ([]Player, error)
	Upsert(ctx context.Context, item Player) error
}
