package lineup

import "context"

// Repository exposes lineup entry persistence operations.
type Repository interface {
	Get(ctx context.Context, rosterPlayerID string, week int) (Entry, bool, error)
	ListByTeamWeek(ctx context.Context, teamID string, week int) ([]Entry, error)
	ListByWeek(ctx context.Context, week int) ([]Entry, error)
	Upsert(ctx context.Context, entry Entry) error
	// ApplySwap commits the started entry and the optional benched occupant
	// as one atomic unit. Partial application must never be observable.
	ApplySwap(ctx context.Context, started Entry, benched *Entry) error
}
