package rules

import "context"

// Repository exposes rule set persistence. Exactly one set is active
// league-wide at a time.
type Repository interface {
	GetActive(ctx context.Context) (RuleSet, bool, error)
	GetByID(ctx context.Context, id string) (RuleSet, bool, error)
	List(ctx context.Context) ([]RuleSet, error)
	Upsert(ctx context.Context, item RuleSet) error
	// SetActive marks the given set active and deactivates all others.
	SetActive(ctx context.Context, id string) error
}
