package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/roster"
)

type RosterRepository struct {
	mu    sync.RWMutex
	items map[string]roster.RosterPlayer
}

func NewRosterRepository(seed []roster.RosterPlayer) *RosterRepository {
	items := make(map[string]roster.RosterPlayer, len(seed))
	for _, item := range seed {
		items[item.ID] = item
	}
	return &RosterRepository{items: items}
}

func (r *RosterRepository) GetByID(_ context.Context, id string) (roster.RosterPlayer, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *RosterRepository) ListByTeam(_ context.Context, teamID string) ([]roster.RosterPlayer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.RosterPlayer, 0)
	for _, item := range r.items {
		if item.TeamID == teamID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RosterRepository) Create(_ context.Context, item roster.RosterPlayer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *RosterRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}
