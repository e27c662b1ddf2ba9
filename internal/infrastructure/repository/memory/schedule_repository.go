package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/schedule"
)

type ScheduleRepository struct {
	mu    sync.RWMutex
	items map[string]schedule.Game
}

func NewScheduleRepository(seed []schedule.Game) *ScheduleRepository {
	items := make(map[string]schedule.Game, len(seed))
	for _, item := range seed {
		items[item.ID] = item
	}
	return &ScheduleRepository{items: items}
}

func (r *ScheduleRepository) GetByTeamWeek(_ context.Context, nflTeam string, week int) (schedule.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.Week == week && item.Involves(nflTeam) {
			return cloneGame(item), true, nil
		}
	}
	return schedule.Game{}, false, nil
}

func (r *ScheduleRepository) ListByWeek(_ context.Context, week int) ([]schedule.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Game, 0)
	for _, item := range r.items {
		if item.Week == week {
			out = append(out, cloneGame(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ScheduleRepository) Upsert(_ context.Context, item schedule.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneGame(item)
	return nil
}

func cloneGame(item schedule.Game) schedule.Game {
	copied := item
	if item.HomeScore != nil {
		v := *item.HomeScore
		copied.HomeScore = &v
	}
	if item.AwayScore != nil {
		v := *item.AwayScore
		copied.AwayScore = &v
	}
	return copied
}
