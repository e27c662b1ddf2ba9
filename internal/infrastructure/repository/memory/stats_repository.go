package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/stats"
)

type StatsRepository struct {
	mu           sync.RWMutex
	playerStats  map[string]stats.PlayerGameStats
	defenseStats map[string]stats.DefenseGameStats
	events       []stats.GameEvent
}

func NewStatsRepository() *StatsRepository {
	return &StatsRepository{
		playerStats:  make(map[string]stats.PlayerGameStats),
		defenseStats: make(map[string]stats.DefenseGameStats),
	}
}

func (r *StatsRepository) GetPlayerStats(_ context.Context, playerID string, week int) (stats.PlayerGameStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.playerStats[statKey(playerID, week)]
	return item, ok, nil
}

func (r *StatsRepository) ListPlayerStatsByWeek(_ context.Context, week int) ([]stats.PlayerGameStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stats.PlayerGameStats, 0)
	for _, item := range r.playerStats {
		if item.Week == week {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *StatsRepository) UpsertPlayerStats(_ context.Context, item stats.PlayerGameStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.playerStats[statKey(item.PlayerID, item.Week)] = item
	return nil
}

func (r *StatsRepository) GetDefenseStats(_ context.Context, nflTeam string, week int) (stats.DefenseGameStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.defenseStats[statKey(nflTeam, week)]
	return item, ok, nil
}

func (r *StatsRepository) ListDefenseStatsByWeek(_ context.Context, week int) ([]stats.DefenseGameStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stats.DefenseGameStats, 0)
	for _, item := range r.defenseStats {
		if item.Week == week {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NFLTeam < out[j].NFLTeam })
	return out, nil
}

func (r *StatsRepository) UpsertDefenseStats(_ context.Context, item stats.DefenseGameStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.defenseStats[statKey(item.NFLTeam, item.Week)] = item
	return nil
}

func (r *StatsRepository) ListEventsByWeek(_ context.Context, week int) ([]stats.GameEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stats.GameEvent, 0)
	for _, item := range r.events {
		if item.Week == week {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *StatsRepository) AddEvent(_ context.Context, item stats.GameEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, item)
	return nil
}

func statKey(entityID string, week int) string {
	return entityID + "::" + strconv.Itoa(week)
}
