package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/scoring"
)

type ScoringRepository struct {
	mu    sync.RWMutex
	items map[string]scoring.TeamScore
}

func NewScoringRepository() *ScoringRepository {
	return &ScoringRepository{items: make(map[string]scoring.TeamScore)}
}

func (r *ScoringRepository) UpsertTeamScore(_ context.Context, item scoring.TeamScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[scoreKey(item.TeamID, item.Week)] = cloneTeamScore(item)
	return nil
}

func (r *ScoringRepository) ListTeamScoresByWeek(_ context.Context, week int) ([]scoring.TeamScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.TeamScore, 0)
	for _, item := range r.items {
		if item.Week == week {
			out = append(out, cloneTeamScore(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out, nil
}

func (r *ScoringRepository) GetTeamScore(_ context.Context, teamID string, week int) (scoring.TeamScore, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[scoreKey(teamID, week)]
	if !ok {
		return scoring.TeamScore{}, false, nil
	}
	return cloneTeamScore(item), true, nil
}

func scoreKey(teamID string, week int) string {
	return teamID + "::" + strconv.Itoa(week)
}

func cloneTeamScore(item scoring.TeamScore) scoring.TeamScore {
	copied := item
	copied.Players = make([]scoring.PlayerScore, len(item.Players))
	for i, ps := range item.Players {
		cp := ps
		cp.Breakdown = append([]scoring.LineItem(nil), ps.Breakdown...)
		copied.Players[i] = cp
	}
	return copied
}
