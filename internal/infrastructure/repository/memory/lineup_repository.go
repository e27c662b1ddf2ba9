package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/lineup"
)

type LineupRepository struct {
	mu    sync.RWMutex
	items map[string]lineup.Entry
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{items: make(map[string]lineup.Entry)}
}

func (r *LineupRepository) Get(_ context.Context, rosterPlayerID string, week int) (lineup.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[entryKey(rosterPlayerID, week)]
	if !ok {
		return lineup.Entry{}, false, nil
	}
	return cloneEntry(item), true, nil
}

func (r *LineupRepository) ListByTeamWeek(_ context.Context, teamID string, week int) ([]lineup.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lineup.Entry, 0)
	for _, item := range r.items {
		if item.TeamID == teamID && item.Week == week {
			out = append(out, cloneEntry(item))
		}
	}
	sortEntries(out)
	return out, nil
}

func (r *LineupRepository) ListByWeek(_ context.Context, week int) ([]lineup.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lineup.Entry, 0)
	for _, item := range r.items {
		if item.Week == week {
			out = append(out, cloneEntry(item))
		}
	}
	sortEntries(out)
	return out, nil
}

func (r *LineupRepository) Upsert(_ context.Context, item lineup.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[entryKey(item.RosterPlayerID, item.Week)] = cloneEntry(item)
	return nil
}

// ApplySwap commits the started entry and the displaced occupant under
// one lock acquisition so no reader sees the slot doubly occupied.
func (r *LineupRepository) ApplySwap(_ context.Context, started lineup.Entry, benched *lineup.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[entryKey(started.RosterPlayerID, started.Week)] = cloneEntry(started)
	if benched != nil {
		r.items[entryKey(benched.RosterPlayerID, benched.Week)] = cloneEntry(*benched)
	}
	return nil
}

func entryKey(rosterPlayerID string, week int) string {
	return rosterPlayerID + "::" + strconv.Itoa(week)
}

func cloneEntry(item lineup.Entry) lineup.Entry {
	copied := item
	if item.Slot != nil {
		slot := *item.Slot
		copied.Slot = &slot
	}
	return copied
}

func sortEntries(items []lineup.Entry) {
	sort.Slice(items, func(i, j int) bool { return items[i].RosterPlayerID < items[j].RosterPlayerID })
}
