package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/rules"
)

type RulesRepository struct {
	mu    sync.RWMutex
	items map[string]rules.RuleSet
}

func NewRulesRepository(seed []rules.RuleSet) *RulesRepository {
	items := make(map[string]rules.RuleSet, len(seed))
	for _, item := range seed {
		items[item.ID] = item
	}
	return &RulesRepository{items: items}
}

func (r *RulesRepository) GetActive(_ context.Context) (rules.RuleSet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.Active {
			return cloneRuleSet(item), true, nil
		}
	}
	return rules.RuleSet{}, false, nil
}

func (r *RulesRepository) GetByID(_ context.Context, id string) (rules.RuleSet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return rules.RuleSet{}, false, nil
	}
	return cloneRuleSet(item), true, nil
}

func (r *RulesRepository) List(_ context.Context) ([]rules.RuleSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rules.RuleSet, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneRuleSet(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RulesRepository) Upsert(_ context.Context, item rules.RuleSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneRuleSet(item)
	return nil
}

// SetActive flips the given set on and every other set off.
func (r *RulesRepository) SetActive(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.items {
		item.Active = key == id
		r.items[key] = item
	}
	return nil
}

func cloneRuleSet(item rules.RuleSet) rules.RuleSet {
	copied := item
	copied.Rules = append([]byte(nil), item.Rules...)
	return copied
}
