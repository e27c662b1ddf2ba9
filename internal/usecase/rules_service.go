package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/rules"
)

// RulesService manages uploaded scoring rule sets. Payloads arrive in
// whatever shape the admin tooling produced; they are normalized once
// at upload and stored canonically.
type RulesService struct {
	rulesRepo rules.Repository
	now       func() time.Time
}

func NewRulesService(rulesRepo rules.Repository) *RulesService {
	return &RulesService{rulesRepo: rulesRepo, now: time.Now}
}

func (s *RulesService) Upload(ctx context.Context, raw []byte) (rules.RuleSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RulesService.Upload")
	defer span.End()

	if len(raw) == 0 {
		return rules.RuleSet{}, fmt.Errorf("%w: rules payload is required", ErrInvalidInput)
	}

	normalized, err := rules.NormalizePayload(raw)
	if err != nil {
		return rules.RuleSet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if strings.TrimSpace(normalized.Name) == "" {
		return rules.RuleSet{}, fmt.Errorf("%w: rule set name is required", ErrInvalidInput)
	}

	encoded, err := normalized.EncodeRules()
	if err != nil {
		return rules.RuleSet{}, fmt.Errorf("encode normalized rules: %w", err)
	}

	now := s.now().UTC()
	item := rules.RuleSet{
		ID:        "rs-" + strconv.FormatInt(now.UnixNano(), 36),
		Name:      normalized.Name,
		Active:    normalized.Active,
		Rules:     encoded,
		UpdatedAt: now,
	}

	// Validate that the canonical payload still decodes before storing.
	if _, err := item.Scoring(); err != nil {
		return rules.RuleSet{}, fmt.Errorf("%w: rules payload does not decode: %v", ErrInvalidInput, err)
	}

	if err := s.rulesRepo.Upsert(ctx, item); err != nil {
		return rules.RuleSet{}, fmt.Errorf("save rule set: %w", err)
	}
	if item.Active {
		if err := s.rulesRepo.SetActive(ctx, item.ID); err != nil {
			return rules.RuleSet{}, fmt.Errorf("activate rule set: %w", err)
		}
	}

	return item, nil
}

// Activate makes the given rule set the single active one.
func (s *RulesService) Activate(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RulesService.Activate")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: rule set id is required", ErrInvalidInput)
	}

	_, exists, err := s.rulesRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get rule set: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: rule set=%s", ErrNotFound, id)
	}

	if err := s.rulesRepo.SetActive(ctx, id); err != nil {
		return fmt.Errorf("activate rule set: %w", err)
	}
	return nil
}

func (s *RulesService) GetActive(ctx context.Context) (rules.RuleSet, error) {
	item, exists, err := s.rulesRepo.GetActive(ctx)
	if err != nil {
		return rules.RuleSet{}, fmt.Errorf("get active rule set: %w", err)
	}
	if !exists {
		return rules.RuleSet{}, fmt.Errorf("%w: no active rule set", ErrNotFound)
	}
	return item, nil
}

func (s *RulesService) List(ctx context.Context) ([]rules.RuleSet, error) {
	items, err := s.rulesRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rule sets: %w", err)
	}
	return items, nil
}
