package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/rules"
)

type ruleSetTableModel struct {
	ID        string    `db:"public_id"`
	Name      string    `db:"name"`
	Active    bool      `db:"active"`
	Rules     []byte    `db:"rules"`
	UpdatedAt time.Time `db:"updated_at"`
}

type RulesRepository struct {
	db *sqlx.DB
}

func NewRulesRepository(db *sqlx.DB) *RulesRepository {
	return &RulesRepository{db: db}
}

func (r *RulesRepository) GetActive(ctx context.Context) (rules.RuleSet, bool, error) {
	var row ruleSetTableModel
	err := r.db.GetContext(ctx, &row, `
SELECT public_id, name, active, rules, updated_at
FROM rule_sets WHERE active ORDER BY updated_at DESC LIMIT 1`)
	if err != nil {
		if isNotFound(err) {
			return rules.RuleSet{}, false, nil
		}
		return rules.RuleSet{}, false, fmt.Errorf("get active rule set: %w", err)
	}
	return ruleSetFromRow(row), true, nil
}

func (r *RulesRepository) GetByID(ctx context.Context, id string) (rules.RuleSet, bool, error) {
	var row ruleSetTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT public_id, name, active, rules, updated_at FROM rule_sets WHERE public_id = $1`, id)
	if err != nil {
		if isNotFound(err) {
			return rules.RuleSet{}, false, nil
		}
		return rules.RuleSet{}, false, fmt.Errorf("get rule set: %w", err)
	}
	return ruleSetFromRow(row), true, nil
}

func (r *RulesRepository) List(ctx context.Context) ([]rules.RuleSet, error) {
	var rows []ruleSetTableModel
	err := r.db.SelectContext(ctx, &rows,
		`SELECT public_id, name, active, rules, updated_at FROM rule_sets ORDER BY public_id`)
	if err != nil {
		return nil, fmt.Errorf("list rule sets: %w", err)
	}

	out := make([]rules.RuleSet, 0, len(rows))
	for _, row := range rows {
		out = append(out, ruleSetFromRow(row))
	}
	return out, nil
}

func (r *RulesRepository) Upsert(ctx context.Context, item rules.RuleSet) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO rule_sets (public_id, name, active, rules, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (public_id)
DO UPDATE SET name = EXCLUDED.name, active = EXCLUDED.active,
    rules = EXCLUDED.rules, updated_at = EXCLUDED.updated_at`,
		item.ID, item.Name, item.Active, item.Rules, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert rule set: %w", err)
	}
	return nil
}

// SetActive flips the chosen set on and the rest off in one transaction.
func (r *RulesRepository) SetActive(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set active rule set: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE rule_sets SET active = FALSE WHERE public_id <> $1`, id); err != nil {
		return fmt.Errorf("deactivate rule sets: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE rule_sets SET active = TRUE WHERE public_id = $1`, id); err != nil {
		return fmt.Errorf("activate rule set: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set active rule set: %w", err)
	}
	return nil
}

func ruleSetFromRow(row ruleSetTableModel) rules.RuleSet {
	return rules.RuleSet{
		ID:        row.ID,
		Name:      row.Name,
		Active:    row.Active,
		Rules:     append([]byte(nil), row.Rules...),
		UpdatedAt: row.UpdatedAt,
	}
}
