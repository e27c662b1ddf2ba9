package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/lineup"
)

type lineupTableModel struct {
	RosterPlayerID string    `db:"roster_player_public_id"`
	TeamID         string    `db:"team_public_id"`
	Week           int       `db:"week"`
	Slot           *string   `db:"slot"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

const lineupUpsertQuery = `
INSERT INTO lineup_entries (roster_player_public_id, team_public_id, week, slot, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (roster_player_public_id, week)
DO UPDATE SET slot = EXCLUDED.slot, updated_at = EXCLUDED.updated_at`

func (r *LineupRepository) Get(ctx context.Context, rosterPlayerID string, week int) (lineup.Entry, bool, error) {
	var row lineupTableModel
	err := r.db.GetContext(ctx, &row, `
SELECT roster_player_public_id, team_public_id, week, slot, updated_at
FROM lineup_entries WHERE roster_player_public_id = $1 AND week = $2`, rosterPlayerID, week)
	if err != nil {
		if isNotFound(err) {
			return lineup.Entry{}, false, nil
		}
		return lineup.Entry{}, false, fmt.Errorf("get lineup entry: %w", err)
	}
	return entryFromRow(row), true, nil
}

func (r *LineupRepository) ListByTeamWeek(ctx context.Context, teamID string, week int) ([]lineup.Entry, error) {
	var rows []lineupTableModel
	err := r.db.SelectContext(ctx, &rows, `
SELECT roster_player_public_id, team_public_id, week, slot, updated_at
FROM lineup_entries WHERE team_public_id = $1 AND week = $2 ORDER BY roster_player_public_id`, teamID, week)
	if err != nil {
		return nil, fmt.Errorf("list lineup entries by team: %w", err)
	}
	return entriesFromRows(rows), nil
}

func (r *LineupRepository) ListByWeek(ctx context.Context, week int) ([]lineup.Entry, error) {
	var rows []lineupTableModel
	err := r.db.SelectContext(ctx, &rows, `
SELECT roster_player_public_id, team_public_id, week, slot, updated_at
FROM lineup_entries WHERE week = $1 ORDER BY roster_player_public_id`, week)
	if err != nil {
		return nil, fmt.Errorf("list lineup entries by week: %w", err)
	}
	return entriesFromRows(rows), nil
}

func (r *LineupRepository) Upsert(ctx context.Context, item lineup.Entry) error {
	_, err := r.db.ExecContext(ctx, lineupUpsertQuery,
		item.RosterPlayerID, item.TeamID, item.Week, slotValue(item), item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert lineup entry: %w", err)
	}
	return nil
}

// ApplySwap writes the started entry and the displaced occupant in one
// transaction so the slot uniqueness invariant holds at every commit
// point.
func (r *LineupRepository) ApplySwap(ctx context.Context, started lineup.Entry, benched *lineup.Entry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin lineup swap: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if benched != nil {
		if _, err := tx.ExecContext(ctx, lineupUpsertQuery,
			benched.RosterPlayerID, benched.TeamID, benched.Week, slotValue(*benched), benched.UpdatedAt); err != nil {
			return fmt.Errorf("bench displaced entry: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, lineupUpsertQuery,
		started.RosterPlayerID, started.TeamID, started.Week, slotValue(started), started.UpdatedAt); err != nil {
		return fmt.Errorf("start entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit lineup swap: %w", err)
	}
	return nil
}

func slotValue(item lineup.Entry) *string {
	if item.Slot == nil {
		return nil
	}
	s := string(*item.Slot)
	return &s
}

func entryFromRow(row lineupTableModel) lineup.Entry {
	item := lineup.Entry{
		RosterPlayerID: row.RosterPlayerID,
		TeamID:         row.TeamID,
		Week:           row.Week,
		UpdatedAt:      row.UpdatedAt,
	}
	if row.Slot != nil {
		slot := lineup.Slot(*row.Slot)
		item.Slot = &slot
	}
	return item
}

func entriesFromRows(rows []lineupTableModel) []lineup.Entry {
	out := make([]lineup.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, entryFromRow(row))
	}
	return out
}
