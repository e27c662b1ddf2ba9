package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/roster"
)

type rosterTableModel struct {
	ID        string    `db:"public_id"`
	TeamID    string    `db:"team_public_id"`
	PlayerID  string    `db:"player_public_id"`
	CreatedAt time.Time `db:"created_at"`
}

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) GetByID(ctx context.Context, id string) (roster.RosterPlayer, bool, error) {
	var row rosterTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT public_id, team_public_id, player_public_id, created_at FROM roster_players WHERE public_id = $1`, id)
	if err != nil {
		if isNotFound(err) {
			return roster.RosterPlayer{}, false, nil
		}
		return roster.RosterPlayer{}, false, fmt.Errorf("get roster player: %w", err)
	}
	return rosterFromRow(row), true, nil
}

func (r *RosterRepository) ListByTeam(ctx context.Context, teamID string) ([]roster.RosterPlayer, error) {
	var rows []rosterTableModel
	err := r.db.SelectContext(ctx, &rows,
		`SELECT public_id, team_public_id, player_public_id, created_at
FROM roster_players WHERE team_public_id = $1 ORDER BY public_id`, teamID)
	if err != nil {
		return nil, fmt.Errorf("list roster players: %w", err)
	}

	out := make([]roster.RosterPlayer, 0, len(rows))
	for _, row := range rows {
		out = append(out, rosterFromRow(row))
	}
	return out, nil
}

func (r *RosterRepository) Create(ctx context.Context, item roster.RosterPlayer) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO roster_players (public_id, team_public_id, player_public_id)
VALUES ($1, $2, $3)
ON CONFLICT (public_id) DO NOTHING`,
		item.ID, item.TeamID, item.PlayerID)
	if err != nil {
		return fmt.Errorf("create roster player: %w", err)
	}
	return nil
}

func (r *RosterRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM roster_players WHERE public_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete roster player: %w", err)
	}
	return nil
}

func rosterFromRow(row rosterTableModel) roster.RosterPlayer {
	return roster.RosterPlayer{
		ID:        row.ID,
		TeamID:    row.TeamID,
		PlayerID:  row.PlayerID,
		CreatedAt: row.CreatedAt,
	}
}
