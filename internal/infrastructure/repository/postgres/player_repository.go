package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/player"
)

type playerTableModel struct {
	ID       string `db:"public_id"`
	Name     string `db:"name"`
	Position string `db:"position"`
	NFLTeam  string `db:"nfl_team"`
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (player.Player, bool, error) {
	var row playerTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT public_id, name, position, nfl_team FROM players WHERE public_id = $1`, id)
	if err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) ListByIDs(ctx context.Context, ids []string) ([]player.Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []playerTableModel
	err := r.db.SelectContext(ctx, &rows,
		`SELECT public_id, name, position, nfl_team FROM players WHERE public_id = ANY($1) ORDER BY public_id`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("list players by ids: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	var rows []playerTableModel
	err := r.db.SelectContext(ctx, &rows,
		`SELECT public_id, name, position, nfl_team FROM players ORDER BY public_id`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO players (public_id, name, position, nfl_team)
VALUES ($1, $2, $3, $4)
ON CONFLICT (public_id)
DO UPDATE SET name = EXCLUDED.name, position = EXCLUDED.position, nfl_team = EXCLUDED.nfl_team`,
		item.ID, item.Name, string(item.Position), item.NFLTeam)
	if err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}
	return nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:       row.ID,
		Name:     row.Name,
		Position: player.Position(row.Position),
		NFLTeam:  row.NFLTeam,
	}
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out
}
