package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/schedule"
)

type gameTableModel struct {
	ID        string    `db:"public_id"`
	Week      int       `db:"week"`
	HomeTeam  string    `db:"home_team"`
	AwayTeam  string    `db:"away_team"`
	Kickoff   time.Time `db:"kickoff_at"`
	Status    string    `db:"status"`
	HomeScore *int      `db:"home_score"`
	AwayScore *int      `db:"away_score"`
}

type ScheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) GetByTeamWeek(ctx context.Context, nflTeam string, week int) (schedule.Game, bool, error) {
	var row gameTableModel
	err := r.db.GetContext(ctx, &row, `
SELECT public_id, week, home_team, away_team, kickoff_at, status, home_score, away_score
FROM games WHERE week = $1 AND (home_team = $2 OR away_team = $2)
ORDER BY kickoff_at LIMIT 1`, week, nflTeam)
	if err != nil {
		if isNotFound(err) {
			return schedule.Game{}, false, nil
		}
		return schedule.Game{}, false, fmt.Errorf("get game by team and week: %w", err)
	}
	return gameFromRow(row), true, nil
}

func (r *ScheduleRepository) ListByWeek(ctx context.Context, week int) ([]schedule.Game, error) {
	var rows []gameTableModel
	err := r.db.SelectContext(ctx, &rows, `
SELECT public_id, week, home_team, away_team, kickoff_at, status, home_score, away_score
FROM games WHERE week = $1 ORDER BY public_id`, week)
	if err != nil {
		return nil, fmt.Errorf("list games by week: %w", err)
	}

	out := make([]schedule.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}
	return out, nil
}

func (r *ScheduleRepository) Upsert(ctx context.Context, item schedule.Game) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO games (public_id, week, home_team, away_team, kickoff_at, status, home_score, away_score)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (public_id)
DO UPDATE SET week = EXCLUDED.week, home_team = EXCLUDED.home_team, away_team = EXCLUDED.away_team,
    kickoff_at = EXCLUDED.kickoff_at, status = EXCLUDED.status,
    home_score = EXCLUDED.home_score, away_score = EXCLUDED.away_score`,
		item.ID, item.Week, item.HomeTeam, item.AwayTeam, item.Kickoff, item.Status, item.HomeScore, item.AwayScore)
	if err != nil {
		return fmt.Errorf("upsert game: %w", err)
	}
	return nil
}

func gameFromRow(row gameTableModel) schedule.Game {
	return schedule.Game{
		ID:        row.ID,
		Week:      row.Week,
		HomeTeam:  row.HomeTeam,
		AwayTeam:  row.AwayTeam,
		Kickoff:   row.Kickoff,
		Status:    row.Status,
		HomeScore: row.HomeScore,
		AwayScore: row.AwayScore,
	}
}
