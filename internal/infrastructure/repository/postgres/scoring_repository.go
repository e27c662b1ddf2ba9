package postgres

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/scoring"
)

type teamScoreTableModel struct {
	TeamID        string    `db:"team_public_id"`
	Week          int       `db:"week"`
	TeamName      string    `db:"team_name"`
	StarterPoints float64   `db:"starter_points"`
	BenchPoints   float64   `db:"bench_points"`
	TotalPoints   float64   `db:"total_points"`
	Players       []byte    `db:"players"`
	CalculatedAt  time.Time `db:"calculated_at"`
}

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) UpsertTeamScore(ctx context.Context, item scoring.TeamScore) error {
	players, err := sonic.Marshal(item.Players)
	if err != nil {
		return fmt.Errorf("encode player scores: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO team_scores (team_public_id, week, team_name, starter_points, bench_points, total_points, players, calculated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (team_public_id, week)
DO UPDATE SET team_name = EXCLUDED.team_name, starter_points = EXCLUDED.starter_points,
    bench_points = EXCLUDED.bench_points, total_points = EXCLUDED.total_points,
    players = EXCLUDED.players, calculated_at = EXCLUDED.calculated_at`,
		item.TeamID, item.Week, item.TeamName, item.StarterPoints, item.BenchPoints, item.TotalPoints,
		players, item.CalculatedAt)
	if err != nil {
		return fmt.Errorf("upsert team score: %w", err)
	}
	return nil
}

func (r *ScoringRepository) ListTeamScoresByWeek(ctx context.Context, week int) ([]scoring.TeamScore, error) {
	var rows []teamScoreTableModel
	err := r.db.SelectContext(ctx, &rows, `
SELECT team_public_id, week, team_name, starter_points, bench_points, total_points, players, calculated_at
FROM team_scores WHERE week = $1 ORDER BY team_public_id`, week)
	if err != nil {
		return nil, fmt.Errorf("list team scores by week: %w", err)
	}

	out := make([]scoring.TeamScore, 0, len(rows))
	for _, row := range rows {
		item, err := teamScoreFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *ScoringRepository) GetTeamScore(ctx context.Context, teamID string, week int) (scoring.TeamScore, bool, error) {
	var row teamScoreTableModel
	err := r.db.GetContext(ctx, &row, `
SELECT team_public_id, week, team_name, starter_points, bench_points, total_points, players, calculated_at
FROM team_scores WHERE team_public_id = $1 AND week = $2`, teamID, week)
	if err != nil {
		if isNotFound(err) {
			return scoring.TeamScore{}, false, nil
		}
		return scoring.TeamScore{}, false, fmt.Errorf("get team score: %w", err)
	}

	item, err := teamScoreFromRow(row)
	if err != nil {
		return scoring.TeamScore{}, false, err
	}
	return item, true, nil
}

func teamScoreFromRow(row teamScoreTableModel) (scoring.TeamScore, error) {
	item := scoring.TeamScore{
		Week:          row.Week,
		TeamID:        row.TeamID,
		TeamName:      row.TeamName,
		StarterPoints: row.StarterPoints,
		BenchPoints:   row.BenchPoints,
		TotalPoints:   row.TotalPoints,
		CalculatedAt:  row.CalculatedAt,
	}
	if len(row.Players) > 0 {
		if err := sonic.Unmarshal(row.Players, &item.Players); err != nil {
			return scoring.TeamScore{}, fmt.Errorf("decode player scores: %w", err)
		}
	}
	return item, nil
}
