package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/stats"
)

type playerStatsTableModel struct {
	PlayerID string `db:"player_public_id"`
	Week     int    `db:"week"`

	PassCompletions int `db:"pass_completions"`
	PassAttempts    int `db:"pass_attempts"`
	PassYards       int `db:"pass_yards"`
	PassTDs         int `db:"pass_tds"`
	Interceptions   int `db:"interceptions"`
	PassTwoPoint    int `db:"pass_two_point"`

	RushYards    int `db:"rush_yards"`
	RushTDs      int `db:"rush_tds"`
	RushTwoPoint int `db:"rush_two_point"`

	Receptions  int `db:"receptions"`
	RecYards    int `db:"rec_yards"`
	RecTDs      int `db:"rec_tds"`
	RecTwoPoint int `db:"rec_two_point"`

	FumblesLost int `db:"fumbles_lost"`

	FGMadeUnder53   int `db:"fg_made_under_53"`
	FGMade53to54    int `db:"fg_made_53_to_54"`
	FGMade55Plus    int `db:"fg_made_55_plus"`
	FGMissedUnder40 int `db:"fg_missed_under_40"`
	FGMissed40Plus  int `db:"fg_missed_40_plus"`
	FGLongest       int `db:"fg_longest"`
	XPMade          int `db:"xp_made"`
	XPMissed        int `db:"xp_missed"`

	UpdatedAt time.Time `db:"updated_at"`
}

type defenseStatsTableModel struct {
	NFLTeam string `db:"nfl_team"`
	Week    int    `db:"week"`

	PointsAllowed    int `db:"points_allowed"`
	YardsAllowed     int `db:"yards_allowed"`
	Sacks            int `db:"sacks"`
	Interceptions    int `db:"interceptions"`
	FumbleRecoveries int `db:"fumble_recoveries"`
	BlockedKicks     int `db:"blocked_kicks"`
	DefensiveTDs     int `db:"defensive_tds"`
	ReturnTDs        int `db:"return_tds"`
	Safeties         int `db:"safeties"`

	UpdatedAt time.Time `db:"updated_at"`
}

type gameEventTableModel struct {
	ID       string  `db:"public_id"`
	Week     int     `db:"week"`
	EntityID string  `db:"entity_id"`
	Type     string  `db:"event_type"`
	Yards    int     `db:"yards"`
	Points   float64 `db:"points"`
	Note     string  `db:"note"`
}

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

const playerStatsColumns = `player_public_id, week,
pass_completions, pass_attempts, pass_yards, pass_tds, interceptions, pass_two_point,
rush_yards, rush_tds, rush_two_point,
receptions, rec_yards, rec_tds, rec_two_point,
fumbles_lost,
fg_made_under_53, fg_made_53_to_54, fg_made_55_plus, fg_missed_under_40, fg_missed_40_plus, fg_longest,
xp_made, xp_missed, updated_at`

func (r *StatsRepository) GetPlayerStats(ctx context.Context, playerID string, week int) (stats.PlayerGameStats, bool, error) {
	var row playerStatsTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT `+playerStatsColumns+` FROM player_game_stats WHERE player_public_id = $1 AND week = $2`,
		playerID, week)
	if err != nil {
		if isNotFound(err) {
			return stats.PlayerGameStats{}, false, nil
		}
		return stats.PlayerGameStats{}, false, fmt.Errorf("get player stats: %w", err)
	}
	return playerStatsFromRow(row), true, nil
}

func (r *StatsRepository) ListPlayerStatsByWeek(ctx context.Context, week int) ([]stats.PlayerGameStats, error) {
	var rows []playerStatsTableModel
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+playerStatsColumns+` FROM player_game_stats WHERE week = $1 ORDER BY player_public_id`, week)
	if err != nil {
		return nil, fmt.Errorf("list player stats by week: %w", err)
	}

	out := make([]stats.PlayerGameStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerStatsFromRow(row))
	}
	return out, nil
}

func (r *StatsRepository) UpsertPlayerStats(ctx context.Context, item stats.PlayerGameStats) error {
	_, err := r.db.NamedExecContext(ctx, `
INSERT INTO player_game_stats (`+playerStatsColumns+`)
VALUES (:player_public_id, :week,
    :pass_completions, :pass_attempts, :pass_yards, :pass_tds, :interceptions, :pass_two_point,
    :rush_yards, :rush_tds, :rush_two_point,
    :receptions, :rec_yards, :rec_tds, :rec_two_point,
    :fumbles_lost,
    :fg_made_under_53, :fg_made_53_to_54, :fg_made_55_plus, :fg_missed_under_40, :fg_missed_40_plus, :fg_longest,
    :xp_made, :xp_missed, NOW())
ON CONFLICT (player_public_id, week)
DO UPDATE SET
    pass_completions = EXCLUDED.pass_completions, pass_attempts = EXCLUDED.pass_attempts,
    pass_yards = EXCLUDED.pass_yards, pass_tds = EXCLUDED.pass_tds,
    interceptions = EXCLUDED.interceptions, pass_two_point = EXCLUDED.pass_two_point,
    rush_yards = EXCLUDED.rush_yards, rush_tds = EXCLUDED.rush_tds, rush_two_point = EXCLUDED.rush_two_point,
    receptions = EXCLUDED.receptions, rec_yards = EXCLUDED.rec_yards,
    rec_tds = EXCLUDED.rec_tds, rec_two_point = EXCLUDED.rec_two_point,
    fumbles_lost = EXCLUDED.fumbles_lost,
    fg_made_under_53 = EXCLUDED.fg_made_under_53, fg_made_53_to_54 = EXCLUDED.fg_made_53_to_54,
    fg_made_55_plus = EXCLUDED.fg_made_55_plus, fg_missed_under_40 = EXCLUDED.fg_missed_under_40,
    fg_missed_40_plus = EXCLUDED.fg_missed_40_plus, fg_longest = EXCLUDED.fg_longest,
    xp_made = EXCLUDED.xp_made, xp_missed = EXCLUDED.xp_missed, updated_at = NOW()`,
		playerStatsToRow(item))
	if err != nil {
		return fmt.Errorf("upsert player stats: %w", err)
	}
	return nil
}

func (r *StatsRepository) GetDefenseStats(ctx context.Context, nflTeam string, week int) (stats.DefenseGameStats, bool, error) {
	var row defenseStatsTableModel
	err := r.db.GetContext(ctx, &row, `
SELECT nfl_team, week, points_allowed, yards_allowed, sacks, interceptions,
    fumble_recoveries, blocked_kicks, defensive_tds, return_tds, safeties, updated_at
FROM defense_game_stats WHERE nfl_team = $1 AND week = $2`, nflTeam, week)
	if err != nil {
		if isNotFound(err) {
			return stats.DefenseGameStats{}, false, nil
		}
		return stats.DefenseGameStats{}, false, fmt.Errorf("get defense stats: %w", err)
	}
	return defenseStatsFromRow(row), true, nil
}

func (r *StatsRepository) ListDefenseStatsByWeek(ctx context.Context, week int) ([]stats.DefenseGameStats, error) {
	var rows []defenseStatsTableModel
	err := r.db.SelectContext(ctx, &rows, `
SELECT nfl_team, week, points_allowed, yards_allowed, sacks, interceptions,
    fumble_recoveries, blocked_kicks, defensive_tds, return_tds, safeties, updated_at
FROM defense_game_stats WHERE week = $1 ORDER BY nfl_team`, week)
	if err != nil {
		return nil, fmt.Errorf("list defense stats by week: %w", err)
	}

	out := make([]stats.DefenseGameStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, defenseStatsFromRow(row))
	}
	return out, nil
}

func (r *StatsRepository) UpsertDefenseStats(ctx context.Context, item stats.DefenseGameStats) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO defense_game_stats (nfl_team, week, points_allowed, yards_allowed, sacks, interceptions,
    fumble_recoveries, blocked_kicks, defensive_tds, return_tds, safeties, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
ON CONFLICT (nfl_team, week)
DO UPDATE SET points_allowed = EXCLUDED.points_allowed, yards_allowed = EXCLUDED.yards_allowed,
    sacks = EXCLUDED.sacks, interceptions = EXCLUDED.interceptions,
    fumble_recoveries = EXCLUDED.fumble_recoveries, blocked_kicks = EXCLUDED.blocked_kicks,
    defensive_tds = EXCLUDED.defensive_tds, return_tds = EXCLUDED.return_tds,
    safeties = EXCLUDED.safeties, updated_at = NOW()`,
		item.NFLTeam, item.Week, item.PointsAllowed, item.YardsAllowed, item.Sacks, item.Interceptions,
		item.FumbleRecoveries, item.BlockedKicks, item.DefensiveTDs, item.ReturnTDs, item.Safeties)
	if err != nil {
		return fmt.Errorf("upsert defense stats: %w", err)
	}
	return nil
}

func (r *StatsRepository) ListEventsByWeek(ctx context.Context, week int) ([]stats.GameEvent, error) {
	var rows []gameEventTableModel
	err := r.db.SelectContext(ctx, &rows, `
SELECT public_id, week, entity_id, event_type, yards, points, note
FROM game_events WHERE week = $1 ORDER BY public_id`, week)
	if err != nil {
		return nil, fmt.Errorf("list game events by week: %w", err)
	}

	out := make([]stats.GameEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, stats.GameEvent{
			ID:       row.ID,
			Week:     row.Week,
			EntityID: row.EntityID,
			Type:     row.Type,
			Yards:    row.Yards,
			Points:   row.Points,
			Note:     row.Note,
		})
	}
	return out, nil
}

func (r *StatsRepository) AddEvent(ctx context.Context, item stats.GameEvent) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO game_events (public_id, week, entity_id, event_type, yards, points, note)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.Week, item.EntityID, item.Type, item.Yards, item.Points, item.Note)
	if err != nil {
		return fmt.Errorf("add game event: %w", err)
	}
	return nil
}

func playerStatsFromRow(row playerStatsTableModel) stats.PlayerGameStats {
	return stats.PlayerGameStats{
		PlayerID:        row.PlayerID,
		Week:            row.Week,
		PassCompletions: row.PassCompletions,
		PassAttempts:    row.PassAttempts,
		PassYards:       row.PassYards,
		PassTDs:         row.PassTDs,
		Interceptions:   row.Interceptions,
		PassTwoPoint:    row.PassTwoPoint,
		RushYards:       row.RushYards,
		RushTDs:         row.RushTDs,
		RushTwoPoint:    row.RushTwoPoint,
		Receptions:      row.Receptions,
		RecYards:        row.RecYards,
		RecTDs:          row.RecTDs,
		RecTwoPoint:     row.RecTwoPoint,
		FumblesLost:     row.FumblesLost,
		FGMadeUnder53:   row.FGMadeUnder53,
		FGMade53to54:    row.FGMade53to54,
		FGMade55Plus:    row.FGMade55Plus,
		FGMissedUnder40: row.FGMissedUnder40,
		FGMissed40Plus:  row.FGMissed40Plus,
		FGLongest:       row.FGLongest,
		XPMade:          row.XPMade,
		XPMissed:        row.XPMissed,
		UpdatedAt:       row.UpdatedAt,
	}
}

func playerStatsToRow(item stats.PlayerGameStats) playerStatsTableModel {
	return playerStatsTableModel{
		PlayerID:        item.PlayerID,
		Week:            item.Week,
		PassCompletions: item.PassCompletions,
		PassAttempts:    item.PassAttempts,
		PassYards:       item.PassYards,
		PassTDs:         item.PassTDs,
		Interceptions:   item.Interceptions,
		PassTwoPoint:    item.PassTwoPoint,
		RushYards:       item.RushYards,
		RushTDs:         item.RushTDs,
		RushTwoPoint:    item.RushTwoPoint,
		Receptions:      item.Receptions,
		RecYards:        item.RecYards,
		RecTDs:          item.RecTDs,
		RecTwoPoint:     item.RecTwoPoint,
		FumblesLost:     item.FumblesLost,
		FGMadeUnder53:   item.FGMadeUnder53,
		FGMade53to54:    item.FGMade53to54,
		FGMade55Plus:    item.FGMade55Plus,
		FGMissedUnder40: item.FGMissedUnder40,
		FGMissed40Plus:  item.FGMissed40Plus,
		FGLongest:       item.FGLongest,
		XPMade:          item.XPMade,
		XPMissed:        item.XPMissed,
	}
}

func defenseStatsFromRow(row defenseStatsTableModel) stats.DefenseGameStats {
	return stats.DefenseGameStats{
		NFLTeam:          row.NFLTeam,
		Week:             row.Week,
		PointsAllowed:    row.PointsAllowed,
		YardsAllowed:     row.YardsAllowed,
		Sacks:            row.Sacks,
		Interceptions:    row.Interceptions,
		FumbleRecoveries: row.FumbleRecoveries,
		BlockedKicks:     row.BlockedKicks,
		DefensiveTDs:     row.DefensiveTDs,
		ReturnTDs:        row.ReturnTDs,
		Safeties:         row.Safeties,
		UpdatedAt:        row.UpdatedAt,
	}
}
