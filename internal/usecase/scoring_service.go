package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/lineup"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/player"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/roster"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/rules"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/schedule"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/scoring"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/stats"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/team"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/platform/logging"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/platform/resilience"
)

// ScoringService computes weekly fantasy scores for every team from
// the active rule set, the week's lineups, and ingested stats. Scores
// are derived data; computing twice for the same inputs yields the
// same totals.
type ScoringService struct {
	teamRepo     team.Repository
	rosterRepo   roster.Repository
	playerRepo   player.Repository
	lineupRepo   lineup.Repository
	scheduleRepo schedule.Repository
	statsRepo    stats.Repository
	rulesRepo    rules.Repository
	scoreRepo    scoring.Repository
	logger       *logging.Logger
	persistGroup resilience.SingleFlight
	now          func() time.Time
}

func NewScoringService(
	teamRepo team.Repository,
	rosterRepo roster.Repository,
	playerRepo player.Repository,
	lineupRepo lineup.Repository,
	scheduleRepo schedule.Repository,
	statsRepo stats.Repository,
	rulesRepo rules.Repository,
	scoreRepo scoring.Repository,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		teamRepo:     teamRepo,
		rosterRepo:   rosterRepo,
		playerRepo:   playerRepo,
		lineupRepo:   lineupRepo,
		scheduleRepo: scheduleRepo,
		statsRepo:    statsRepo,
		rulesRepo:    rulesRepo,
		scoreRepo:    scoreRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// CanCompute checks every input scoring needs for the week. On failure
// it returns a PreconditionError itemizing what is missing, so the
// caller can report all gaps at once instead of one per attempt.
func (s *ScoringService) CanCompute(ctx context.Context, week int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.CanCompute")
	defer span.End()

	if week < 1 {
		return fmt.Errorf("%w: week must be positive", ErrInvalidInput)
	}

	var missing []string

	if _, exists, err := s.rulesRepo.GetActive(ctx); err != nil {
		return fmt.Errorf("get active rule set: %w", err)
	} else if !exists {
		missing = append(missing, "active rule set")
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}
	if len(teams) == 0 {
		missing = append(missing, "teams")
	}

	entries, err := s.lineupRepo.ListByWeek(ctx, week)
	if err != nil {
		return fmt.Errorf("list lineup entries: %w", err)
	}
	if len(entries) == 0 {
		missing = append(missing, "lineup entries for week "+strconv.Itoa(week))
	}

	games, err := s.scheduleRepo.ListByWeek(ctx, week)
	if err != nil {
		return fmt.Errorf("list games: %w", err)
	}
	if len(games) == 0 {
		missing = append(missing, "games for week "+strconv.Itoa(week))
	}

	playerStats, err := s.statsRepo.ListPlayerStatsByWeek(ctx, week)
	if err != nil {
		return fmt.Errorf("list player stats: %w", err)
	}
	if len(playerStats) == 0 {
		missing = append(missing, "player stats for week "+strconv.Itoa(week))
	}

	if len(missing) > 0 {
		return &PreconditionError{Missing: missing}
	}
	return nil
}

// ComputeTeamScores scores every team for the week. Teams are scored
// concurrently; output order is deterministic regardless.
func (s *ScoringService) ComputeTeamScores(ctx context.Context, week int) ([]scoring.TeamScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ComputeTeamScores")
	defer span.End()

	if err := s.CanCompute(ctx, week); err != nil {
		return nil, err
	}

	env, err := s.loadWeek(ctx, week)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })

	scores, err := iter.MapErr(teams, func(tm *team.Team) (scoring.TeamScore, error) {
		return s.scoreTeam(ctx, *tm, env)
	})
	if err != nil {
		return nil, err
	}

	return scores, nil
}

// PersistTeamScores computes and stores the week's scores. Concurrent
// calls for the same week collapse into one computation.
func (s *ScoringService) PersistTeamScores(ctx context.Context, week int) ([]scoring.TeamScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.PersistTeamScores")
	defer span.End()

	val, err, shared := s.persistGroup.Do("persist-week-"+strconv.Itoa(week), func() (any, error) {
		scores, err := s.ComputeTeamScores(ctx, week)
		if err != nil {
			return nil, err
		}
		// Compute output carries no timestamp; the stamp marks when the
		// rows were written, not when the math ran.
		calculatedAt := s.now().UTC()
		for i := range scores {
			scores[i].CalculatedAt = calculatedAt
			for j := range scores[i].Players {
				scores[i].Players[j].CalculatedAt = calculatedAt
			}
			if err := s.scoreRepo.UpsertTeamScore(ctx, scores[i]); err != nil {
				return nil, fmt.Errorf("upsert team score for %s: %w", scores[i].TeamID, err)
			}
		}
		return scores, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.DebugContext(ctx, "score persistence deduplicated", "week", week)
	}

	return val.([]scoring.TeamScore), nil
}

func (s *ScoringService) GetTeamScore(ctx context.Context, teamID string, week int) (scoring.TeamScore, error) {
	item, exists, err := s.scoreRepo.GetTeamScore(ctx, teamID, week)
	if err != nil {
		return scoring.TeamScore{}, fmt.Errorf("get team score: %w", err)
	}
	if !exists {
		return scoring.TeamScore{}, fmt.Errorf("%w: no score for team=%s week=%d", ErrNotFound, teamID, week)
	}
	return item, nil
}

func (s *ScoringService) ListWeekScores(ctx context.Context, week int) ([]scoring.TeamScore, error) {
	items, err := s.scoreRepo.ListTeamScoresByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("list team scores: %w", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].TeamID < items[j].TeamID })
	return items, nil
}

// weekEnv is everything shared across teams for one week's computation,
// loaded once up front so per-team scoring touches no repositories
// beyond its own roster and lineup.
type weekEnv struct {
	week            int
	cfg             rules.Scoring
	playerStats     map[string]stats.PlayerGameStats
	defenseStats    map[string]stats.DefenseGameStats
	eventsByEntity  map[string][]stats.GameEvent
	allGamesFinal   bool
	minYardsAllowed int
	hasDefenseStats bool
}

func (s *ScoringService) loadWeek(ctx context.Context, week int) (weekEnv, error) {
	active, exists, err := s.rulesRepo.GetActive(ctx)
	if err != nil {
		return weekEnv{}, fmt.Errorf("get active rule set: %w", err)
	}
	if !exists {
		return weekEnv{}, &PreconditionError{Missing: []string{"active rule set"}}
	}
	cfg, err := active.Scoring()
	if err != nil {
		return weekEnv{}, fmt.Errorf("decode active rule set: %w", err)
	}

	playerStats, err := s.statsRepo.ListPlayerStatsByWeek(ctx, week)
	if err != nil {
		return weekEnv{}, fmt.Errorf("list player stats: %w", err)
	}
	statsByPlayer := make(map[string]stats.PlayerGameStats, len(playerStats))
	for _, ps := range playerStats {
		statsByPlayer[ps.PlayerID] = ps
	}

	defenseStats, err := s.statsRepo.ListDefenseStatsByWeek(ctx, week)
	if err != nil {
		return weekEnv{}, fmt.Errorf("list defense stats: %w", err)
	}
	defenseByTeam := make(map[string]stats.DefenseGameStats, len(defenseStats))
	minYards := 0
	for i, ds := range defenseStats {
		defenseByTeam[ds.NFLTeam] = ds
		if i == 0 || ds.YardsAllowed < minYards {
			minYards = ds.YardsAllowed
		}
	}

	events, err := s.statsRepo.ListEventsByWeek(ctx, week)
	if err != nil {
		return weekEnv{}, fmt.Errorf("list game events: %w", err)
	}
	eventsByEntity := make(map[string][]stats.GameEvent)
	for _, ev := range events {
		eventsByEntity[ev.EntityID] = append(eventsByEntity[ev.EntityID], ev)
	}

	games, err := s.scheduleRepo.ListByWeek(ctx, week)
	if err != nil {
		return weekEnv{}, fmt.Errorf("list games: %w", err)
	}
	allFinal := len(games) > 0
	for _, g := range games {
		if !schedule.IsFinalStatus(schedule.NormalizeStatus(g.Status)) {
			allFinal = false
			break
		}
	}

	return weekEnv{
		week:            week,
		cfg:             cfg,
		playerStats:     statsByPlayer,
		defenseStats:    defenseByTeam,
		eventsByEntity:  eventsByEntity,
		allGamesFinal:   allFinal,
		minYardsAllowed: minYards,
		hasDefenseStats: len(defenseStats) > 0,
	}, nil
}

func (s *ScoringService) scoreTeam(ctx context.Context, tm team.Team, env weekEnv) (scoring.TeamScore, error) {
	rosterPlayers, err := s.rosterRepo.ListByTeam(ctx, tm.ID)
	if err != nil {
		return scoring.TeamScore{}, fmt.Errorf("list roster for %s: %w", tm.ID, err)
	}

	entries, err := s.lineupRepo.ListByTeamWeek(ctx, tm.ID, env.week)
	if err != nil {
		return scoring.TeamScore{}, fmt.Errorf("list lineup for %s: %w", tm.ID, err)
	}
	starterByRosterPlayer := make(map[string]bool, len(entries))
	for _, entry := range entries {
		starterByRosterPlayer[entry.RosterPlayerID] = entry.IsStarter()
	}

	playerIDs := make([]string, 0, len(rosterPlayers))
	for _, rp := range rosterPlayers {
		playerIDs = append(playerIDs, rp.PlayerID)
	}
	players, err := s.playerRepo.ListByIDs(ctx, playerIDs)
	if err != nil {
		return scoring.TeamScore{}, fmt.Errorf("list players for %s: %w", tm.ID, err)
	}
	playersByID := make(map[string]player.Player, len(players))
	for _, p := range players {
		playersByID[p.ID] = p
	}

	result := scoring.TeamScore{
		Week:     env.week,
		TeamID:   tm.ID,
		TeamName: tm.Name,
	}

	for _, rp := range rosterPlayers {
		p, ok := playersByID[rp.PlayerID]
		if !ok {
			continue
		}
		isStarter := starterByRosterPlayer[rp.ID]

		var points float64
		var breakdown []scoring.LineItem
		if p.Position == player.PositionDEF {
			points, breakdown = s.scoreDefensePlayer(p, isStarter, env)
		} else {
			points, breakdown = scoring.ScorePlayer(env.playerStats[p.ID], p.Position, env.cfg, env.eventsByEntity[p.ID])
		}

		result.Players = append(result.Players, scoring.PlayerScore{
			Week:           env.week,
			TeamID:         tm.ID,
			RosterPlayerID: rp.ID,
			PlayerID:       p.ID,
			PlayerName:     p.Name,
			Position:       p.Position,
			NFLTeam:        p.NFLTeam,
			IsStarter:      isStarter,
			Points:         points,
			Breakdown:      breakdown,
		})

		if isStarter {
			result.StarterPoints += points
		} else {
			result.BenchPoints += points
		}
	}

	sort.SliceStable(result.Players, func(i, j int) bool {
		a, b := result.Players[i], result.Players[j]
		if a.IsStarter != b.IsStarter {
			return a.IsStarter
		}
		return a.PlayerName < b.PlayerName
	})

	result.StarterPoints = scoring.Round2(result.StarterPoints)
	result.BenchPoints = scoring.Round2(result.BenchPoints)
	result.TotalPoints = scoring.Round2(result.StarterPoints + result.BenchPoints)

	return result, nil
}

// scoreDefensePlayer scores a rostered defense. The fewest-yards bonus
// is slate-wide: it waits until every game of the week is final, then
// goes to each starting defense tied for the minimum.
func (s *ScoringService) scoreDefensePlayer(p player.Player, isStarter bool, env weekEnv) (float64, []scoring.LineItem) {
	ds, ok := env.defenseStats[p.NFLTeam]
	if !ok {
		return 0, nil
	}

	points, breakdown := scoring.ScoreDefense(ds, env.cfg, env.eventsByEntity[p.NFLTeam])

	if isStarter && env.allGamesFinal && env.hasDefenseStats &&
		ds.YardsAllowed == env.minYardsAllowed && env.cfg.Defense.FewestYardsAllowedPoints != 0 {
		item := scoring.FewestYardsItem(ds.YardsAllowed, env.cfg)
		breakdown = append(breakdown, item)
		points = scoring.Round2(points + item.Points)
	}

	return points, breakdown
}
