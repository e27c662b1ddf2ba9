package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/player"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/rules"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/stats"
)

func rushingMilestones() []rules.Milestone {
	return []rules.Milestone{{Yards: 75, Points: 3}, {Yards: 100, Points: 7}, {Yards: 150, Points: 10}}
}

func TestScorePlayer_RBMilestoneScenario(t *testing.T) {
	t.Parallel()

	cfg := rules.Scoring{Rushing: rules.RushingRules{YardageMilestones: rushingMilestones()}}
	points, breakdown := ScorePlayer(stats.PlayerGameStats{RushYards: 160, RushTDs: 1}, player.PositionRB, cfg, nil)

	assert.Equal(t, 16.0, points, "6 (TD face value) + 10 (highest milestone)")
	require.Len(t, breakdown, 2)
	assert.Equal(t, 6.0, breakdown[0].Points)
	assert.Equal(t, 10.0, breakdown[1].Points)
}

func TestScorePlayer_QBPassingScenario(t *testing.T) {
	t.Parallel()

	cfg := rules.Scoring{Passing: rules.PassingRules{
		TDPoints:           4,
		InterceptionPoints: -1,
		YardageMilestones:  []rules.Milestone{{Yards: 250, Points: 3}, {Yards: 300, Points: 7}},
	}}
	points, _ := ScorePlayer(stats.PlayerGameStats{PassYards: 320, PassTDs: 2, Interceptions: 1}, player.PositionQB, cfg, nil)

	assert.Equal(t, 14.0, points, "8 (TD) + 7 (milestone) - 1 (INT)")
}

func TestScorePlayer_NonQBPassingTDUsesTrickPlayRate(t *testing.T) {
	t.Parallel()

	cfg := rules.Scoring{Passing: rules.PassingRules{TDPoints: 4, NonQBTDPoints: 8}}
	points, _ := ScorePlayer(stats.PlayerGameStats{PassTDs: 1}, player.PositionWR, cfg, nil)

	assert.Equal(t, 8.0, points)
}

func TestMilestoneBonus_ThresholdBoundaries(t *testing.T) {
	t.Parallel()

	table := rushingMilestones()

	assert.Equal(t, 3.0, milestoneBonus(75, table), "exactly at threshold earns it")
	assert.Equal(t, 0.0, milestoneBonus(74, table), "one unit below earns nothing")
	assert.Equal(t, 3.0, milestoneBonus(99, table), "below next tier keeps lower tier")
	assert.Equal(t, 7.0, milestoneBonus(100, table))
	assert.Equal(t, 10.0, milestoneBonus(500, table), "single highest tier, never a sum")
}

func TestScoreCombined_OnlyWhenIndividualThresholdsUnmet(t *testing.T) {
	t.Parallel()

	cfg := rules.Scoring{
		Rushing:   rules.RushingRules{YardageMilestones: rushingMilestones()},
		Receiving: rules.ReceivingRules{YardageMilestones: []rules.Milestone{{Yards: 75, Points: 3}}},
		Combined: rules.CombinedRules{Milestones: []rules.CombinedMilestone{
			{Yards: 100, Points: 5, RushUnder: 75, RecUnder: 75},
		}},
	}

	// 60 rush + 55 receive: neither individual threshold met, combined applies.
	points, _ := ScorePlayer(stats.PlayerGameStats{RushYards: 60, RecYards: 55}, player.PositionRB, cfg, nil)
	assert.Equal(t, 5.0, points)

	// 80 rush + 40 receive: rushing hit its own threshold, combined excluded.
	points, breakdown := ScorePlayer(stats.PlayerGameStats{RushYards: 80, RecYards: 40}, player.PositionRB, cfg, nil)
	assert.Equal(t, 3.0, points)
	for _, item := range breakdown {
		assert.NotEqual(t, "combined", item.Category)
	}
}

func TestScoreCombined_FirstConfiguredTierWins(t *testing.T) {
	t.Parallel()

	cfg := rules.Scoring{Combined: rules.CombinedRules{Milestones: []rules.CombinedMilestone{
		{Yards: 100, Points: 5, RushUnder: 75, RecUnder: 75},
		{Yards: 120, Points: 9, RushUnder: 75, RecUnder: 75},
	}}}

	// 130 total matches both tiers; configured order decides, then stop.
	points, breakdown := ScorePlayer(stats.PlayerGameStats{RushYards: 70, RecYards: 60}, player.PositionRB, cfg, nil)
	assert.Equal(t, 5.0, points)
	require.Len(t, breakdown, 1)
}

func TestScorePlayer_QBRushingTDBonus(t *testing.T) {
	t.Parallel()

	cfg := rules.Scoring{Rushing: rules.RushingRules{QBTDBonus: 2}}

	points, _ := ScorePlayer(stats.PlayerGameStats{RushTDs: 1}, player.PositionQB, cfg, nil)
	assert.Equal(t, 8.0, points, "6 face value + 2 QB bonus")

	points, _ = ScorePlayer(stats.PlayerGameStats{RushTDs: 1}, player.PositionRB, cfg, nil)
	assert.Equal(t, 6.0, points, "bonus is QB-only")
}

func TestScoreKicking_DistanceTiers(t *testing.T) {
	t.Parallel()

	cfg := rules.Scoring{Kicking: rules.KickingRules{
		FGUnder53Points:       3,
		FG53to54Points:        4,
		LongFGBonus:           2,
		FGMissedUnder40Points: -1,
		XPMissedPoints:        -1,
	}}

	points, _ := ScorePlayer(stats.PlayerGameStats{
		FGMadeUnder53:   2,
		FGMade53to54:    1,
		FGMade55Plus:    1,
		FGMissedUnder40: 1,
		FGMissed40Plus:  2,
		XPMade:          3,
		XPMissed:        1,
	}, player.PositionK, cfg, nil)

	// 2*3 + 1*4 + 1*(3+2) - 1 + 3*1 - 1 = 16; missed 40+ FGs cost nothing.
	assert.Equal(t, 16.0, points)
}

func TestScorePlayer_FumblesLost(t *testing.T) {
	t.Parallel()

	cfg := rules.Scoring{Turnovers: rules.TurnoverRules{FumbleLostPoints: -2}}
	points, _ := ScorePlayer(stats.PlayerGameStats{FumblesLost: 2}, player.PositionRB, cfg, nil)
	assert.Equal(t, -4.0, points)
}

func TestScorePlayer_BigPlayEvents(t *testing.T) {
	t.Parallel()

	cfg := rules.Scoring{BigPlay: rules.BigPlayRules{RushingTDPoints: 3}}
	events := []stats.GameEvent{
		{Type: stats.EventRushingTD, Yards: 62},
		{Type: stats.EventRushingTD, Yards: 12},
		{Type: stats.EventBonus, Points: 1.5},
	}

	points, _ := ScorePlayer(stats.PlayerGameStats{}, player.PositionRB, cfg, events)
	assert.Equal(t, 4.5, points, "one 50+ bonus plus verbatim manual bonus")
}

func TestScoreDefense(t *testing.T) {
	t.Parallel()

	cfg := rules.Scoring{Defense: rules.DefenseRules{
		ShutoutPoints:        10,
		InterceptionPoints:   2,
		FumbleRecoveryPoints: 2,
		BlockedKickPoints:    2,
	}}

	points, _ := ScoreDefense(stats.DefenseGameStats{
		PointsAllowed:    0,
		Interceptions:    2,
		FumbleRecoveries: 1,
		ReturnTDs:        1,
		Safeties:         1,
	}, cfg, nil)

	// 10 shutout + 4 INT + 2 FR + 6 TD + 2 safety = 24.
	assert.Equal(t, 24.0, points)
}

func TestScorePlayer_Idempotent(t *testing.T) {
	t.Parallel()

	cfg := rules.Scoring{
		Passing: rules.PassingRules{TDPoints: 4, YardageMilestones: []rules.Milestone{{Yards: 250, Points: 3.33}}},
	}
	s := stats.PlayerGameStats{PassYards: 260, PassTDs: 3}

	first, firstItems := ScorePlayer(s, player.PositionQB, cfg, nil)
	second, secondItems := ScorePlayer(s, player.PositionQB, cfg, nil)

	assert.Equal(t, first, second)
	assert.Equal(t, firstItems, secondItems)
	assert.Equal(t, Round2(first), first, "total is rounded at calculation")
}

func TestScorePlayer_MissingStatsScoreZero(t *testing.T) {
	t.Parallel()

	points, breakdown := ScorePlayer(stats.PlayerGameStats{}, player.PositionTE, rules.Scoring{}, nil)
	assert.Zero(t, points)
	assert.Empty(t, breakdown)
}
