package memory

import (
	"time"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/player"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/roster"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/rules"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/schedule"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/team"
)

const (
	TeamIDGridironers = "team-gridironers"
	TeamIDBlitzkrieg  = "team-blitzkrieg"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDGridironers, Name: "The Gridironers", OwnerID: "owner-1"},
		{ID: TeamIDBlitzkrieg, Name: "Blitzkrieg Bop", OwnerID: "owner-2"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "p-qb-01", Name: "Jalen Hurts", Position: player.PositionQB, NFLTeam: "PHI"},
		{ID: "p-qb-02", Name: "Josh Allen", Position: player.PositionQB, NFLTeam: "BUF"},
		{ID: "p-rb-01", Name: "Saquon Barkley", Position: player.PositionRB, NFLTeam: "PHI"},
		{ID: "p-rb-02", Name: "Derrick Henry", Position: player.PositionRB, NFLTeam: "BAL"},
		{ID: "p-rb-03", Name: "Bijan Robinson", Position: player.PositionRB, NFLTeam: "ATL"},
		{ID: "p-wr-01", Name: "Justin Jefferson", Position: player.PositionWR, NFLTeam: "MIN"},
		{ID: "p-wr-02", Name: "CeeDee Lamb", Position: player.PositionWR, NFLTeam: "DAL"},
		{ID: "p-te-01", Name: "Travis Kelce", Position: player.PositionTE, NFLTeam: "KC"},
		{ID: "p-te-02", Name: "Sam LaPorta", Position: player.PositionTE, NFLTeam: "DET"},
		{ID: "p-k-01", Name: "Justin Tucker", Position: player.PositionK, NFLTeam: "BAL"},
		{ID: "p-k-02", Name: "Harrison Butker", Position: player.PositionK, NFLTeam: "KC"},
		{ID: "p-def-01", Name: "Eagles D/ST", Position: player.PositionDEF, NFLTeam: "PHI"},
		{ID: "p-def-02", Name: "Ravens D/ST", Position: player.PositionDEF, NFLTeam: "BAL"},
	}
}

func SeedRoster() []roster.RosterPlayer {
	return []roster.RosterPlayer{
		{ID: "rp-01", TeamID: TeamIDGridironers, PlayerID: "p-qb-01"},
		{ID: "rp-02", TeamID: TeamIDGridironers, PlayerID: "p-rb-01"},
		{ID: "rp-03", TeamID: TeamIDGridironers, PlayerID: "p-rb-03"},
		{ID: "rp-04", TeamID: TeamIDGridironers, PlayerID: "p-wr-01"},
		{ID: "rp-05", TeamID: TeamIDGridironers, PlayerID: "p-te-01"},
		{ID: "rp-06", TeamID: TeamIDGridironers, PlayerID: "p-k-01"},
		{ID: "rp-07", TeamID: TeamIDGridironers, PlayerID: "p-def-01"},
		{ID: "rp-11", TeamID: TeamIDBlitzkrieg, PlayerID: "p-qb-02"},
		{ID: "rp-12", TeamID: TeamIDBlitzkrieg, PlayerID: "p-rb-02"},
		{ID: "rp-13", TeamID: TeamIDBlitzkrieg, PlayerID: "p-wr-02"},
		{ID: "rp-14", TeamID: TeamIDBlitzkrieg, PlayerID: "p-te-02"},
		{ID: "rp-15", TeamID: TeamIDBlitzkrieg, PlayerID: "p-k-02"},
		{ID: "rp-16", TeamID: TeamIDBlitzkrieg, PlayerID: "p-def-02"},
	}
}

func SeedGames(week int) []schedule.Game {
	kickoff := time.Date(2026, 9, 13, 17, 0, 0, 0, time.UTC)
	return []schedule.Game{
		{ID: "g-phi-dal", Week: week, HomeTeam: "PHI", AwayTeam: "DAL", Kickoff: kickoff, Status: schedule.StatusScheduled},
		{ID: "g-buf-bal", Week: week, HomeTeam: "BUF", AwayTeam: "BAL", Kickoff: kickoff, Status: schedule.StatusScheduled},
		{ID: "g-min-atl", Week: week, HomeTeam: "MIN", AwayTeam: "ATL", Kickoff: kickoff.Add(3 * time.Hour), Status: schedule.StatusScheduled},
		{ID: "g-kc-det", Week: week, HomeTeam: "KC", AwayTeam: "DET", Kickoff: kickoff.Add(7 * time.Hour), Status: schedule.StatusScheduled},
	}
}

func SeedRuleSets() []rules.RuleSet {
	return []rules.RuleSet{
		{
			ID:     "rs-default",
			Name:   "Wildcard Default",
			Active: true,
			Rules: []byte(`{
				"passing": {
					"tdPoints": 4,
					"nonQbTdPoints": 8,
					"interceptionPoints": -1,
					"twoPointPoints": 2,
					"yardageMilestones": [{"yards": 250, "points": 3}, {"yards": 300, "points": 7}, {"yards": 400, "points": 10}]
				},
				"rushing": {
					"qbTdBonus": 2,
					"twoPointPoints": 2,
					"yardageMilestones": [{"yards": 75, "points": 3}, {"yards": 100, "points": 7}, {"yards": 150, "points": 10}]
				},
				"receiving": {
					"twoPointPoints": 2,
					"yardageMilestones": [{"yards": 75, "points": 3}, {"yards": 100, "points": 7}, {"yards": 150, "points": 10}]
				},
				"rushReceiveCombined": {
					"milestones": [{"yards": 100, "points": 5, "rushUnder": 75, "recUnder": 75}]
				},
				"turnovers": {"fumbleLostPoints": -2},
				"kicking": {
					"fgUnder53Points": 3,
					"fg53To54Points": 4,
					"longFgBonus": 2,
					"fgMissedUnder40Points": -1,
					"xpMissedPoints": -1
				},
				"defense": {
					"shutoutPoints": 10,
					"interceptionPoints": 2,
					"fumbleRecoveryPoints": 2,
					"blockedKickPoints": 2,
					"fewestYardsAllowedPoints": 5
				},
				"bigPlay": {"passingTdPoints": 3, "rushingTdPoints": 3, "receivingTdPoints": 3}
			}`),
			UpdatedAt: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}
