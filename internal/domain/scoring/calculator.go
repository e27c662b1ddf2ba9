package scoring

import (
	"math"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/player"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/rules"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/stats"
)

// Face values fixed by the league, independent of the uploaded rule set.
const (
	touchdownFaceValue  = 6.0
	safetyFaceValue     = 2.0
	extraPointFaceValue = 1.0
	bigPlayMinYards     = 50
)

const manualBonusLabel = "manual bonus"

// Round2 rounds to two decimal places. Every emitted total goes through it
// so repeated computation is exactly equal, not merely close.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ScorePlayer converts one player's weekly box score into fantasy points
// under the given rule set. Pure: depends only on its arguments.
func ScorePlayer(s stats.PlayerGameStats, pos player.Position, cfg rules.Scoring, events []stats.GameEvent) (float64, []LineItem) {
	var items []LineItem

	items = scorePassing(items, s, pos, cfg.Passing)
	items = scoreRushing(items, s, pos, cfg.Rushing)
	items = scoreReceiving(items, s, cfg.Receiving)
	items = scoreCombined(items, s, cfg.Combined)
	if s.FumblesLost > 0 {
		items = addItem(items, "turnovers", "fumbles lost", float64(s.FumblesLost), float64(s.FumblesLost)*cfg.Turnovers.FumbleLostPoints)
	}
	items = scoreKicking(items, s, cfg.Kicking)
	items = scoreEvents(items, events, cfg.BigPlay)

	return sumItems(items), items
}

// ScoreDefense converts a team defense's weekly box score into fantasy
// points. The fewest-yards-allowed bonus is slate-wide and applied by the
// caller once all games of the week are final.
func ScoreDefense(d stats.DefenseGameStats, cfg rules.Scoring, events []stats.GameEvent) (float64, []LineItem) {
	var items []LineItem

	if d.PointsAllowed == 0 {
		items = addItem(items, "defense", "shutout", 0, cfg.Defense.ShutoutPoints)
	}
	if d.Interceptions > 0 {
		items = addItem(items, "defense", "interceptions", float64(d.Interceptions), float64(d.Interceptions)*cfg.Defense.InterceptionPoints)
	}
	if d.FumbleRecoveries > 0 {
		items = addItem(items, "defense", "fumble recoveries", float64(d.FumbleRecoveries), float64(d.FumbleRecoveries)*cfg.Defense.FumbleRecoveryPoints)
	}
	if d.BlockedKicks > 0 {
		items = addItem(items, "defense", "blocked kicks", float64(d.BlockedKicks), float64(d.BlockedKicks)*cfg.Defense.BlockedKickPoints)
	}
	if scores := d.DefensiveTDs + d.ReturnTDs; scores > 0 {
		items = addItem(items, "defense", "touchdowns", float64(scores), float64(scores)*touchdownFaceValue)
	}
	if d.Safeties > 0 {
		items = addItem(items, "defense", "safeties", float64(d.Safeties), float64(d.Safeties)*safetyFaceValue)
	}
	items = scoreEvents(items, events, rules.BigPlayRules{})

	return sumItems(items), items
}

// FewestYardsItem is the slate-wide bonus line appended to every starting
// defense tied for the minimum yards allowed.
func FewestYardsItem(yardsAllowed int, cfg rules.Scoring) LineItem {
	return LineItem{
		Category: "defense",
		Stat:     "fewest yards allowed",
		Value:    float64(yardsAllowed),
		Points:   cfg.Defense.FewestYardsAllowedPoints,
	}
}

func scorePassing(items []LineItem, s stats.PlayerGameStats, pos player.Position, cfg rules.PassingRules) []LineItem {
	if s.PassTDs > 0 {
		rate := cfg.TDPoints
		if pos != player.PositionQB {
			rate = cfg.NonQBTDPoints
		}
		items = addItem(items, "passing", "touchdowns", float64(s.PassTDs), float64(s.PassTDs)*rate)
	}
	if bonus := milestoneBonus(s.PassYards, cfg.YardageMilestones); bonus != 0 {
		items = append(items, LineItem{Category: "passing", Stat: "yardage bonus", Value: float64(s.PassYards), Points: bonus})
	}
	if s.Interceptions > 0 {
		items = addItem(items, "passing", "interceptions", float64(s.Interceptions), float64(s.Interceptions)*cfg.InterceptionPoints)
	}
	if s.PassTwoPoint > 0 {
		items = addItem(items, "passing", "two-point conversions", float64(s.PassTwoPoint), float64(s.PassTwoPoint)*cfg.TwoPointPoints)
	}
	return items
}

func scoreRushing(items []LineItem, s stats.PlayerGameStats, pos player.Position, cfg rules.RushingRules) []LineItem {
	if s.RushTDs > 0 {
		items = append(items, LineItem{Category: "rushing", Stat: "touchdowns", Value: float64(s.RushTDs), Points: float64(s.RushTDs) * touchdownFaceValue})
		if pos == player.PositionQB && cfg.QBTDBonus != 0 {
			items = append(items, LineItem{Category: "rushing", Stat: "qb touchdown bonus", Value: float64(s.RushTDs), Points: float64(s.RushTDs) * cfg.QBTDBonus})
		}
	}
	if bonus := milestoneBonus(s.RushYards, cfg.YardageMilestones); bonus != 0 {
		items = append(items, LineItem{Category: "rushing", Stat: "yardage bonus", Value: float64(s.RushYards), Points: bonus})
	}
	if s.RushTwoPoint > 0 {
		items = addItem(items, "rushing", "two-point conversions", float64(s.RushTwoPoint), float64(s.RushTwoPoint)*cfg.TwoPointPoints)
	}
	return items
}

func scoreReceiving(items []LineItem, s stats.PlayerGameStats, cfg rules.ReceivingRules) []LineItem {
	if s.RecTDs > 0 {
		items = append(items, LineItem{Category: "receiving", Stat: "touchdowns", Value: float64(s.RecTDs), Points: float64(s.RecTDs) * touchdownFaceValue})
	}
	if bonus := milestoneBonus(s.RecYards, cfg.YardageMilestones); bonus != 0 {
		items = append(items, LineItem{Category: "receiving", Stat: "yardage bonus", Value: float64(s.RecYards), Points: bonus})
	}
	if s.RecTwoPoint > 0 {
		items = addItem(items, "receiving", "two-point conversions", float64(s.RecTwoPoint), float64(s.RecTwoPoint)*cfg.TwoPointPoints)
	}
	return items
}

// scoreCombined awards at most one rush+receive total-yardage tier, and
// only when both individual yardages sit under that tier's exclusion
// thresholds. Tiers run in configured order; the first match wins.
func scoreCombined(items []LineItem, s stats.PlayerGameStats, cfg rules.CombinedRules) []LineItem {
	total := s.RushYards + s.RecYards
	for _, tier := range cfg.Milestones {
		if total < tier.Yards {
			continue
		}
		if s.RushYards >= tier.RushUnder || s.RecYards >= tier.RecUnder {
			continue
		}
		items = addItem(items, "combined", "rush+receive yardage bonus", float64(total), tier.Points)
		break
	}
	return items
}

func scoreKicking(items []LineItem, s stats.PlayerGameStats, cfg rules.KickingRules) []LineItem {
	if s.FGMadeUnder53 > 0 {
		items = addItem(items, "kicking", "fg under 53", float64(s.FGMadeUnder53), float64(s.FGMadeUnder53)*cfg.FGUnder53Points)
	}
	if s.FGMade53to54 > 0 {
		items = addItem(items, "kicking", "fg 53-54", float64(s.FGMade53to54), float64(s.FGMade53to54)*cfg.FG53to54Points)
	}
	if s.FGMade55Plus > 0 {
		rate := cfg.FGUnder53Points + cfg.LongFGBonus
		items = addItem(items, "kicking", "fg 55+", float64(s.FGMade55Plus), float64(s.FGMade55Plus)*rate)
	}
	if s.XPMade > 0 {
		items = append(items, LineItem{Category: "kicking", Stat: "extra points", Value: float64(s.XPMade), Points: float64(s.XPMade) * extraPointFaceValue})
	}
	if s.XPMissed > 0 {
		items = addItem(items, "kicking", "missed extra points", float64(s.XPMissed), float64(s.XPMissed)*cfg.XPMissedPoints)
	}
	if s.FGMissedUnder40 > 0 {
		items = addItem(items, "kicking", "missed fg under 40", float64(s.FGMissedUnder40), float64(s.FGMissedUnder40)*cfg.FGMissedUnder40Points)
	}
	// Missed field goals of 40+ yards: no automatic penalty. The ingested
	// feed cannot distinguish miss distance finely enough, so any penalty
	// is entered as a manual bonus event instead.
	return items
}

func scoreEvents(items []LineItem, events []stats.GameEvent, cfg rules.BigPlayRules) []LineItem {
	for _, ev := range events {
		switch ev.Type {
		case stats.EventPassingTD:
			if ev.Yards >= bigPlayMinYards {
				items = addItem(items, "events", "50+ yard passing td", float64(ev.Yards), cfg.PassingTDPoints)
			}
		case stats.EventRushingTD:
			if ev.Yards >= bigPlayMinYards {
				items = addItem(items, "events", "50+ yard rushing td", float64(ev.Yards), cfg.RushingTDPoints)
			}
		case stats.EventReceivingTD:
			if ev.Yards >= bigPlayMinYards {
				items = addItem(items, "events", "50+ yard receiving td", float64(ev.Yards), cfg.ReceivingTDPoints)
			}
		case stats.EventBonus:
			if ev.Points != 0 {
				items = append(items, LineItem{Category: "events", Stat: manualBonusLabel, Value: ev.Points, Points: ev.Points})
			}
		}
	}
	return items
}

// milestoneBonus returns the bonus of the single highest threshold
// reached, never a sum of tiers.
func milestoneBonus(yards int, table []rules.Milestone) float64 {
	bonus := 0.0
	bestYards := -1
	for _, m := range table {
		if yards >= m.Yards && m.Yards > bestYards {
			bestYards = m.Yards
			bonus = m.Points
		}
	}
	return bonus
}

func addItem(items []LineItem, category, stat string, value, points float64) []LineItem {
	if points == 0 {
		return items
	}
	return append(items, LineItem{Category: category, Stat: stat, Value: value, Points: points})
}

func sumItems(items []LineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Points
	}
	return Round2(total)
}
