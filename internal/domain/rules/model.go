package rules

import (
	"time"

	sonic "github.com/bytedance/sonic"
)

// RuleSet is one uploaded scoring configuration. The rules payload is kept
// opaque as stored; the engine decodes only the categories it recognizes.
type RuleSet struct {
	ID        string
	Name      string
	Active    bool
	Rules     []byte
	UpdatedAt time.Time
}

// Scoring decodes the opaque payload into the typed view the engine reads.
// Unrecognized keys are ignored and missing categories contribute zero.
func (r RuleSet) Scoring() (Scoring, error) {
	if len(r.Rules) == 0 {
		return Scoring{}, nil
	}

	var out Scoring
	if err := sonic.Unmarshal(r.Rules, &out); err != nil {
		return Scoring{}, err
	}
	return out, nil
}

// Milestone maps a yardage threshold to a cumulative bonus. Only the
// highest reached threshold in a table applies.
type Milestone struct {
	Yards  int     `json:"yards"`
	Points float64 `json:"points"`
}

// CombinedMilestone is a rush+receive total-yardage tier. It applies only
// when the individual rushing and receiving yardages are both under their
// exclusion thresholds. Tiers are evaluated in configured order and the
// first match wins.
type CombinedMilestone struct {
	Yards     int     `json:"yards"`
	Points    float64 `json:"points"`
	RushUnder int     `json:"rushUnder"`
	RecUnder  int     `json:"recUnder"`
}

// Scoring is the lenient typed view of a rule set. Every field is optional.
type Scoring struct {
	Passing   PassingRules  `json:"passing"`
	Rushing   RushingRules  `json:"rushing"`
	Receiving ReceivingRules `json:"receiving"`
	Combined  CombinedRules `json:"rushReceiveCombined"`
	Turnovers TurnoverRules `json:"turnovers"`
	Kicking   KickingRules  `json:"kicking"`
	Defense   DefenseRules  `json:"defense"`
	BigPlay   BigPlayRules  `json:"bigPlay"`
}

type PassingRules struct {
	TDPoints           float64     `json:"tdPoints"`
	NonQBTDPoints      float64     `json:"nonQbTdPoints"`
	InterceptionPoints float64     `json:"interceptionPoints"`
	TwoPointPoints     float64     `json:"twoPointPoints"`
	YardageMilestones  []Milestone `json:"yardageMilestones"`
}

type RushingRules struct {
	QBTDBonus         float64     `json:"qbTdBonus"`
	TwoPointPoints    float64     `json:"twoPointPoints"`
	YardageMilestones []Milestone `json:"yardageMilestones"`
}

type ReceivingRules struct {
	TwoPointPoints    float64     `json:"twoPointPoints"`
	YardageMilestones []Milestone `json:"yardageMilestones"`
}

type CombinedRules struct {
	Milestones []CombinedMilestone `json:"milestones"`
}

type TurnoverRules struct {
	FumbleLostPoints float64 `json:"fumbleLostPoints"`
}

// KickingRules: the 55+ tier is the under-53 base rate plus LongFGBonus,
// not a separately configured flat value. Missed field goals of 40+ yards
// carry no automatic penalty; league operators enter those manually.
type KickingRules struct {
	FGUnder53Points       float64 `json:"fgUnder53Points"`
	FG53to54Points        float64 `json:"fg53To54Points"`
	LongFGBonus           float64 `json:"longFgBonus"`
	FGMissedUnder40Points float64 `json:"fgMissedUnder40Points"`
	XPMissedPoints        float64 `json:"xpMissedPoints"`
}

type DefenseRules struct {
	ShutoutPoints            float64 `json:"shutoutPoints"`
	InterceptionPoints       float64 `json:"interceptionPoints"`
	FumbleRecoveryPoints     float64 `json:"fumbleRecoveryPoints"`
	BlockedKickPoints        float64 `json:"blockedKickPoints"`
	FewestYardsAllowedPoints float64 `json:"fewestYardsAllowedPoints"`
}

// BigPlayRules are flat bonuses for touchdown events of 50+ yards.
type BigPlayRules struct {
	PassingTDPoints   float64 `json:"passingTdPoints"`
	RushingTDPoints   float64 `json:"rushingTdPoints"`
	ReceivingTDPoints float64 `json:"receivingTdPoints"`
}
