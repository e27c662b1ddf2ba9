package lineup

import (
	"time"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/player"
)

// Slot is one of the 8 fixed weekly lineup positions.
type Slot string

const (
	SlotQB    Slot = "QB"
	SlotRB    Slot = "RB"
	SlotWRTE  Slot = "WRTE"
	SlotFlex1 Slot = "FLEX1"
	SlotFlex2 Slot = "FLEX2"
	SlotFlex3 Slot = "FLEX3"
	SlotK     Slot = "K"
	SlotDEF   Slot = "DEF"
)

// AllSlots lists the slots in display order.
var AllSlots = []Slot{
	SlotQB,
	SlotRB,
	SlotWRTE,
	SlotFlex1,
	SlotFlex2,
	SlotFlex3,
	SlotK,
	SlotDEF,
}

var flexPositions = []player.Position{player.PositionRB, player.PositionWR, player.PositionTE}

// slotEligibility maps each slot to the positions allowed to occupy it.
var slotEligibility = map[Slot][]player.Position{
	SlotQB:    {player.PositionQB},
	SlotRB:    {player.PositionRB},
	SlotWRTE:  {player.PositionWR, player.PositionTE},
	SlotFlex1: flexPositions,
	SlotFlex2: flexPositions,
	SlotFlex3: flexPositions,
	SlotK:     {player.PositionK},
	SlotDEF:   {player.PositionDEF},
}

func (s Slot) Valid() bool {
	_, ok := slotEligibility[s]
	return ok
}

func (s Slot) Eligible(pos player.Position) bool {
	for _, candidate := range slotEligibility[s] {
		if candidate == pos {
			return true
		}
	}
	return false
}

// EligiblePositions returns the slot's eligibility set as strings, in
// the order they are checked.
func (s Slot) EligiblePositions() []string {
	out := make([]string, 0, len(slotEligibility[s]))
	for _, pos := range slotEligibility[s] {
		out = append(out, string(pos))
	}
	return out
}

// Entry is the per-week assignment of a roster player: a slot or the bench.
// Unique per (RosterPlayerID, Week). A nil Slot means benched.
type Entry struct {
	RosterPlayerID string
	TeamID         string
	Week           int
	Slot           *Slot
	UpdatedAt      time.Time
}

// IsStarter reports whether the entry occupies a lineup slot.
func (e Entry) IsStarter() bool {
	return e.Slot != nil
}

// Benched reports whether the entry sits on the bench.
func (e Entry) Benched() bool {
	return e.Slot == nil
}

// Assigned reports whether the entry occupies the given slot.
func (e Entry) Assigned(slot Slot) bool {
	return e.Slot != nil && *e.Slot == slot
}
