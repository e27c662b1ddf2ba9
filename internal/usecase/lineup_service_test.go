package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/lineup"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/infrastructure/repository/memory"
)

type lineupFixture struct {
	svc        *LineupService
	lineupRepo *memory.LineupRepository
	lockSvc    *LockService
}

func newLineupFixture(t *testing.T) *lineupFixture {
	t.Helper()

	lockSvc := NewLockService(memory.NewScheduleRepository(memory.SeedGames(1)), nil)
	lockSvc.now = func() time.Time { return time.Date(2026, 9, 13, 12, 0, 0, 0, time.UTC) }

	lineupRepo := memory.NewLineupRepository()
	svc := NewLineupService(
		memory.NewTeamRepository(memory.SeedTeams()),
		memory.NewRosterRepository(memory.SeedRoster()),
		memory.NewPlayerRepository(memory.SeedPlayers()),
		lineupRepo,
		lockSvc,
		nil,
	)
	return &lineupFixture{svc: svc, lineupRepo: lineupRepo, lockSvc: lockSvc}
}

func TestLineupService_AssignSlot(t *testing.T) {
	fx := newLineupFixture(t)

	result, err := fx.svc.AssignSlot(t.Context(), AssignSlotInput{
		TeamID:         memory.TeamIDGridironers,
		RosterPlayerID: "rp-01",
		Week:           1,
		Slot:           lineup.SlotQB,
	})
	if err != nil {
		t.Fatalf("assign slot failed: %v", err)
	}
	if result.PlayerName != "Jalen Hurts" {
		t.Fatalf("unexpected player name: %s", result.PlayerName)
	}
	if result.SwappedOutName != "" {
		t.Fatalf("unexpected swap: %s", result.SwappedOutName)
	}

	entry, exists, err := fx.lineupRepo.Get(t.Context(), "rp-01", 1)
	if err != nil || !exists {
		t.Fatalf("entry not stored: exists=%v err=%v", exists, err)
	}
	if !entry.Assigned(lineup.SlotQB) {
		t.Fatalf("entry not in QB slot: %+v", entry)
	}
}

func TestLineupService_AssignSlot_SwapsOccupant(t *testing.T) {
	fx := newLineupFixture(t)

	if _, err := fx.svc.AssignSlot(t.Context(), AssignSlotInput{
		TeamID: memory.TeamIDGridironers, RosterPlayerID: "rp-02", Week: 1, Slot: lineup.SlotFlex1,
	}); err != nil {
		t.Fatalf("seed assignment failed: %v", err)
	}

	result, err := fx.svc.AssignSlot(t.Context(), AssignSlotInput{
		TeamID: memory.TeamIDGridironers, RosterPlayerID: "rp-03", Week: 1, Slot: lineup.SlotFlex1,
	})
	if err != nil {
		t.Fatalf("swap assignment failed: %v", err)
	}
	if result.SwappedOutName != "Saquon Barkley" {
		t.Fatalf("expected Barkley swapped out, got %q", result.SwappedOutName)
	}

	displaced, exists, err := fx.lineupRepo.Get(t.Context(), "rp-02", 1)
	if err != nil || !exists {
		t.Fatalf("displaced entry missing: exists=%v err=%v", exists, err)
	}
	if !displaced.Benched() {
		t.Fatalf("displaced player should be benched: %+v", displaced)
	}
}

func TestLineupService_AssignSlot_SelfAssignIsNoop(t *testing.T) {
	fx := newLineupFixture(t)

	input := AssignSlotInput{TeamID: memory.TeamIDGridironers, RosterPlayerID: "rp-04", Week: 1, Slot: lineup.SlotWRTE}
	if _, err := fx.svc.AssignSlot(t.Context(), input); err != nil {
		t.Fatalf("first assignment failed: %v", err)
	}

	result, err := fx.svc.AssignSlot(t.Context(), input)
	if err != nil {
		t.Fatalf("repeat assignment failed: %v", err)
	}
	if result.SwappedOutName != "" {
		t.Fatalf("self-assignment must not swap, got %q", result.SwappedOutName)
	}
}

func TestLineupService_AssignSlot_RejectsIneligiblePosition(t *testing.T) {
	fx := newLineupFixture(t)

	// rp-01 is a QB; the WRTE slot takes WR and TE only.
	_, err := fx.svc.AssignSlot(t.Context(), AssignSlotInput{
		TeamID: memory.TeamIDGridironers, RosterPlayerID: "rp-01", Week: 1, Slot: lineup.SlotWRTE,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLineupService_AssignSlot_RejectsUnknownSlot(t *testing.T) {
	fx := newLineupFixture(t)

	_, err := fx.svc.AssignSlot(t.Context(), AssignSlotInput{
		TeamID: memory.TeamIDGridironers, RosterPlayerID: "rp-01", Week: 1, Slot: lineup.Slot("PUNTER"),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLineupService_AssignSlot_OtherTeamsPlayerNotFound(t *testing.T) {
	fx := newLineupFixture(t)

	// rp-11 belongs to the other team.
	_, err := fx.svc.AssignSlot(t.Context(), AssignSlotInput{
		TeamID: memory.TeamIDGridironers, RosterPlayerID: "rp-11", Week: 1, Slot: lineup.SlotQB,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLineupService_AssignSlot_LockedAfterKickoff(t *testing.T) {
	fx := newLineupFixture(t)
	fx.lockSvc.now = func() time.Time { return time.Date(2026, 9, 13, 18, 0, 0, 0, time.UTC) }

	_, err := fx.svc.AssignSlot(t.Context(), AssignSlotInput{
		TeamID: memory.TeamIDGridironers, RosterPlayerID: "rp-01", Week: 1, Slot: lineup.SlotQB,
	})
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestLineupService_AssignSlot_LockedOccupantBlocksSwap(t *testing.T) {
	fx := newLineupFixture(t)

	// Barkley (PHI, 17:00 kickoff) takes FLEX1 before any game starts.
	if _, err := fx.svc.AssignSlot(t.Context(), AssignSlotInput{
		TeamID: memory.TeamIDGridironers, RosterPlayerID: "rp-02", Week: 1, Slot: lineup.SlotFlex1,
	}); err != nil {
		t.Fatalf("seed assignment failed: %v", err)
	}

	// 18:00: PHI has kicked off, ATL (20:00) has not. Robinson is free
	// to move but cannot displace a locked occupant.
	fx.lockSvc.now = func() time.Time { return time.Date(2026, 9, 13, 18, 0, 0, 0, time.UTC) }

	_, err := fx.svc.AssignSlot(t.Context(), AssignSlotInput{
		TeamID: memory.TeamIDGridironers, RosterPlayerID: "rp-03", Week: 1, Slot: lineup.SlotFlex1,
	})
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked for locked occupant, got %v", err)
	}

	held, exists, err := fx.lineupRepo.Get(t.Context(), "rp-02", 1)
	if err != nil || !exists {
		t.Fatalf("occupant entry missing: exists=%v err=%v", exists, err)
	}
	if !held.Assigned(lineup.SlotFlex1) {
		t.Fatalf("occupant displaced despite lock: %+v", held)
	}

	result, err := fx.svc.AssignSlot(t.Context(), AssignSlotInput{
		TeamID: memory.TeamIDGridironers, RosterPlayerID: "rp-03", Week: 1, Slot: lineup.SlotFlex1, Override: true,
	})
	if err != nil {
		t.Fatalf("override swap failed: %v", err)
	}
	if result.SwappedOutName != "Saquon Barkley" {
		t.Fatalf("expected Barkley swapped out under override, got %q", result.SwappedOutName)
	}
}

func TestLineupService_AssignSlot_OverrideBypassesLock(t *testing.T) {
	fx := newLineupFixture(t)
	fx.lockSvc.now = func() time.Time { return time.Date(2026, 9, 13, 18, 0, 0, 0, time.UTC) }

	result, err := fx.svc.AssignSlot(t.Context(), AssignSlotInput{
		TeamID: memory.TeamIDGridironers, RosterPlayerID: "rp-01", Week: 1, Slot: lineup.SlotQB, Override: true,
	})
	if err != nil {
		t.Fatalf("override assignment failed: %v", err)
	}
	if result.PlayerName != "Jalen Hurts" {
		t.Fatalf("unexpected player name: %s", result.PlayerName)
	}
}

func TestLineupService_BenchPlayer(t *testing.T) {
	fx := newLineupFixture(t)

	if _, err := fx.svc.AssignSlot(t.Context(), AssignSlotInput{
		TeamID: memory.TeamIDGridironers, RosterPlayerID: "rp-06", Week: 1, Slot: lineup.SlotK,
	}); err != nil {
		t.Fatalf("seed assignment failed: %v", err)
	}

	if err := fx.svc.BenchPlayer(t.Context(), BenchPlayerInput{
		TeamID: memory.TeamIDGridironers, RosterPlayerID: "rp-06", Week: 1,
	}); err != nil {
		t.Fatalf("bench failed: %v", err)
	}

	entry, exists, err := fx.lineupRepo.Get(t.Context(), "rp-06", 1)
	if err != nil || !exists {
		t.Fatalf("entry missing after bench: exists=%v err=%v", exists, err)
	}
	if !entry.Benched() {
		t.Fatalf("entry still slotted: %+v", entry)
	}
}

func TestLineupService_BenchPlayer_CreatesEntryWhenMissing(t *testing.T) {
	fx := newLineupFixture(t)

	if err := fx.svc.BenchPlayer(t.Context(), BenchPlayerInput{
		TeamID: memory.TeamIDGridironers, RosterPlayerID: "rp-05", Week: 1,
	}); err != nil {
		t.Fatalf("bench failed: %v", err)
	}

	entry, exists, err := fx.lineupRepo.Get(t.Context(), "rp-05", 1)
	if err != nil || !exists {
		t.Fatalf("entry missing: exists=%v err=%v", exists, err)
	}
	if !entry.Benched() {
		t.Fatalf("expected benched entry, got %+v", entry)
	}
}

func TestLineupService_GetWeekLineup(t *testing.T) {
	fx := newLineupFixture(t)

	for rosterPlayerID, slot := range map[string]lineup.Slot{
		"rp-01": lineup.SlotQB,
		"rp-02": lineup.SlotRB,
		"rp-04": lineup.SlotWRTE,
	} {
		if _, err := fx.svc.AssignSlot(t.Context(), AssignSlotInput{
			TeamID: memory.TeamIDGridironers, RosterPlayerID: rosterPlayerID, Week: 1, Slot: slot,
		}); err != nil {
			t.Fatalf("seed assignment failed: %v", err)
		}
	}

	view, err := fx.svc.GetWeekLineup(t.Context(), memory.TeamIDGridironers, 1)
	if err != nil {
		t.Fatalf("get week lineup failed: %v", err)
	}
	if len(view.Starters) != 3 {
		t.Fatalf("expected 3 starters, got %d", len(view.Starters))
	}
	if len(view.Bench) != 4 {
		t.Fatalf("expected 4 bench players, got %d", len(view.Bench))
	}
	if *view.Starters[0].Slot != lineup.SlotQB {
		t.Fatalf("starters not in slot order: first is %s", *view.Starters[0].Slot)
	}
	for _, row := range view.Starters {
		if row.Locked {
			t.Fatalf("unexpected lock before kickoff: %+v", row)
		}
	}
}
