package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/lineup"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/player"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/roster"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/team"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/platform/logging"
)

type AssignSlotInput struct {
	TeamID         string
	RosterPlayerID string
	Week           int
	Slot           lineup.Slot
	Override       bool
}

type AssignSlotResult struct {
	PlayerName     string
	SwappedOutName string
}

type BenchPlayerInput struct {
	TeamID         string
	RosterPlayerID string
	Week           int
	Override       bool
}

// LineupSlotView is one row of a team's weekly lineup read model.
type LineupSlotView struct {
	RosterPlayerID string
	PlayerID       string
	PlayerName     string
	Position       player.Position
	NFLTeam        string
	Slot           *lineup.Slot
	Locked         bool
	LockReason     string
}

type WeekLineup struct {
	TeamID   string
	TeamName string
	Week     int
	Starters []LineupSlotView
	Bench    []LineupSlotView
}

// LineupService moves roster players between starting slots and the
// bench. Every assignment into an occupied slot is a swap: the incoming
// player takes the slot and the occupant lands on the bench, committed
// as one unit.
type LineupService struct {
	teamRepo   team.Repository
	rosterRepo roster.Repository
	playerRepo player.Repository
	lineupRepo lineup.Repository
	lockSvc    *LockService
	logger     *logging.Logger
	now        func() time.Time
}

func NewLineupService(
	teamRepo team.Repository,
	rosterRepo roster.Repository,
	playerRepo player.Repository,
	lineupRepo lineup.Repository,
	lockSvc *LockService,
	logger *logging.Logger,
) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LineupService{
		teamRepo:   teamRepo,
		rosterRepo: rosterRepo,
		playerRepo: playerRepo,
		lineupRepo: lineupRepo,
		lockSvc:    lockSvc,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *LineupService) AssignSlot(ctx context.Context, input AssignSlotInput) (AssignSlotResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.AssignSlot")
	defer span.End()

	if !input.Slot.Valid() {
		return AssignSlotResult{}, fmt.Errorf("%w: unknown slot %q", ErrInvalidInput, input.Slot)
	}

	rp, p, err := s.resolveRosterPlayer(ctx, input.TeamID, input.RosterPlayerID, input.Week)
	if err != nil {
		return AssignSlotResult{}, err
	}

	if !input.Slot.Eligible(p.Position) {
		return AssignSlotResult{}, fmt.Errorf(
			"%w: %s plays %s, slot %s accepts %s",
			ErrInvalidInput, p.Name, p.Position, input.Slot, strings.Join(input.Slot.EligiblePositions(), "/"),
		)
	}

	if err := s.checkLock(ctx, p, input.Week, input.Override); err != nil {
		return AssignSlotResult{}, err
	}

	entry, exists, err := s.lineupRepo.Get(ctx, rp.ID, input.Week)
	if err != nil {
		return AssignSlotResult{}, fmt.Errorf("get lineup entry: %w", err)
	}
	if exists && entry.Assigned(input.Slot) {
		// Re-assigning a player to their current slot is a no-op.
		return AssignSlotResult{PlayerName: p.Name}, nil
	}

	occupant, swappedOutName, err := s.resolveOccupant(ctx, input, rp.ID)
	if err != nil {
		return AssignSlotResult{}, err
	}

	slot := input.Slot
	started := lineup.Entry{
		RosterPlayerID: rp.ID,
		TeamID:         input.TeamID,
		Week:           input.Week,
		Slot:           &slot,
		UpdatedAt:      s.now().UTC(),
	}
	if err := s.lineupRepo.ApplySwap(ctx, started, occupant); err != nil {
		return AssignSlotResult{}, fmt.Errorf("apply lineup swap: %w", err)
	}

	return AssignSlotResult{PlayerName: p.Name, SwappedOutName: swappedOutName}, nil
}

// resolveOccupant finds who currently holds the target slot, verifies
// their lock, and returns their entry rewritten as benched.
func (s *LineupService) resolveOccupant(ctx context.Context, input AssignSlotInput, incomingRosterPlayerID string) (*lineup.Entry, string, error) {
	entries, err := s.lineupRepo.ListByTeamWeek(ctx, input.TeamID, input.Week)
	if err != nil {
		return nil, "", fmt.Errorf("list lineup entries: %w", err)
	}

	for _, entry := range entries {
		if !entry.Assigned(input.Slot) || entry.RosterPlayerID == incomingRosterPlayerID {
			continue
		}

		_, _, p, err := s.lookupRosterPlayer(ctx, entry.RosterPlayerID)
		if err != nil {
			return nil, "", err
		}
		if err := s.checkLock(ctx, p, input.Week, input.Override); err != nil {
			return nil, "", err
		}

		benched := entry
		benched.Slot = nil
		benched.UpdatedAt = s.now().UTC()
		return &benched, p.Name, nil
	}

	return nil, "", nil
}

func (s *LineupService) BenchPlayer(ctx context.Context, input BenchPlayerInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.BenchPlayer")
	defer span.End()

	rp, p, err := s.resolveRosterPlayer(ctx, input.TeamID, input.RosterPlayerID, input.Week)
	if err != nil {
		return err
	}
	if err := s.checkLock(ctx, p, input.Week, input.Override); err != nil {
		return err
	}

	entry, exists, err := s.lineupRepo.Get(ctx, rp.ID, input.Week)
	if err != nil {
		return fmt.Errorf("get lineup entry: %w", err)
	}
	if exists && entry.Benched() {
		return nil
	}
	if !exists {
		entry = lineup.Entry{RosterPlayerID: rp.ID, TeamID: input.TeamID, Week: input.Week}
	}

	entry.Slot = nil
	entry.UpdatedAt = s.now().UTC()
	if err := s.lineupRepo.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("bench player: %w", err)
	}

	return nil
}

// GetWeekLineup returns the team's roster for a week split into slotted
// starters and the bench, with each player's live lock state attached.
func (s *LineupService) GetWeekLineup(ctx context.Context, teamID string, week int) (WeekLineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.GetWeekLineup")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return WeekLineup{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if week < 1 {
		return WeekLineup{}, fmt.Errorf("%w: week must be positive", ErrInvalidInput)
	}

	tm, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return WeekLineup{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return WeekLineup{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	rosterPlayers, err := s.rosterRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return WeekLineup{}, fmt.Errorf("list roster: %w", err)
	}

	entries, err := s.lineupRepo.ListByTeamWeek(ctx, teamID, week)
	if err != nil {
		return WeekLineup{}, fmt.Errorf("list lineup entries: %w", err)
	}
	slotByRosterPlayer := make(map[string]*lineup.Slot, len(entries))
	for _, entry := range entries {
		slotByRosterPlayer[entry.RosterPlayerID] = entry.Slot
	}

	playerIDs := make([]string, 0, len(rosterPlayers))
	for _, rp := range rosterPlayers {
		playerIDs = append(playerIDs, rp.PlayerID)
	}
	players, err := s.playerRepo.ListByIDs(ctx, playerIDs)
	if err != nil {
		return WeekLineup{}, fmt.Errorf("list players: %w", err)
	}
	playersByID := make(map[string]player.Player, len(players))
	for _, p := range players {
		playersByID[p.ID] = p
	}

	result := WeekLineup{TeamID: teamID, TeamName: tm.Name, Week: week}
	for _, rp := range rosterPlayers {
		p, ok := playersByID[rp.PlayerID]
		if !ok {
			continue
		}

		status, err := s.lockSvc.IsLocked(ctx, p.NFLTeam, week)
		if err != nil {
			return WeekLineup{}, fmt.Errorf("check lock for %s: %w", p.Name, err)
		}

		view := LineupSlotView{
			RosterPlayerID: rp.ID,
			PlayerID:       p.ID,
			PlayerName:     p.Name,
			Position:       p.Position,
			NFLTeam:        p.NFLTeam,
			Slot:           slotByRosterPlayer[rp.ID],
			Locked:         status.Locked,
			LockReason:     status.Reason,
		}
		if view.Slot != nil {
			result.Starters = append(result.Starters, view)
		} else {
			result.Bench = append(result.Bench, view)
		}
	}

	sort.Slice(result.Starters, func(i, j int) bool {
		return slotOrder(*result.Starters[i].Slot) < slotOrder(*result.Starters[j].Slot)
	})
	sort.Slice(result.Bench, func(i, j int) bool {
		return result.Bench[i].PlayerName < result.Bench[j].PlayerName
	})

	return result, nil
}

func (s *LineupService) resolveRosterPlayer(ctx context.Context, teamID, rosterPlayerID string, week int) (roster.RosterPlayer, player.Player, error) {
	teamID = strings.TrimSpace(teamID)
	rosterPlayerID = strings.TrimSpace(rosterPlayerID)
	if teamID == "" || rosterPlayerID == "" {
		return roster.RosterPlayer{}, player.Player{}, fmt.Errorf("%w: team id and roster player id are required", ErrInvalidInput)
	}
	if week < 1 {
		return roster.RosterPlayer{}, player.Player{}, fmt.Errorf("%w: week must be positive", ErrInvalidInput)
	}

	rp, exists, p, err := s.lookupRosterPlayer(ctx, rosterPlayerID)
	if err != nil {
		return roster.RosterPlayer{}, player.Player{}, err
	}
	if !exists || rp.TeamID != teamID {
		// Belonging to a different team reads the same as not existing.
		return roster.RosterPlayer{}, player.Player{}, fmt.Errorf("%w: roster player=%s", ErrNotFound, rosterPlayerID)
	}

	return rp, p, nil
}

func (s *LineupService) lookupRosterPlayer(ctx context.Context, rosterPlayerID string) (roster.RosterPlayer, bool, player.Player, error) {
	rp, exists, err := s.rosterRepo.GetByID(ctx, rosterPlayerID)
	if err != nil {
		return roster.RosterPlayer{}, false, player.Player{}, fmt.Errorf("get roster player: %w", err)
	}
	if !exists {
		return roster.RosterPlayer{}, false, player.Player{}, nil
	}

	p, playerExists, err := s.playerRepo.GetByID(ctx, rp.PlayerID)
	if err != nil {
		return roster.RosterPlayer{}, false, player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !playerExists {
		return roster.RosterPlayer{}, false, player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, rp.PlayerID)
	}

	return rp, true, p, nil
}

func (s *LineupService) checkLock(ctx context.Context, p player.Player, week int, override bool) error {
	status, err := s.lockSvc.IsLocked(ctx, p.NFLTeam, week)
	if err != nil {
		return fmt.Errorf("check lock for %s: %w", p.Name, err)
	}
	if !status.Locked {
		return nil
	}
	if override {
		s.logger.WarnContext(ctx, "lineup lock overridden by admin",
			"player", p.Name, "nfl_team", p.NFLTeam, "week", week, "reason", status.Reason)
		return nil
	}
	return fmt.Errorf("%w: %s (%s)", ErrLocked, p.Name, status.Reason)
}

func slotOrder(slot lineup.Slot) int {
	for i, s := range lineup.AllSlots {
		if s == slot {
			return i
		}
	}
	return len(lineup.AllSlots)
}
