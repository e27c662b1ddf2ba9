package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/schedule"
)

// LockStatus is the answer to "may this player's slot still change".
type LockStatus struct {
	Locked bool
	Reason string
}

const (
	lockReasonLeague = "league locked for the week"
	lockReasonGame   = "game has started"
)

// LockService decides whether a player's lineup slot is frozen, either
// by the league-wide lock time or by the player's game having kicked
// off.
type LockService struct {
	scheduleRepo schedule.Repository
	globalLockAt *time.Time
	now          func() time.Time
}

func NewLockService(scheduleRepo schedule.Repository, globalLockAt *time.Time) *LockService {
	return &LockService{
		scheduleRepo: scheduleRepo,
		globalLockAt: globalLockAt,
		now:          time.Now,
	}
}

// IsLocked evaluates the lock for one NFL team in one week. The Multi
// placeholder team has no schedule and is never locked. A team with no
// game row for the week is treated as not yet locked.
func (s *LockService) IsLocked(ctx context.Context, nflTeam string, week int) (LockStatus, error) {
	nflTeam = strings.TrimSpace(nflTeam)
	if nflTeam == "" {
		return LockStatus{}, fmt.Errorf("%w: nfl team is required", ErrInvalidInput)
	}
	if week < 1 {
		return LockStatus{}, fmt.Errorf("%w: week must be positive", ErrInvalidInput)
	}

	if nflTeam == schedule.TeamMulti {
		return LockStatus{}, nil
	}

	now := s.now().UTC()
	if s.globalLockAt != nil && !now.Before(*s.globalLockAt) {
		return LockStatus{Locked: true, Reason: lockReasonLeague}, nil
	}

	game, exists, err := s.scheduleRepo.GetByTeamWeek(ctx, nflTeam, week)
	if err != nil {
		return LockStatus{}, fmt.Errorf("get game by team and week: %w", err)
	}
	if !exists {
		return LockStatus{}, nil
	}

	if !game.Kickoff.IsZero() && !now.Before(game.Kickoff) {
		return LockStatus{Locked: true, Reason: lockReasonGame}, nil
	}

	status := schedule.NormalizeStatus(game.Status)
	if schedule.IsInProgressStatus(status) || schedule.IsFinalStatus(status) {
		return LockStatus{Locked: true, Reason: lockReasonGame}, nil
	}

	return LockStatus{}, nil
}
