package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/player"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/stats"
)

// PlayerStatLine pairs a player with their formatted weekly stat line.
type PlayerStatLine struct {
	PlayerID string
	Name     string
	Position player.Position
	NFLTeam  string
	Week     int
	Line     string
}

// StatLineService renders human-readable stat lines for display next to
// scores.
type StatLineService struct {
	playerRepo player.Repository
	statsRepo  stats.Repository
}

func NewStatLineService(playerRepo player.Repository, statsRepo stats.Repository) *StatLineService {
	return &StatLineService{playerRepo: playerRepo, statsRepo: statsRepo}
}

// GetPlayerLine formats the week's stat line for one player. Defenses
// use the defense formatter keyed by their NFL team.
func (s *StatLineService) GetPlayerLine(ctx context.Context, playerID string, week int) (PlayerStatLine, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatLineService.GetPlayerLine")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return PlayerStatLine{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if week < 1 {
		return PlayerStatLine{}, fmt.Errorf("%w: week must be positive", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return PlayerStatLine{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return PlayerStatLine{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	result := PlayerStatLine{
		PlayerID: p.ID,
		Name:     p.Name,
		Position: p.Position,
		NFLTeam:  p.NFLTeam,
		Week:     week,
	}

	if p.Position == player.PositionDEF {
		ds, _, err := s.statsRepo.GetDefenseStats(ctx, p.NFLTeam, week)
		if err != nil {
			return PlayerStatLine{}, fmt.Errorf("get defense stats: %w", err)
		}
		result.Line = stats.FormatDefenseLine(ds)
		return result, nil
	}

	ps, _, err := s.statsRepo.GetPlayerStats(ctx, playerID, week)
	if err != nil {
		return PlayerStatLine{}, fmt.Errorf("get player stats: %w", err)
	}
	result.Line = stats.FormatPlayerLine(p.Position, ps)
	return result, nil
}
