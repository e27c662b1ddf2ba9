package stats

import (
	"testing"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/player"
)

func TestFormatPlayerLine_QB(t *testing.T) {
	t.Parallel()

	line := FormatPlayerLine(player.PositionQB, PlayerGameStats{
		PassCompletions: 18,
		PassAttempts:    27,
		PassYards:       245,
		PassTDs:         2,
		Interceptions:   1,
	})
	if line != "18/27, 245 yds, 2 TD, 1 INT" {
		t.Fatalf("unexpected QB line: %q", line)
	}
}

func TestFormatPlayerLine_QBWithRushing(t *testing.T) {
	t.Parallel()

	line := FormatPlayerLine(player.PositionQB, PlayerGameStats{
		PassCompletions: 21,
		PassAttempts:    30,
		PassYards:       198,
		RushYards:       34,
		RushTDs:         1,
	})
	if line != "21/30, 198 yds; 34 rush yds, 1 rush TD" {
		t.Fatalf("unexpected QB line: %q", line)
	}
}

func TestFormatPlayerLine_RBRushAndReceive(t *testing.T) {
	t.Parallel()

	line := FormatPlayerLine(player.PositionRB, PlayerGameStats{
		RushYards:  84,
		RushTDs:    1,
		Receptions: 3,
		RecYards:   22,
	})
	if line != "84 rush yds, 1 rush TD; 3 rec, 22 yds" {
		t.Fatalf("unexpected RB line: %q", line)
	}
}

func TestFormatPlayerLine_WRReceivingOnly(t *testing.T) {
	t.Parallel()

	line := FormatPlayerLine(player.PositionWR, PlayerGameStats{
		Receptions: 6,
		RecYards:   91,
		RecTDs:     1,
	})
	if line != "6 rec, 91 yds, 1 TD" {
		t.Fatalf("unexpected WR line: %q", line)
	}
}

func TestFormatPlayerLine_Kicker(t *testing.T) {
	t.Parallel()

	line := FormatPlayerLine(player.PositionK, PlayerGameStats{
		FGMadeUnder53:   2,
		FGMissedUnder40: 1,
		FGLongest:       48,
		XPMade:          3,
	})
	if line != "2/3 FG (long 48), 3/3 XP" {
		t.Fatalf("unexpected K line: %q", line)
	}
}

func TestFormatPlayerLine_EmptyWhenNothingToReport(t *testing.T) {
	t.Parallel()

	if line := FormatPlayerLine(player.PositionRB, PlayerGameStats{}); line != "" {
		t.Fatalf("expected empty line, got %q", line)
	}
	if line := FormatPlayerLine(player.PositionK, PlayerGameStats{}); line != "" {
		t.Fatalf("expected empty line, got %q", line)
	}
}

func TestFormatDefenseLine(t *testing.T) {
	t.Parallel()

	line := FormatDefenseLine(DefenseGameStats{
		PointsAllowed:    14,
		YardsAllowed:     287,
		Interceptions:    2,
		FumbleRecoveries: 1,
		ReturnTDs:        1,
	})
	if line != "14 pts allowed, 287 yds, 2 INT, 1 FR, 1 TD" {
		t.Fatalf("unexpected DEF line: %q", line)
	}
}

func TestFormatDefenseLine_Empty(t *testing.T) {
	t.Parallel()

	if line := FormatDefenseLine(DefenseGameStats{}); line != "" {
		t.Fatalf("expected empty line, got %q", line)
	}
}
