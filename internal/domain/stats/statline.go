package stats

import (
	"strconv"

	"github.com/valyala/bytebufferpool"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/player"
)

// FormatPlayerLine renders a compact box-score summary for display, e.g.
// "18/27, 245 yds, 2 TD, 1 INT". Returns the empty string when every
// relevant counter is zero.
func FormatPlayerLine(pos player.Position, s PlayerGameStats) string {
	switch pos {
	case player.PositionQB:
		return formatQBLine(s)
	case player.PositionRB, player.PositionWR, player.PositionTE:
		return formatSkillLine(s)
	case player.PositionK:
		return formatKickerLine(s)
	default:
		return ""
	}
}

func formatQBLine(s PlayerGameStats) string {
	if s.PassAttempts == 0 && s.PassYards == 0 && s.PassTDs == 0 && s.Interceptions == 0 &&
		s.RushYards == 0 && s.RushTDs == 0 {
		return ""
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if s.PassAttempts > 0 || s.PassYards != 0 || s.PassTDs > 0 || s.Interceptions > 0 {
		writeInt(buf, s.PassCompletions)
		buf.WriteByte('/')
		writeInt(buf, s.PassAttempts)
		buf.WriteString(", ")
		writeInt(buf, s.PassYards)
		buf.WriteString(" yds")
		if s.PassTDs > 0 {
			buf.WriteString(", ")
			writeInt(buf, s.PassTDs)
			buf.WriteString(" TD")
		}
		if s.Interceptions > 0 {
			buf.WriteString(", ")
			writeInt(buf, s.Interceptions)
			buf.WriteString(" INT")
		}
	}
	if s.RushYards != 0 || s.RushTDs > 0 {
		if buf.Len() > 0 {
			buf.WriteString("; ")
		}
		writeInt(buf, s.RushYards)
		buf.WriteString(" rush yds")
		if s.RushTDs > 0 {
			buf.WriteString(", ")
			writeInt(buf, s.RushTDs)
			buf.WriteString(" rush TD")
		}
	}

	return buf.String()
}

func formatSkillLine(s PlayerGameStats) string {
	hasRush := s.RushYards != 0 || s.RushTDs > 0
	hasRec := s.Receptions > 0 || s.RecYards != 0 || s.RecTDs > 0
	if !hasRush && !hasRec {
		return ""
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if hasRush {
		writeInt(buf, s.RushYards)
		buf.WriteString(" rush yds")
		if s.RushTDs > 0 {
			buf.WriteString(", ")
			writeInt(buf, s.RushTDs)
			buf.WriteString(" rush TD")
		}
	}
	if hasRec {
		if hasRush {
			buf.WriteString("; ")
		}
		writeInt(buf, s.Receptions)
		buf.WriteString(" rec, ")
		writeInt(buf, s.RecYards)
		buf.WriteString(" yds")
		if s.RecTDs > 0 {
			buf.WriteString(", ")
			writeInt(buf, s.RecTDs)
			buf.WriteString(" TD")
		}
	}

	return buf.String()
}

func formatKickerLine(s PlayerGameStats) string {
	fgMade := s.FGMadeUnder53 + s.FGMade53to54 + s.FGMade55Plus
	fgAttempts := fgMade + s.FGMissedUnder40 + s.FGMissed40Plus
	xpAttempts := s.XPMade + s.XPMissed
	if fgAttempts == 0 && xpAttempts == 0 {
		return ""
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if fgAttempts > 0 {
		writeInt(buf, fgMade)
		buf.WriteByte('/')
		writeInt(buf, fgAttempts)
		buf.WriteString(" FG")
		if s.FGLongest > 0 {
			buf.WriteString(" (long ")
			writeInt(buf, s.FGLongest)
			buf.WriteByte(')')
		}
	}
	if xpAttempts > 0 {
		if fgAttempts > 0 {
			buf.WriteString(", ")
		}
		writeInt(buf, s.XPMade)
		buf.WriteByte('/')
		writeInt(buf, xpAttempts)
		buf.WriteString(" XP")
	}

	return buf.String()
}

// FormatDefenseLine renders a defense summary, e.g.
// "14 pts allowed, 287 yds, 2 INT, 1 FR, 1 TD".
func FormatDefenseLine(d DefenseGameStats) string {
	takeaways := d.Interceptions + d.FumbleRecoveries
	scores := d.DefensiveTDs + d.ReturnTDs
	if d.PointsAllowed == 0 && d.YardsAllowed == 0 && takeaways == 0 &&
		d.BlockedKicks == 0 && scores == 0 && d.Safeties == 0 {
		return ""
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeInt(buf, d.PointsAllowed)
	buf.WriteString(" pts allowed, ")
	writeInt(buf, d.YardsAllowed)
	buf.WriteString(" yds")
	if d.Interceptions > 0 {
		buf.WriteString(", ")
		writeInt(buf, d.Interceptions)
		buf.WriteString(" INT")
	}
	if d.FumbleRecoveries > 0 {
		buf.WriteString(", ")
		writeInt(buf, d.FumbleRecoveries)
		buf.WriteString(" FR")
	}
	if d.BlockedKicks > 0 {
		buf.WriteString(", ")
		writeInt(buf, d.BlockedKicks)
		buf.WriteString(" BLK")
	}
	if scores > 0 {
		buf.WriteString(", ")
		writeInt(buf, scores)
		buf.WriteString(" TD")
	}
	if d.Safeties > 0 {
		buf.WriteString(", ")
		writeInt(buf, d.Safeties)
		buf.WriteString(" SFTY")
	}

	return buf.String()
}

func writeInt(buf *bytebufferpool.ByteBuffer, v int) {
	buf.B = strconv.AppendInt(buf.B, int64(v), 10)
}
