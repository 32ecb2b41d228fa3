// Package gate decides whether an enriched trade entry matches a playbook
// and scores the level quality.
package gate

import (
	"fmt"
	"strings"

	"github.com/dmkov/vpjournal/market"
	"github.com/dmkov/vpjournal/profile"
)

// Mode selects the entry playbook under evaluation.
type Mode string

const (
	Fade     Mode = "FADE"
	Breakout Mode = "BREAKOUT"
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FADE":
		return Fade, nil
	case "BREAKOUT":
		return Breakout, nil
	default:
		return "", fmt.Errorf("unknown gate mode %q", s)
	}
}

// Result of one gate evaluation. Flags are populated only when Pass is true;
// a failing evaluation always carries an empty flag list.
type Result struct {
	Pass  bool
	Score int
	Flags []string
}

// Evaluate runs the playbook gate and the 0-10 level score.
func Evaluate(tr profile.EnrichedTrade, mode Mode) Result {
	var pass bool
	var flags []string

	if mode == Breakout {
		pass, flags = breakout(tr)
	} else {
		pass, flags = fade(tr)
	}

	return Result{Pass: pass, Score: LevelScore(tr), Flags: flags}
}

// fade requires a rejection setup: sitting just outside the value area on a
// low-volume shelf (for longs) or high-volume shelf (for shorts), with strong
// opposing delta and either thin structure behind or a ledge in the entry's
// favor. Entries into an HVN from the long side, or any HVN near the POC,
// are vetoed.
func fade(tr profile.EnrichedTrade) (bool, []string) {
	var flags []string

	atEdge := tr.EdgeDistanceTicks <= 4
	base := !tr.InValueArea && atEdge &&
		((tr.Side == market.Long && (tr.IsLVN || tr.VolumePercentile <= 0.2)) ||
			(tr.Side == market.Short && (tr.IsHVN || tr.VolumePercentile >= 0.8)))
	if base {
		flags = append(flags, "edge VA")
	}

	deltaOpp := tr.DeltaOpposesSide && tr.DeltaRank >= 0.7
	if deltaOpp {
		flags = append(flags, "delta opp (≥p70)")
	}

	extra := tr.ThinBehind || tr.EdgeSlope*tr.Side.Sign() > 0
	if extra {
		flags = append(flags, "thin/ledge")
	}

	avoid := (tr.IsHVN && tr.Side == market.Long) ||
		(tr.IsHVN && tr.DistanceToPOCTicks <= 6)

	if pass := base && deltaOpp && extra && !avoid; pass {
		return true, flags
	}
	return false, nil
}

// breakout requires continuation conditions: outside the value area at an
// unremarkable volume level, delta pushing with the trade, and real
// structure (not thin) behind the move.
func breakout(tr profile.EnrichedTrade) (bool, []string) {
	var flags []string

	base := !tr.InValueArea && tr.VolumePercentile > 0.2 && tr.VolumePercentile < 0.8
	if base {
		flags = append(flags, "outside & mid-vol")
	}

	deltaWith := !tr.DeltaOpposesSide && tr.DeltaRank >= 0.7
	if deltaWith {
		flags = append(flags, "delta with (≥p70)")
	}

	notThin := !tr.ThinBehind
	if notThin {
		flags = append(flags, "not thin")
	}

	if pass := base && deltaWith && notThin; pass {
		return true, flags
	}
	return false, nil
}

// LevelScore grades the entry location 0-10 regardless of playbook.
func LevelScore(tr profile.EnrichedTrade) int {
	s := 0
	if tr.EdgeDistanceTicks <= 4 {
		s += 2
	}
	if tr.Side == market.Long && tr.IsLVN {
		s += 2
	}
	if tr.Side == market.Short && tr.IsHVN {
		s += 2
	}
	if tr.DeltaOpposesSide && tr.DeltaRank >= 0.7 {
		s += 2
	}
	if tr.EdgeSlope*tr.Side.Sign() > 0 {
		s++
	}
	if tr.ThinBehind {
		s++
	}
	if tr.DistanceToPOCTicks >= 8 {
		s++
	}
	if tr.VolumeEsEquivalent >= tr.P70Es {
		s++
	}

	if s < 0 {
		return 0
	}
	if s > 10 {
		return 10
	}
	return s
}
