package market

import (
	"fmt"
	"strings"
)

// Side is the direction of a trade, normalized to LONG/SHORT.
// Broker statements report BUY/SELL; ParseSide folds both spellings.
type Side string

const (
	Long  Side = "LONG"
	Short Side = "SHORT"
)

// Sign returns +1 for LONG and -1 for SHORT, the convention used by the
// edge-slope and level-score rules.
func (s Side) Sign() float64 {
	if s == Short {
		return -1
	}
	return 1
}

func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LONG", "BUY", "B":
		return Long, nil
	case "SHORT", "SELL", "S":
		return Short, nil
	default:
		return "", fmt.Errorf("unknown side %q", s)
	}
}
