package statement

import (
	"math"
	"strconv"
	"strings"
)

var numberCleaner = strings.NewReplacer(
	" ", " ", // no-break space
	" ", " ", // thin space
	"$", "",
	"€", "",
	"£", "",
	"\"", "",
)

// ParseNumber reads a locale-tolerant statement number: currency symbols and
// grouping spaces are stripped, a decimal comma becomes a dot, and the sign
// survives any symbol placement ("-$5", "$-5", "-5"). Unparseable input
// yields nil, never an error.
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(numberCleaner.Replace(s))
	if s == "" {
		return nil
	}

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n = math.Abs(n)
	if neg {
		n = -n
	}
	return &n
}

func numOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func ptr(f float64) *float64 { return &f }
