package statement

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The three date shapes brokers actually export. Anything else is rejected
// upstream with a named reason rather than guessed at.
var (
	reDayDot   = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{2}|\d{4})\s+(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	reDaySlash = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})\s+(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	reISO      = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})[ T](\d{2}):(\d{2})(?::(\d{2}))?$`)
)

var markCleaner = strings.NewReplacer("‎", "", "‏", "")

// ParseDate reads dd.mm.yy(yy), dd/mm/yy(yy) and yyyy-mm-dd[ T] timestamps,
// with optional seconds, in local time. Two-digit years below 70 land in the
// 2000s, the rest in the 1900s. Unmatched input yields nil.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(markCleaner.Replace(s))
	if s == "" {
		return nil
	}

	if m := reDayDot.FindStringSubmatch(s); m != nil {
		return dayFirst(m)
	}
	if m := reDaySlash.FindStringSubmatch(s); m != nil {
		return dayFirst(m)
	}
	if m := reISO.FindStringSubmatch(s); m != nil {
		t := time.Date(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]),
			atoi(m[4]), atoi(m[5]), atoi(m[6]), 0, time.Local)
		return &t
	}
	return nil
}

func dayFirst(m []string) *time.Time {
	year := atoi(m[3])
	if len(m[3]) == 2 {
		if year < 70 {
			year += 2000
		} else {
			year += 1900
		}
	}
	t := time.Date(year, time.Month(atoi(m[2])), atoi(m[1]),
		atoi(m[4]), atoi(m[5]), atoi(m[6]), 0, time.Local)
	return &t
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
