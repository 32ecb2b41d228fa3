package statement

import (
	"regexp"
	"sort"
	"time"

	"github.com/dmkov/vpjournal/market"
)

// Volume-journal exports name their columns loosely; match by pattern and
// fall back to the fixed layout VolFix writes (price 1, volume 2, delta 5).
var (
	rePriceHdr = regexp.MustCompile(`(?i)^price$|^цена`)
	reVolHdr   = regexp.MustCompile(`(?i)^volume$|^об.?ём$|^объем$`)
	reDeltaHdr = regexp.MustCompile(`(?i)now\s*delta.*aggr|delta.*aggr|агресс`)
	reDateHdr  = regexp.MustCompile(`(?i)^date$|time|^время|^дата`)
)

func findColumn(header []string, re *regexp.Regexp, fallback int) int {
	for i, h := range header {
		if re.MatchString(h) {
			return i
		}
	}
	return fallback
}

// ParseDayRows reads a volume-journal CSV (per-price volume and aggressor
// delta) into rows plus the set of local dates the file covers, sorted.
// Rows without a parseable price are dropped; numbers degrade to zero.
func ParseDayRows(text string) ([]market.PriceVolumeRow, []string) {
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil, nil
	}

	delim := DetectDelimiter(lines[0])
	header := splitFields(lines[0], delim)

	priceI := findColumn(header, rePriceHdr, 1)
	volI := findColumn(header, reVolHdr, 2)
	deltaI := findColumn(header, reDeltaHdr, 5)
	dateI := findColumn(header, reDateHdr, -1)

	at := func(cols []string, i int) string {
		if i < 0 || i >= len(cols) {
			return ""
		}
		return cols[i]
	}

	var rows []market.PriceVolumeRow
	dates := make(map[string]struct{})

	for _, ln := range lines[1:] {
		cols := splitFields(ln, delim)

		price := numOrZero(ParseNumber(at(cols, priceI)))
		if price == 0 {
			continue
		}

		rows = append(rows, market.PriceVolumeRow{
			Price:    price,
			Volume:   numOrZero(ParseNumber(at(cols, volI))),
			DeltaAgg: numOrZero(ParseNumber(at(cols, deltaI))),
		})

		if ts := parseDayTimestamp(at(cols, dateI)); ts != nil {
			dates[ts.Format("2006-01-02")] = struct{}{}
		}
	}

	keys := make([]string, 0, len(dates))
	for k := range dates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return rows, keys
}

// parseDayTimestamp accepts RFC3339 as written by charting tools, the plain
// "yyyy-mm-dd hh:mm[:ss]" form, and the broker formats ParseDate knows.
func parseDayTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		lt := t.Local()
		return &lt
	}
	return ParseDate(s)
}
