package statement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDateFormats(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want time.Time
	}{
		{"02.01.24 15:04", time.Date(2024, 1, 2, 15, 4, 0, 0, time.Local)},
		{"02.01.2024 15:04:05", time.Date(2024, 1, 2, 15, 4, 5, 0, time.Local)},
		{"2/1/24 9:30", time.Date(2024, 1, 2, 9, 30, 0, 0, time.Local)},
		{"02/01/1999 23:59:59", time.Date(1999, 1, 2, 23, 59, 59, 0, time.Local)},
		{"2024-01-02 15:04", time.Date(2024, 1, 2, 15, 4, 0, 0, time.Local)},
		{"2024-01-02T15:04:05", time.Date(2024, 1, 2, 15, 4, 5, 0, time.Local)},
		{"  02.01.24 15:04  ", time.Date(2024, 1, 2, 15, 4, 0, 0, time.Local)},
	}
	for _, tc := range cases {
		got := ParseDate(tc.in)
		if assert.NotNil(t, got, tc.in) {
			assert.True(t, got.Equal(tc.want), "%s: got %v", tc.in, got)
		}
	}
}

func TestParseDateTwoDigitYearPivot(t *testing.T) {
	t.Parallel()

	d := ParseDate("01.01.69 00:00")
	if assert.NotNil(t, d) {
		assert.Equal(t, 2069, d.Year())
	}

	d = ParseDate("01.01.70 00:00")
	if assert.NotNil(t, d) {
		assert.Equal(t, 1970, d.Year())
	}
}

func TestParseDateRejects(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"",
		"yesterday",
		"2024-01-02",       // date without time
		"15:04",            // time without date
		"01-02-2024 15:04", // unsupported separator order
	} {
		assert.Nil(t, ParseDate(in), "%q", in)
	}
}
