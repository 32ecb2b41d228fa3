package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayRows(t *testing.T) {
	t.Parallel()

	csv := "Date;Price;Volume;Bid;Ask;Now Delta Aggressive\n" +
		"2024-12-02 09:30:00;5000,25;120;0;0;35\n" +
		"2024-12-02 09:31:00;5000,50;80;0;0;-12\n" +
		";0;50;0;0;1\n" // zero price dropped

	rows, dates := ParseDayRows(csv)
	require.Len(t, rows, 2)
	assert.Equal(t, 5000.25, rows[0].Price)
	assert.Equal(t, 120.0, rows[0].Volume)
	assert.Equal(t, 35.0, rows[0].DeltaAgg)
	assert.Equal(t, -12.0, rows[1].DeltaAgg)
	assert.Equal(t, []string{"2024-12-02"}, dates)
}

func TestParseDayRowsHeaderFallback(t *testing.T) {
	t.Parallel()

	// Headerless-style export: fixed VolFix layout, price col 1,
	// volume col 2, delta col 5.
	csv := "c0;c1;c2;c3;c4;c5\n" +
		"x;101,25;40;a;b;7\n"

	rows, dates := ParseDayRows(csv)
	require.Len(t, rows, 1)
	assert.Equal(t, 101.25, rows[0].Price)
	assert.Equal(t, 40.0, rows[0].Volume)
	assert.Equal(t, 7.0, rows[0].DeltaAgg)
	assert.Empty(t, dates)
}

func TestParseDayRowsRussianHeaders(t *testing.T) {
	t.Parallel()

	csv := "Дата;Цена;Объём;Дельта агрессии\n" +
		"02.12.24 09:30;99,75;15;-4\n"

	rows, dates := ParseDayRows(csv)
	require.Len(t, rows, 1)
	assert.Equal(t, 99.75, rows[0].Price)
	assert.Equal(t, 15.0, rows[0].Volume)
	assert.Equal(t, -4.0, rows[0].DeltaAgg)
	assert.Equal(t, []string{"2024-12-02"}, dates)
}
