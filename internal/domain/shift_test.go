package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clock(hour, min int) time.Time {
	return time.Date(2026, time.March, 4, hour, min, 0, 0, time.UTC)
}

func TestShiftWindowAt(t *testing.T) {
	cases := []struct {
		hour, min int
		want      ShiftWindow
	}{
		{6, 0, ShiftMorning},
		{13, 59, ShiftMorning},
		{14, 0, ShiftAfternoon},
		{21, 59, ShiftAfternoon},
		{22, 0, ShiftNight},
		{23, 30, ShiftNight},
		{0, 0, ShiftNight},
		{1, 59, ShiftNight},
		{2, 0, ShiftDawn},
		{5, 59, ShiftDawn},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ShiftWindowAt(clock(tc.hour, tc.min)),
			"hour=%d min=%d", tc.hour, tc.min)
	}
}

func TestParseShiftWindow(t *testing.T) {
	w, ok := ParseShiftWindow("NIGHT")
	assert.True(t, ok)
	assert.Equal(t, ShiftNight, w)

	_, ok = ParseShiftWindow("GRAVEYARD")
	assert.False(t, ok)
}

func TestWeekBoundsStartsSunday(t *testing.T) {
	// Wednesday 2026-03-04 falls in the week of Sunday 2026-03-01.
	start, end := WeekBounds(time.Date(2026, time.March, 4, 15, 30, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, time.Sunday, start.Weekday())
}

func TestWeekBoundsOnSundayItself(t *testing.T) {
	sunday := time.Date(2026, time.March, 1, 23, 0, 0, 0, time.UTC)
	start, end := WeekBounds(sunday)

	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC), end)
}

func TestOverlaps(t *testing.T) {
	a1, a2 := clock(9, 0), clock(12, 0)

	assert.True(t, Overlaps(a1, a2, clock(11, 0), clock(14, 0)))
	assert.True(t, Overlaps(a1, a2, clock(8, 0), clock(9, 30)))
	assert.True(t, Overlaps(a1, a2, clock(10, 0), clock(11, 0)))

	// Shared boundaries are not overlaps.
	assert.False(t, Overlaps(a1, a2, clock(12, 0), clock(14, 0)))
	assert.False(t, Overlaps(a1, a2, clock(7, 0), clock(9, 0)))
}

func TestDurationHours(t *testing.T) {
	assert.Equal(t, 1.5, DurationHours(clock(9, 0), clock(10, 30)))
}
