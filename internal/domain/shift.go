package domain

import "time"

// ShiftWindow buckets the day into the four operational shifts.
type ShiftWindow string

const (
	ShiftMorning   ShiftWindow = "MORNING"   // 06:00-14:00
	ShiftAfternoon ShiftWindow = "AFTERNOON" // 14:00-22:00
	ShiftNight     ShiftWindow = "NIGHT"     // 22:00-02:00, wraps midnight
	ShiftDawn      ShiftWindow = "DAWN"      // 02:00-06:00
)

// ShiftWindowAt maps a timestamp to its shift bucket by local hour.
// NIGHT is a circular range, so it is matched by exclusion of the others.
func ShiftWindowAt(t time.Time) ShiftWindow {
	hour := t.Hour()
	switch {
	case hour >= 6 && hour < 14:
		return ShiftMorning
	case hour >= 14 && hour < 22:
		return ShiftAfternoon
	case hour >= 2 && hour < 6:
		return ShiftDawn
	default:
		return ShiftNight
	}
}

// ParseShiftWindow validates a shift window label.
func ParseShiftWindow(s string) (ShiftWindow, bool) {
	switch ShiftWindow(s) {
	case ShiftMorning, ShiftAfternoon, ShiftNight, ShiftDawn:
		return ShiftWindow(s), true
	}
	return "", false
}

// WeekBounds returns the Sunday-start week containing t, as [start, end).
func WeekBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	start = start.AddDate(0, 0, -int(start.Weekday()))
	return start, start.AddDate(0, 0, 7)
}

// Overlaps reports whether [aStart, aEnd) intersects [bStart, bEnd).
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// DurationHours returns the span of [start, end) in fractional hours.
func DurationHours(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}
