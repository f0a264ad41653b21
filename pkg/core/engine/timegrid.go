package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// The business day runs on a quarter-hour grid of 96 slots starting at
// 06:00 rather than midnight, matching restaurant operating hours. Clock
// values before 06:00 belong to the tail of the previous business day and
// are normalized by adding a full day before any comparison.
const (
	// DayStartMinute is the minute-of-day where the business day begins (06:00)
	DayStartMinute = 6 * 60

	// SlotMinutes is the width of one grid slot
	SlotMinutes = 15

	// SlotsPerDay is the number of grid slots in one business day
	SlotsPerDay = 96

	minutesPerDay = 24 * 60
)

// ParseClock converts a clock string to minutes of day. It accepts plain
// "HH:MM" as well as an ISO date-time, of which only the time portion is
// used.
func ParseClock(value string) (int, error) {
	s := strings.TrimSpace(value)
	if i := strings.Index(s, "T"); i >= 0 {
		s = s[i+1:]
	}
	if len(s) < 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid clock value %q", value)
	}
	hours, err := strconv.Atoi(s[0:2])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in clock value %q", value)
	}
	minutes, err := strconv.Atoi(s[3:5])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in clock value %q", value)
	}
	return hours*60 + minutes, nil
}

// FormatClock renders a grid minute back to "HH:MM". Minutes past the end
// of the civil day (the 06:00 rotation tail) wrap around.
func FormatClock(minute int) string {
	m := ((minute % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// normalizeMinute shifts clock values before the 06:00 day boundary into
// the next rotation so they compare after late-evening values.
func normalizeMinute(m int) int {
	if m < DayStartMinute {
		return m + minutesPerDay
	}
	return m
}

// BusinessMinute places a clock value on the business-day axis: values
// before 06:00 land after late-evening values instead of before them.
func BusinessMinute(m int) int {
	return normalizeMinute(m)
}

// InInterval is the half-open point-in-interval test start <= t < end on the
// business-day grid. The probe and both interval ends are normalized; an
// interval whose normalized end precedes its normalized start is overnight
// and has a full day added to the end only.
func InInterval(probe, start, end int) bool {
	p := normalizeMinute(probe)
	s := normalizeMinute(start)
	e := normalizeMinute(end)
	if e < s {
		e += minutesPerDay
	}
	return s <= p && p < e
}

// IntervalsOverlap tests two clock intervals for overlap on the business-day
// grid after overnight normalization.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	as := normalizeMinute(aStart)
	ae := normalizeMinute(aEnd)
	if ae < as {
		ae += minutesPerDay
	}
	bs := normalizeMinute(bStart)
	be := normalizeMinute(bEnd)
	if be < bs {
		be += minutesPerDay
	}
	return as < be && bs < ae
}

// SlotMinute returns the clock minute of grid slot i. Slots beyond midnight
// carry values above 1440 and represent the early hours of the next civil
// day.
func SlotMinute(i int) int {
	return DayStartMinute + i*SlotMinutes
}

// DurationMinutes returns the positive length of a clock interval,
// correct for both same-day and overnight shifts.
func DurationMinutes(start, end int) int {
	return ((end-start)%minutesPerDay + minutesPerDay) % minutesPerDay
}

// ClockOvernight reports whether a shift crosses midnight, judged on raw
// clock values: an end before the start means the shift ends the next day.
func ClockOvernight(start, end int) bool {
	return end < start
}
