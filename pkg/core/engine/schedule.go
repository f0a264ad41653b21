package engine

import (
	"slices"
	"time"
)

// Helpers for reasoning about assignments as absolute moments in time.
// All of them tolerate partially populated records by returning ok=false,
// since upstream data is allowed to carry shifts with missing times.

// ShiftHours returns the duration of an assignment in hours. ok is false
// when either clock value is missing or malformed.
func ShiftHours(a Assignment) (float64, bool) {
	start, err := ParseClock(a.Start)
	if err != nil {
		return 0, false
	}
	end, err := ParseClock(a.End)
	if err != nil {
		return 0, false
	}
	return float64(DurationMinutes(start, end)) / 60, true
}

// AbsoluteStart returns the moment an assignment begins
func AbsoluteStart(a Assignment) (time.Time, bool) {
	start, err := ParseClock(a.Start)
	if err != nil {
		return time.Time{}, false
	}
	return a.Date.Add(time.Duration(start) * time.Minute), true
}

// AbsoluteEnd returns the moment an assignment ends, rolling over to the
// next day for overnight shifts (raw end clock before raw start clock).
func AbsoluteEnd(a Assignment) (time.Time, bool) {
	start, err := ParseClock(a.Start)
	if err != nil {
		return time.Time{}, false
	}
	end, err := ParseClock(a.End)
	if err != nil {
		return time.Time{}, false
	}
	day := a.Date
	if ClockOvernight(start, end) {
		day = day.AddDate(0, 0, 1)
	}
	return day.Add(time.Duration(end) * time.Minute), true
}

// AssignmentsOverlap reports whether two same-date assignments occupy
// overlapping clock intervals. Assignments on different dates never overlap
// here; cross-midnight adjacency is the minimum-rest rule's concern.
func AssignmentsOverlap(a, b Assignment) bool {
	if !a.Date.Equal(b.Date) {
		return false
	}
	aStart, err := ParseClock(a.Start)
	if err != nil {
		return false
	}
	aEnd, err := ParseClock(a.End)
	if err != nil {
		return false
	}
	bStart, err := ParseClock(b.Start)
	if err != nil {
		return false
	}
	bEnd, err := ParseClock(b.End)
	if err != nil {
		return false
	}
	return IntervalsOverlap(aStart, aEnd, bStart, bEnd)
}

// DistinctDates returns the sorted distinct calendar dates of a set of
// assignments.
func DistinctDates(assignments []Assignment) []time.Time {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, a := range assignments {
		if !seen[a.Date] {
			seen[a.Date] = true
			dates = append(dates, a.Date)
		}
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })
	return dates
}

// RollingWindowHours sums the duration of all assignments whose date falls
// in the 7-day window [start, start+6]. Assignments with missing times
// contribute nothing.
func RollingWindowHours(assignments []Assignment, start time.Time) float64 {
	end := start.AddDate(0, 0, 6)
	var total float64
	for _, a := range assignments {
		if a.Date.Before(start) || a.Date.After(end) {
			continue
		}
		if hours, ok := ShiftHours(a); ok {
			total += hours
		}
	}
	return total
}

// WeeklyHourCeiling returns the effective rolling weekly hour cap for a
// staff member: the higher of the contracted maximum and the configured
// default, plus the contract tolerance. staff may be nil.
func WeeklyHourCeiling(staff *StaffMember, limits Limits) float64 {
	ceiling := limits.MaxWeeklyHours
	if staff != nil && staff.MaxWeeklyHours > ceiling {
		ceiling = staff.MaxWeeklyHours
	}
	return ceiling + limits.ContractToleranceHours
}

// RestGapMinutes returns the gap between the end of prev and the start of
// curr in minutes. ok is false when either assignment lacks a usable time.
func RestGapMinutes(prev, curr Assignment) (int, bool) {
	prevEnd, ok := AbsoluteEnd(prev)
	if !ok {
		return 0, false
	}
	currStart, ok := AbsoluteStart(curr)
	if !ok {
		return 0, false
	}
	return int(currStart.Sub(prevEnd).Minutes()), true
}

// LongestStreakEndingAt walks sorted distinct dates and returns the length
// of the consecutive-day run ending at the date at index i, together with
// the date the run started on.
func LongestStreakEndingAt(dates []time.Time, i int) (int, time.Time) {
	streak := 1
	start := dates[i]
	for j := i; j > 0; j-- {
		if !dates[j-1].AddDate(0, 0, 1).Equal(dates[j]) {
			break
		}
		streak++
		start = dates[j-1]
	}
	return streak, start
}
