package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftHours(t *testing.T) {
	a := Assignment{Date: day(2024, 3, 4), Start: "12:00", End: "20:30"}
	hours, ok := ShiftHours(a)
	require.True(t, ok)
	assert.InDelta(t, 8.5, hours, 0.001)

	overnight := Assignment{Date: day(2024, 3, 4), Start: "18:00", End: "02:00"}
	hours, ok = ShiftHours(overnight)
	require.True(t, ok)
	assert.InDelta(t, 8, hours, 0.001)

	_, ok = ShiftHours(Assignment{Date: day(2024, 3, 4), Start: "12:00"})
	assert.False(t, ok, "missing end time")
}

func TestAbsoluteEnd_OvernightRollsOver(t *testing.T) {
	a := Assignment{Date: day(2024, 3, 4), Start: "22:00", End: "03:00"}
	end, ok := AbsoluteEnd(a)
	require.True(t, ok)
	assert.True(t, end.Equal(day(2024, 3, 5).Add(3*time.Hour)))

	sameDay := Assignment{Date: day(2024, 3, 4), Start: "12:00", End: "18:00"}
	end, ok = AbsoluteEnd(sameDay)
	require.True(t, ok)
	assert.True(t, end.Equal(day(2024, 3, 4).Add(18*time.Hour)))
}

func TestRestGapMinutes_AcrossMidnight(t *testing.T) {
	prev := Assignment{Date: day(2024, 3, 4), Start: "18:00", End: "01:00"}
	curr := Assignment{Date: day(2024, 3, 5), Start: "10:00", End: "18:00"}

	gap, ok := RestGapMinutes(prev, curr)
	require.True(t, ok)
	assert.Equal(t, 9*60, gap, "overnight end is 01:00 on the 5th, start 10:00 same day")
}

func TestDistinctDates(t *testing.T) {
	assignments := []Assignment{
		{Date: day(2024, 3, 5)},
		{Date: day(2024, 3, 4)},
		{Date: day(2024, 3, 5)},
	}
	dates := DistinctDates(assignments)
	require.Len(t, dates, 2)
	assert.True(t, dates[0].Equal(day(2024, 3, 4)))
	assert.True(t, dates[1].Equal(day(2024, 3, 5)))
}

func TestRollingWindowHours(t *testing.T) {
	var assignments []Assignment
	for i := 0; i < 8; i++ {
		assignments = append(assignments, Assignment{
			Date: day(2024, 3, 4).AddDate(0, 0, i), Start: "12:00", End: "18:00",
		})
	}
	// Window [4th, 10th] holds seven of the eight 6h shifts
	assert.InDelta(t, 42, RollingWindowHours(assignments, day(2024, 3, 4)), 0.001)
	assert.InDelta(t, 42, RollingWindowHours(assignments, day(2024, 3, 5)), 0.001)
}

func TestWeeklyHourCeiling(t *testing.T) {
	limits := DefaultLimits()

	assert.InDelta(t, 41, WeeklyHourCeiling(nil, limits), 0.001)

	parttime := &StaffMember{MaxWeeklyHours: 24}
	assert.InDelta(t, 41, WeeklyHourCeiling(parttime, limits), 0.001,
		"configured default wins when the contract is lower")

	fulltime := &StaffMember{MaxWeeklyHours: 48}
	assert.InDelta(t, 49, WeeklyHourCeiling(fulltime, limits), 0.001,
		"a higher contract raises the ceiling")
}

func TestSortAssignments(t *testing.T) {
	assignments := []Assignment{
		{ID: "c", Date: day(2024, 3, 5), Start: "09:00"},
		{ID: "a", Date: day(2024, 3, 4), Start: "18:00"},
		{ID: "b", Date: day(2024, 3, 5), Start: "08:00"},
	}
	SortAssignments(assignments)
	assert.Equal(t, []string{"a", "b", "c"},
		[]string{assignments[0].ID, assignments[1].ID, assignments[2].ID})
}

func TestUnavailabilityBlocks(t *testing.T) {
	fullDay := Unavailability{StaffID: 1, From: day(2024, 3, 4)}
	assert.True(t, fullDay.Blocks(day(2024, 3, 4), "12:00", "18:00"))
	assert.False(t, fullDay.Blocks(day(2024, 3, 5), "12:00", "18:00"))

	ranged := Unavailability{StaffID: 1, From: day(2024, 3, 4), To: day(2024, 3, 6)}
	assert.True(t, ranged.Blocks(day(2024, 3, 6), "12:00", "18:00"))

	partial := Unavailability{StaffID: 1, From: day(2024, 3, 4), Start: "08:00", End: "12:00"}
	assert.False(t, partial.Blocks(day(2024, 3, 4), "12:00", "18:00"), "shift starts when the block ends")
	assert.True(t, partial.Blocks(day(2024, 3, 4), "11:00", "18:00"))
}
