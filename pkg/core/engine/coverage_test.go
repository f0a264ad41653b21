package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weekRow(station string, w DayWindows) CoverageRequirementRow {
	days := make(map[time.Weekday]DayWindows)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		days[wd] = w
	}
	return CoverageRequirementRow{Station: station, Days: days, Active: true}
}

func TestRequiredSlots_LunchWindowRoundTrip(t *testing.T) {
	row := weekRow("floor", DayWindows{LunchIn: "11:00", LunchOut: "15:00"})
	date := day(2024, 3, 4)

	slots := RequiredSlots(row, date)
	require.Len(t, slots, 16, "11:00-15:00 is 16 quarter-hour slots")

	covered := make(map[int]bool)
	for _, m := range slots {
		covered[m] = true
	}
	lunchIn, _ := ParseClock("11:00")
	lunchOut, _ := ParseClock("15:00")
	for i := 0; i < SlotsPerDay; i++ {
		m := SlotMinute(i)
		assert.Equal(t, InInterval(m, lunchIn, lunchOut), covered[m],
			"slot %s", FormatClock(m))
	}
}

func TestRequiredSlots_OvernightDinnerWindow(t *testing.T) {
	row := weekRow("bar", DayWindows{DinnerIn: "22:00", DinnerOut: "02:00"})
	slots := RequiredSlots(row, day(2024, 3, 4))
	require.Len(t, slots, 16, "22:00-02:00 is 16 quarter-hour slots across the rotation")

	assert.Equal(t, "22:00", FormatClock(slots[0]))
	assert.Equal(t, "01:45", FormatClock(slots[len(slots)-1]))
}

func TestRequiredSlots_InactiveRow(t *testing.T) {
	row := weekRow("floor", DayWindows{LunchIn: "11:00", LunchOut: "15:00"})
	row.Active = false
	assert.Empty(t, RequiredSlots(row, day(2024, 3, 4)))
}

func TestRequiredSlots_EmptyHalfDay(t *testing.T) {
	row := weekRow("floor", DayWindows{DinnerIn: "18:00", DinnerOut: "23:00"})
	slots := RequiredSlots(row, day(2024, 3, 4))
	require.NotEmpty(t, slots)
	assert.Equal(t, "18:00", FormatClock(slots[0]), "empty lunch window contributes nothing")
}

func TestRequiredSlots_WeekAnchoredRow(t *testing.T) {
	row := weekRow("floor", DayWindows{LunchIn: "11:00", LunchOut: "15:00"})
	row.WeekStart = day(2024, 3, 4)

	assert.NotEmpty(t, RequiredSlots(row, day(2024, 3, 6)), "date inside the anchored week")
	assert.Empty(t, RequiredSlots(row, day(2024, 3, 11)), "date in the following week")
}

func TestBuildTasks_SplitsLunchAndDinner(t *testing.T) {
	row := weekRow("floor", DayWindows{
		LunchIn: "12:00", LunchOut: "15:00",
		DinnerIn: "19:00", DinnerOut: "23:00",
	})
	date := day(2024, 3, 4)

	tasks := BuildTasks([]CoverageRequirementRow{row}, date, date)
	require.Len(t, tasks, 2)

	assert.Equal(t, "12:00", tasks[0].Start)
	assert.Equal(t, "15:00", tasks[0].End)
	assert.Equal(t, "19:00", tasks[1].Start)
	assert.Equal(t, "23:00", tasks[1].End)
	for _, task := range tasks {
		assert.Equal(t, "floor", task.Station)
		assert.True(t, task.Date.Equal(date))
	}
}

func TestBuildTasks_MergesAdjacentWindows(t *testing.T) {
	row := weekRow("floor", DayWindows{
		LunchIn: "12:00", LunchOut: "17:00",
		DinnerIn: "17:00", DinnerOut: "23:00",
	})
	date := day(2024, 3, 4)

	tasks := BuildTasks([]CoverageRequirementRow{row}, date, date)
	require.Len(t, tasks, 1, "touching windows merge into one task")
	assert.Equal(t, "12:00", tasks[0].Start)
	assert.Equal(t, "23:00", tasks[0].End)
}

func TestBuildTasks_OvernightWindowEndsPastMidnight(t *testing.T) {
	row := weekRow("bar", DayWindows{DinnerIn: "22:00", DinnerOut: "02:00"})
	date := day(2024, 3, 4)

	tasks := BuildTasks([]CoverageRequirementRow{row}, date, date)
	require.Len(t, tasks, 1)
	assert.Equal(t, "22:00", tasks[0].Start)
	assert.Equal(t, "02:00", tasks[0].End)
}

func TestBuildTasks_MultipleStationsAndDays(t *testing.T) {
	rows := []CoverageRequirementRow{
		weekRow("floor", DayWindows{LunchIn: "12:00", LunchOut: "15:00"}),
		weekRow("bar", DayWindows{DinnerIn: "18:00", DinnerOut: "23:00"}),
	}
	from := day(2024, 3, 4)
	to := day(2024, 3, 5)

	tasks := BuildTasks(rows, from, to)
	require.Len(t, tasks, 4, "two stations over two days")

	// Stations come out in sorted order within a day
	assert.Equal(t, "bar", tasks[0].Station)
	assert.Equal(t, "floor", tasks[1].Station)
	assert.True(t, tasks[2].Date.After(tasks[1].Date))
}

func TestTaskCovered(t *testing.T) {
	task := RequiredCoverageTask{
		Date: day(2024, 3, 4), Station: "floor", Start: "12:00", End: "15:00",
	}

	covering := Assignment{
		ID: "a1", StaffID: 1, Date: day(2024, 3, 4),
		Start: "11:00", End: "16:00", Station: "floor",
	}
	assert.True(t, TaskCovered(task, []Assignment{covering}))

	wrongStation := covering
	wrongStation.Station = "bar"
	assert.False(t, TaskCovered(task, []Assignment{wrongStation}))

	wrongDay := covering
	wrongDay.Date = day(2024, 3, 5)
	assert.False(t, TaskCovered(task, []Assignment{wrongDay}))

	disjoint := covering
	disjoint.Start = "18:00"
	disjoint.End = "23:00"
	assert.False(t, TaskCovered(task, []Assignment{disjoint}))
}
