package engine

import (
	"slices"
	"time"
)

// RequiredSlots returns the grid minutes at which the station of the given
// coverage row requires staffing on the given date. Inactive rows and
// windows with an empty opening time contribute nothing.
func RequiredSlots(row CoverageRequirementRow, date time.Time) []int {
	if !row.Active || !row.AppliesTo(date) {
		return nil
	}
	w, ok := row.Days[date.Weekday()]
	if !ok {
		return nil
	}
	var slots []int
	for i := 0; i < SlotsPerDay; i++ {
		m := SlotMinute(i)
		if windowContains(w.LunchIn, w.LunchOut, m) || windowContains(w.DinnerIn, w.DinnerOut, m) {
			slots = append(slots, m)
		}
	}
	return slots
}

// windowContains tests one labelled window against a grid minute. A window
// with an empty or malformed bound contributes no required slots.
func windowContains(in, out string, minute int) bool {
	if in == "" || out == "" {
		return false
	}
	start, err := ParseClock(in)
	if err != nil {
		return false
	}
	end, err := ParseClock(out)
	if err != nil {
		return false
	}
	return InInterval(minute, start, end)
}

// SlotRequired reports whether any of the given rows requires the station
// staffed at the given grid minute on the given date.
func SlotRequired(rows []CoverageRequirementRow, station string, date time.Time, minute int) bool {
	for _, row := range rows {
		if row.Station != station {
			continue
		}
		if !row.Active || !row.AppliesTo(date) {
			continue
		}
		w, ok := row.Days[date.Weekday()]
		if !ok {
			continue
		}
		if windowContains(w.LunchIn, w.LunchOut, minute) || windowContains(w.DinnerIn, w.DinnerOut, minute) {
			return true
		}
	}
	return false
}

// BuildTasks decomposes coverage rows into required coverage tasks for every
// date in [from, to]: one task per contiguous covered run of grid slots per
// station per day. Rows for the same station on the same date are unioned
// before runs are cut.
func BuildTasks(rows []CoverageRequirementRow, from, to time.Time) []RequiredCoverageTask {
	var tasks []RequiredCoverageTask

	stations := stationNames(rows)
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		for _, station := range stations {
			slotSet := make(map[int]bool)
			for _, row := range rows {
				if row.Station != station {
					continue
				}
				for _, m := range RequiredSlots(row, date) {
					slotSet[m] = true
				}
			}
			if len(slotSet) == 0 {
				continue
			}
			slots := make([]int, 0, len(slotSet))
			for m := range slotSet {
				slots = append(slots, m)
			}
			slices.Sort(slots)

			runStart := slots[0]
			prev := slots[0]
			for _, m := range slots[1:] {
				if m != prev+SlotMinutes {
					tasks = append(tasks, newTask(date, station, runStart, prev+SlotMinutes))
					runStart = m
				}
				prev = m
			}
			tasks = append(tasks, newTask(date, station, runStart, prev+SlotMinutes))
		}
	}
	return tasks
}

func newTask(date time.Time, station string, startMinute, endMinute int) RequiredCoverageTask {
	return RequiredCoverageTask{
		Date:    date,
		Station: station,
		Start:   FormatClock(startMinute),
		End:     FormatClock(endMinute),
	}
}

// stationNames returns the distinct station names of a set of rows in
// first-seen order, keeping task output deterministic.
func stationNames(rows []CoverageRequirementRow) []string {
	seen := make(map[string]bool)
	var names []string
	for _, row := range rows {
		if !seen[row.Station] {
			seen[row.Station] = true
			names = append(names, row.Station)
		}
	}
	slices.Sort(names)
	return names
}

// TaskCovered reports whether any assignment overlaps the task's interval
// on the task's date and station.
func TaskCovered(task RequiredCoverageTask, assignments []Assignment) bool {
	return len(CoveringAssignments(task, assignments)) > 0
}

// CoveringAssignments returns the assignments that overlap the task's
// interval on the task's date and station.
func CoveringAssignments(task RequiredCoverageTask, assignments []Assignment) []Assignment {
	taskStart, err := ParseClock(task.Start)
	if err != nil {
		return nil
	}
	taskEnd, err := ParseClock(task.End)
	if err != nil {
		return nil
	}
	var covering []Assignment
	for _, a := range assignments {
		if !a.Date.Equal(task.Date) || a.Station != task.Station {
			continue
		}
		aStart, err := ParseClock(a.Start)
		if err != nil {
			continue
		}
		aEnd, err := ParseClock(a.End)
		if err != nil {
			continue
		}
		if IntervalsOverlap(aStart, aEnd, taskStart, taskEnd) {
			covering = append(covering, a)
		}
	}
	return covering
}
