package engine

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GenerationResult is the outcome of one generation run: the proposed batch
// of auto-generated assignments plus the required tasks no eligible staff
// member could take. An unassignable task is a normal reported outcome, not
// an error.
type GenerationResult struct {
	Assignments []Assignment
	Unassigned  []RequiredCoverageTask
}

// Audit returns the required coverage intervals in [from, to] that no
// assignment touches. Read-only diagnostic; nothing is mutated.
func Audit(ctx *Context, from, to time.Time) []RequiredCoverageTask {
	var gaps []RequiredCoverageTask
	for _, task := range BuildTasks(ctx.CoverageRows, from, to) {
		if ctx.Closed(task.Date) {
			continue
		}
		if !TaskCovered(task, ctx.Assignments) {
			gaps = append(gaps, task)
		}
	}
	return gaps
}

// Generate proposes assignments for every required coverage task in
// [from, to] that the kept schedule does not already cover.
//
// Manual assignments are always kept; previously auto-generated assignments
// inside the range are discarded and rebuilt. Per task, candidates must be
// eligible for the station, available, free of overlapping shifts, and must
// still satisfy the hard constraints (rest, consecutive days, rolling weekly
// hours) with the trial shift added. Among feasible candidates the cheapest
// by labor cost wins, tie-broken by fewest hours already assigned in range
// and then by staff ID.
//
// The whole pass is deterministic: tasks and candidates are visited in
// sorted order, assignment IDs are name-based UUIDs over the shift's
// identity, and no randomness is involved, so rerunning on unchanged input
// reproduces the same batch.
func Generate(ctx *Context, from, to time.Time) GenerationResult {
	// Kept schedule: everything manual, plus auto-generated shifts outside
	// the regeneration range
	var kept []Assignment
	for _, a := range ctx.Assignments {
		if a.Manual || a.Date.Before(from) || a.Date.After(to) {
			kept = append(kept, a)
		}
	}

	// Working history per staff member, lookback included so boundary
	// constraints are judged correctly
	working := make(map[int64][]Assignment)
	for _, a := range ctx.Lookback {
		working[a.StaffID] = append(working[a.StaffID], a)
	}
	for _, a := range kept {
		working[a.StaffID] = append(working[a.StaffID], a)
	}

	staff := slices.Clone(ctx.Staff)
	slices.SortFunc(staff, func(a, b StaffMember) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})

	tasks := BuildTasks(ctx.CoverageRows, from, to)
	slices.SortStableFunc(tasks, func(a, b RequiredCoverageTask) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if a.Start != b.Start {
			if a.Start < b.Start {
				return -1
			}
			return 1
		}
		if a.Station < b.Station {
			return -1
		}
		if a.Station > b.Station {
			return 1
		}
		return 0
	})

	result := GenerationResult{}
	scheduled := slices.Clone(kept)

	for _, task := range tasks {
		if ctx.Closed(task.Date) {
			continue
		}
		if TaskCovered(task, scheduled) {
			continue
		}

		var best *StaffMember
		var bestCost decimal.Decimal
		var bestHours float64

		trialFor := func(s StaffMember) Assignment {
			return Assignment{
				ID:      generatedID(s.ID, task),
				StaffID: s.ID,
				Date:    task.Date,
				Start:   task.Start,
				End:     task.End,
				Station: task.Station,
				Manual:  false,
			}
		}

		for i := range staff {
			s := staff[i]
			trial := trialFor(s)
			if !candidateFeasible(ctx, &s, working[s.ID], trial) {
				continue
			}
			cost := trialCost(&s, trial)
			hours := rangeHours(working[s.ID], from, to)
			if best == nil || cost.LessThan(bestCost) ||
				(cost.Equal(bestCost) && hours < bestHours) {
				best = &staff[i]
				bestCost = cost
				bestHours = hours
			}
		}

		if best == nil {
			result.Unassigned = append(result.Unassigned, task)
			continue
		}

		generated := trialFor(*best)
		result.Assignments = append(result.Assignments, generated)
		scheduled = append(scheduled, generated)
		working[best.ID] = append(working[best.ID], generated)
	}

	return result
}

// generatedID derives a stable assignment identifier from the shift's
// identity so regeneration on unchanged input yields identical IDs.
func generatedID(staffID int64, task RequiredCoverageTask) string {
	key := fmt.Sprintf("%d|%s|%s|%s|%s",
		staffID, task.Date.Format("2006-01-02"), task.Start, task.End, task.Station)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

// trialCost is the labor cost of a trial shift: hourly cost x multiplier x
// duration.
func trialCost(s *StaffMember, trial Assignment) decimal.Decimal {
	hours, ok := ShiftHours(trial)
	if !ok {
		return decimal.Zero
	}
	rate := s.HourlyCost
	if !s.CostMultiplier.IsZero() {
		rate = rate.Mul(s.CostMultiplier)
	}
	return rate.Mul(decimal.NewFromFloat(hours))
}

// rangeHours sums a staff member's scheduled hours inside [from, to]
func rangeHours(assignments []Assignment, from, to time.Time) float64 {
	var total float64
	for _, a := range assignments {
		if a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		if h, ok := ShiftHours(a); ok {
			total += h
		}
	}
	return total
}

// candidateFeasible checks station eligibility, availability, overlap, and
// the hard constraints with the trial shift added to the candidate's
// history. Pre-existing violations the trial does not participate in are
// not the generator's to fix and do not veto the candidate.
func candidateFeasible(ctx *Context, s *StaffMember, history []Assignment, trial Assignment) bool {
	if !s.EligibleFor(trial.Station) {
		return false
	}
	for _, u := range ctx.Unavailability {
		if u.StaffID == s.ID && u.Blocks(trial.Date, trial.Start, trial.End) {
			return false
		}
	}
	for _, a := range history {
		if AssignmentsOverlap(a, trial) {
			return false
		}
	}

	merged := append(slices.Clone(history), trial)
	SortAssignments(merged)

	// Rest gaps around the trial shift
	requiredRest := int(ctx.Limits.MinRestHours * 60)
	for i := 1; i < len(merged); i++ {
		prev, curr := merged[i-1], merged[i]
		if prev.ID != trial.ID && curr.ID != trial.ID {
			continue
		}
		if gap, ok := RestGapMinutes(prev, curr); ok && gap < requiredRest {
			return false
		}
	}

	// Consecutive-day streak containing the trial date
	dates := DistinctDates(merged)
	idx := slices.IndexFunc(dates, func(d time.Time) bool { return d.Equal(trial.Date) })
	if idx >= 0 {
		streak, _ := LongestStreakEndingAt(dates, idx)
		for j := idx + 1; j < len(dates); j++ {
			if !dates[j-1].AddDate(0, 0, 1).Equal(dates[j]) {
				break
			}
			streak++
		}
		if streak > ctx.Limits.MaxConsecutiveDays {
			return false
		}
	}

	// Rolling weekly hours for every 7-day window containing the trial date
	ceiling := WeeklyHourCeiling(s, ctx.Limits)
	for _, start := range dates {
		if trial.Date.Before(start) || trial.Date.After(start.AddDate(0, 0, 6)) {
			continue
		}
		if RollingWindowHours(merged, start) > ceiling {
			return false
		}
	}

	return true
}
