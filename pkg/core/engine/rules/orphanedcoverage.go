package rules

import (
	"fmt"
	"strconv"

	"github.com/tavolahq/brigade/pkg/core/engine"
)

// OrphanedCoverageRule flags required coverage that is technically met but
// whose earliest covering assignment starts measurably late, leaving an
// unfilled lead-in at the front of the requirement.
//
// Tasks with no covering assignment at all are someone else's concern (the
// coverage sufficiency rule); this rule only looks at partially late
// coverage. The lead-in must exceed the grace period and reach the minimum
// orphan length before an INFO is emitted.
type OrphanedCoverageRule struct {
	graceMinutes     int
	minOrphanMinutes int
}

// NewOrphanedCoverageRule creates the rule with the standard 15-minute
// grace period and 30-minute minimum orphan length.
func NewOrphanedCoverageRule() *OrphanedCoverageRule {
	return &OrphanedCoverageRule{
		graceMinutes:     15,
		minOrphanMinutes: 30,
	}
}

func (r *OrphanedCoverageRule) ID() string {
	return "orphaned_coverage"
}

func (r *OrphanedCoverageRule) Evaluate(ctx *engine.Context) ([]engine.ValidationResult, error) {
	dates := engine.DistinctDates(ctx.Assignments)
	if len(dates) == 0 {
		return nil, nil
	}
	tasks := engine.BuildTasks(ctx.CoverageRows, dates[0], dates[len(dates)-1])

	var results []engine.ValidationResult
	for _, task := range tasks {
		if ctx.Closed(task.Date) {
			continue
		}
		covering := engine.CoveringAssignments(task, ctx.Assignments)
		if len(covering) == 0 {
			// Total non-coverage is the sufficiency rule's output
			continue
		}

		taskStart, err := engine.ParseClock(task.Start)
		if err != nil {
			continue
		}
		// Earliest covering start on the business-day axis; starts before
		// the required start compare lower and make the lead-in negative
		earliest := 0
		found := false
		for _, a := range covering {
			start, err := engine.ParseClock(a.Start)
			if err != nil {
				continue
			}
			offset := engine.BusinessMinute(start) - engine.BusinessMinute(taskStart)
			if !found || offset < earliest {
				earliest = offset
				found = true
			}
		}
		if !found {
			continue
		}

		leadIn := earliest
		if leadIn <= r.graceMinutes || leadIn < r.minOrphanMinutes {
			continue
		}

		earliestClock := engine.FormatClock(taskStart + leadIn)
		results = append(results, engine.ValidationResult{
			RuleID:   r.ID(),
			Severity: engine.SeverityInfo,
			Date:     task.Date,
			Message: fmt.Sprintf(
				"station %s is required from %s on %s but the earliest shift starts at %s, leaving %d orphaned minutes; consider moving a shift earlier",
				task.Station, task.Start, task.Date.Format("2006-01-02"),
				earliestClock, leadIn),
			Metadata: map[string]string{
				"station":        task.Station,
				"required_start": task.Start,
				"earliest_start": earliestClock,
				"orphan_minutes": strconv.Itoa(leadIn),
				"required_end":   task.End,
			},
		})
	}
	return results, nil
}
