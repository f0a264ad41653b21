package rules

import (
	"fmt"
	"strconv"

	"github.com/tavolahq/brigade/pkg/core/engine"
)

// WeeklyHoursRule caps the hours worked in any rolling 7-day window.
//
// Every distinct worked date in the current window is tried as a window
// start; the window is [date, date+6] inclusive. The ceiling is the higher
// of the staff member's contracted maximum and the configured default, plus
// the contract tolerance.
//
// Because overlapping windows are checked independently, one stretch of
// over-scheduling can trigger several violations on adjacent window starts.
// That is the intended rolling-window behavior, not duplicate reporting;
// collapsing it to one violation per staff member would hide which windows
// are over the cap.
type WeeklyHoursRule struct{}

// NewWeeklyHoursRule creates the rule; caps come from Limits and the staff
// contract at evaluation time.
func NewWeeklyHoursRule() *WeeklyHoursRule {
	return &WeeklyHoursRule{}
}

func (r *WeeklyHoursRule) ID() string {
	return "weekly_hours"
}

func (r *WeeklyHoursRule) Evaluate(ctx *engine.Context) ([]engine.ValidationResult, error) {
	var results []engine.ValidationResult
	for _, staff := range ctx.Staff {
		window := ctx.WindowAssignments(staff.ID)
		if len(window) == 0 {
			continue
		}
		ceiling := engine.WeeklyHourCeiling(&staff, ctx.Limits)

		for _, start := range engine.DistinctDates(window) {
			total := engine.RollingWindowHours(window, start)
			if total <= ceiling {
				continue
			}
			end := start.AddDate(0, 0, 6)
			results = append(results, engine.ValidationResult{
				RuleID:   r.ID(),
				StaffID:  staff.ID,
				Severity: engine.SeverityError,
				Date:     end,
				Message: fmt.Sprintf(
					"%s works %.2fh in the 7 days from %s to %s, ceiling is %.2fh",
					staff.Name, total,
					start.Format("2006-01-02"), end.Format("2006-01-02"), ceiling),
				Metadata: map[string]string{
					"window_start":  start.Format("2006-01-02"),
					"window_end":    end.Format("2006-01-02"),
					"total_hours":   strconv.FormatFloat(total, 'f', 2, 64),
					"ceiling_hours": strconv.FormatFloat(ceiling, 'f', 2, 64),
				},
			})
		}
	}
	return results, nil
}
