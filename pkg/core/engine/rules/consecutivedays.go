package rules

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tavolahq/brigade/pkg/core/engine"
)

// ConsecutiveDaysRule limits how many calendar days in a row a staff member
// may work.
//
// Lookback and current-window assignments are merged so a streak that began
// before the evaluation window still counts in full. A violation is only
// reported when the triggering date has at least one assignment inside the
// current window, so purely historical streaks are not re-reported.
type ConsecutiveDaysRule struct{}

// NewConsecutiveDaysRule creates the rule; the day limit comes from
// Limits.MaxConsecutiveDays at evaluation time.
func NewConsecutiveDaysRule() *ConsecutiveDaysRule {
	return &ConsecutiveDaysRule{}
}

func (r *ConsecutiveDaysRule) ID() string {
	return "consecutive_days"
}

func (r *ConsecutiveDaysRule) Evaluate(ctx *engine.Context) ([]engine.ValidationResult, error) {
	var results []engine.ValidationResult
	for _, staff := range ctx.Staff {
		history := ctx.History(staff.ID)
		if len(history) == 0 {
			continue
		}
		windowDates := make(map[time.Time]bool)
		for _, a := range ctx.WindowAssignments(staff.ID) {
			windowDates[a.Date] = true
		}

		dates := engine.DistinctDates(history)
		streak := 0
		for i, date := range dates {
			if i == 0 || !dates[i-1].AddDate(0, 0, 1).Equal(date) {
				streak = 1
			} else {
				streak++
			}
			if streak <= ctx.Limits.MaxConsecutiveDays {
				continue
			}
			// Report only when the trigger date carries in-window work
			if !windowDates[date] {
				continue
			}
			streakLen, streakStart := engine.LongestStreakEndingAt(dates, i)
			results = append(results, engine.ValidationResult{
				RuleID:   r.ID(),
				StaffID:  staff.ID,
				Severity: engine.SeverityError,
				Date:     date,
				Message: fmt.Sprintf(
					"%s works %d consecutive days since %s, maximum is %d",
					staff.Name, streakLen,
					streakStart.Format("2006-01-02"), ctx.Limits.MaxConsecutiveDays),
				Metadata: map[string]string{
					"streak_days":  strconv.Itoa(streakLen),
					"streak_start": streakStart.Format("2006-01-02"),
					"maximum_days": strconv.Itoa(ctx.Limits.MaxConsecutiveDays),
				},
			})
		}
	}
	return results, nil
}
