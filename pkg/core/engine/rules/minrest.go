package rules

import (
	"fmt"
	"strconv"

	"github.com/tavolahq/brigade/pkg/core/engine"
)

// MinimumRestRule enforces the minimum rest gap between consecutive shifts.
//
// For each staff member the lookback and current-window assignments are
// merged and walked pairwise in (date, start) order. A violation is only
// reported when the later shift of the pair falls inside the evaluation
// window, so historical violations are not re-reported on every run even
// though the earlier shift may come from lookback history.
//
// Overnight shifts end on the day after their start date; the rollover is
// applied before the gap is measured.
type MinimumRestRule struct{}

// NewMinimumRestRule creates the rule; the rest threshold comes from
// Limits.MinRestHours at evaluation time.
func NewMinimumRestRule() *MinimumRestRule {
	return &MinimumRestRule{}
}

func (r *MinimumRestRule) ID() string {
	return "minimum_rest"
}

func (r *MinimumRestRule) Evaluate(ctx *engine.Context) ([]engine.ValidationResult, error) {
	requiredMinutes := int(ctx.Limits.MinRestHours * 60)

	var results []engine.ValidationResult
	for _, staff := range ctx.Staff {
		history := ctx.History(staff.ID)
		for i := 1; i < len(history); i++ {
			prev := history[i-1]
			curr := history[i]

			// Shifts with missing times are skipped, not reported
			if prev.Start == "" || prev.End == "" || curr.Start == "" || curr.End == "" {
				continue
			}

			// Only report when the later shift is inside the window
			if !ctx.InWindow(curr.Date) {
				continue
			}

			gap, ok := engine.RestGapMinutes(prev, curr)
			if !ok {
				continue
			}
			if gap >= requiredMinutes {
				continue
			}

			results = append(results, engine.ValidationResult{
				RuleID:   r.ID(),
				StaffID:  staff.ID,
				Severity: engine.SeverityError,
				Date:     curr.Date,
				Message: fmt.Sprintf(
					"%s has %dh%02dm rest between shift %s and shift %s, minimum is %.0fh",
					staff.Name, gap/60, gap%60, prev.ID, curr.ID, ctx.Limits.MinRestHours),
				Metadata: map[string]string{
					"previous_assignment": prev.ID,
					"current_assignment":  curr.ID,
					"gap_minutes":         strconv.Itoa(gap),
					"required_minutes":    strconv.Itoa(requiredMinutes),
				},
			})
		}
	}
	return results, nil
}
