package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tavolahq/brigade/pkg/core/engine"
)

// ShiftDurationRule warns about shifts shorter than the configured floor.
//
// Split shifts are a legitimate exception: a short closing or unloading
// shift is tolerated when the same staff member works a lunch shift on the
// same day whose interval overlaps or touches the short shift within the
// touch tolerance. Matching is by keyword on the shift's template name or
// station.
type ShiftDurationRule struct {
	floorHours        float64
	splitKeywords     []string
	lunchKeywords     []string
	touchToleranceMin int
}

// NewShiftDurationRule creates the rule with the standard 6-hour floor and
// Italian/English keyword sets for the split-shift exception.
func NewShiftDurationRule() *ShiftDurationRule {
	return &ShiftDurationRule{
		floorHours:        6,
		splitKeywords:     DefaultSplitKeywords(),
		lunchKeywords:     DefaultLunchKeywords(),
		touchToleranceMin: 15,
	}
}

// DefaultSplitKeywords returns a copy of the built-in split-shift keyword set
func DefaultSplitKeywords() []string {
	return []string{"closing", "unloading", "chiusura", "scarico"}
}

// DefaultLunchKeywords returns a copy of the built-in lunch keyword set
func DefaultLunchKeywords() []string {
	return []string{"lunch", "pranzo"}
}

// NewShiftDurationRuleWith creates the rule with custom floor and keywords
func NewShiftDurationRuleWith(floorHours float64, splitKeywords, lunchKeywords []string) *ShiftDurationRule {
	return &ShiftDurationRule{
		floorHours:        floorHours,
		splitKeywords:     splitKeywords,
		lunchKeywords:     lunchKeywords,
		touchToleranceMin: 15,
	}
}

func (r *ShiftDurationRule) ID() string {
	return "minimum_shift_duration"
}

func (r *ShiftDurationRule) Evaluate(ctx *engine.Context) ([]engine.ValidationResult, error) {
	var results []engine.ValidationResult
	for _, a := range ctx.Assignments {
		hours, ok := engine.ShiftHours(a)
		if !ok {
			continue
		}
		if hours >= r.floorHours {
			continue
		}
		if r.splitShiftException(ctx, a) {
			continue
		}

		staffName := a.Station
		if staff := ctx.StaffByID(a.StaffID); staff != nil {
			staffName = staff.Name
		}
		results = append(results, engine.ValidationResult{
			RuleID:   r.ID(),
			StaffID:  a.StaffID,
			Severity: engine.SeverityWarning,
			Date:     a.Date,
			Message: fmt.Sprintf(
				"%s works a %.2fh shift on %s, shorter than the %.0fh minimum",
				staffName, hours, a.Date.Format("2006-01-02"), r.floorHours),
			Metadata: map[string]string{
				"assignment":     a.ID,
				"duration_hours": strconv.FormatFloat(hours, 'f', 2, 64),
				"floor_hours":    strconv.FormatFloat(r.floorHours, 'f', 0, 64),
			},
		})
	}
	return results, nil
}

// splitShiftException suppresses the warning for a short closing/unloading
// shift paired with a same-day lunch shift that overlaps or touches it.
func (r *ShiftDurationRule) splitShiftException(ctx *engine.Context, short engine.Assignment) bool {
	if !matchesAny(short, r.splitKeywords) {
		return false
	}
	shortStart, err := engine.ParseClock(short.Start)
	if err != nil {
		return false
	}
	shortEnd, err := engine.ParseClock(short.End)
	if err != nil {
		return false
	}

	for _, other := range ctx.WindowAssignments(short.StaffID) {
		if other.ID == short.ID || !other.Date.Equal(short.Date) {
			continue
		}
		if !matchesAny(other, r.lunchKeywords) {
			continue
		}
		otherStart, err := engine.ParseClock(other.Start)
		if err != nil {
			continue
		}
		otherEnd, err := engine.ParseClock(other.End)
		if err != nil {
			continue
		}
		if engine.IntervalsOverlap(shortStart, shortEnd, otherStart, otherEnd) {
			return true
		}
		if touchesWithin(shortStart, shortEnd, otherStart, otherEnd, r.touchToleranceMin) {
			return true
		}
	}
	return false
}

// matchesAny tests an assignment's template and station against a keyword set
func matchesAny(a engine.Assignment, keywords []string) bool {
	template := strings.ToLower(a.Template)
	station := strings.ToLower(a.Station)
	for _, kw := range keywords {
		if strings.Contains(template, kw) || strings.Contains(station, kw) {
			return true
		}
	}
	return false
}

// touchesWithin reports whether two clock intervals come within tolerance
// minutes of each other end to end.
func touchesWithin(aStart, aEnd, bStart, bEnd, tolerance int) bool {
	gapAfterA := engine.DurationMinutes(aEnd, bStart)
	gapAfterB := engine.DurationMinutes(bEnd, aStart)
	return gapAfterA <= tolerance || gapAfterB <= tolerance
}
