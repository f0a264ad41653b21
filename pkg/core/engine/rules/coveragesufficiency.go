package rules

import (
	"fmt"

	"github.com/tavolahq/brigade/pkg/core/engine"
)

// CoverageSufficiencyRule reports required coverage intervals that no
// assignment touches at all.
//
// Coverage is judged binary per required task: a task with at least one
// overlapping assignment on its date and station is covered, regardless of
// headcount, role, or skill. Partially late coverage is the orphaned
// coverage rule's territory; this rule complements it with the
// zero-coverage half.
type CoverageSufficiencyRule struct{}

// NewCoverageSufficiencyRule creates the rule
func NewCoverageSufficiencyRule() *CoverageSufficiencyRule {
	return &CoverageSufficiencyRule{}
}

func (r *CoverageSufficiencyRule) ID() string {
	return "coverage_sufficiency"
}

func (r *CoverageSufficiencyRule) Evaluate(ctx *engine.Context) ([]engine.ValidationResult, error) {
	tasks := engine.BuildTasks(ctx.CoverageRows, ctx.WindowStart, ctx.WindowEnd)

	var results []engine.ValidationResult
	for _, task := range tasks {
		if ctx.Closed(task.Date) {
			continue
		}
		if engine.TaskCovered(task, ctx.Assignments) {
			continue
		}
		results = append(results, engine.ValidationResult{
			RuleID:   r.ID(),
			Severity: engine.SeverityError,
			Date:     task.Date,
			Message: fmt.Sprintf(
				"station %s has no coverage from %s to %s on %s",
				task.Station, task.Start, task.End, task.Date.Format("2006-01-02")),
			Metadata: map[string]string{
				"station":        task.Station,
				"required_start": task.Start,
				"required_end":   task.End,
			},
		})
	}
	return results, nil
}
