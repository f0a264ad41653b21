// Package rules holds the concrete constraint evaluators run by the engine.
// Each rule is stateless and reads only the shared evaluation context;
// thresholds live in the context's Limits block or in the rule constructor.
package rules

import "github.com/tavolahq/brigade/pkg/core/engine"

// Default returns the full rule set in its standard evaluation order.
// Callers needing a subset build their own slice or use Engine.Without.
func Default() []engine.Rule {
	return []engine.Rule{
		NewMinimumRestRule(),
		NewWeeklyHoursRule(),
		NewConsecutiveDaysRule(),
		NewShiftDurationRule(),
		NewOrphanedCoverageRule(),
		NewCoverageSufficiencyRule(),
	}
}
