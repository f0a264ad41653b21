package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tavolahq/brigade/internal/config"
	"github.com/tavolahq/brigade/pkg/core/engine"
)

// ValidateScheduleResult contains the validation findings for a window
type ValidateScheduleResult struct {
	From    time.Time
	To      time.Time
	Results []engine.ValidationResult
}

// SeverityCounts tallies the results by severity
func (r *ValidateScheduleResult) SeverityCounts() map[engine.Severity]int {
	counts := make(map[engine.Severity]int)
	for _, res := range r.Results {
		counts[res.Severity]++
	}
	return counts
}

// ValidateSchedule runs the full rule set against the assignments in
// [from, to] and returns every finding. The schedule itself is not modified.
func ValidateSchedule(
	ctx context.Context,
	database ScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	from, to time.Time,
) (*ValidateScheduleResult, error) {
	logger.Debug("Validating schedule",
		zap.String("from", from.Format(dateLayout)),
		zap.String("to", to.Format(dateLayout)))

	engineCtx, err := loadEngineContext(ctx, database, cfg, from, to)
	if err != nil {
		return nil, err
	}

	logger.Debug("Evaluation context assembled",
		zap.Int("staff", len(engineCtx.Staff)),
		zap.Int("assignments", len(engineCtx.Assignments)),
		zap.Int("lookback", len(engineCtx.Lookback)),
		zap.Int("coverage_rows", len(engineCtx.CoverageRows)),
		zap.Int("closed_dates", len(engineCtx.ClosedDates)))

	eng := engine.New(buildRules(cfg)...)
	results := eng.Validate(engineCtx)

	logger.Debug("Validation completed", zap.Int("findings", len(results)))

	return &ValidateScheduleResult{
		From:    from,
		To:      to,
		Results: results,
	}, nil
}
