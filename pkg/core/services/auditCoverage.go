package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tavolahq/brigade/internal/config"
	"github.com/tavolahq/brigade/pkg/core/engine"
	"github.com/tavolahq/brigade/pkg/db"
)

// AuditCoverageStore defines the database operations the coverage audit needs
type AuditCoverageStore interface {
	GetAssignmentsInRange(ctx context.Context, from, to string) ([]db.Assignment, error)
	GetCoverageRequirements(ctx context.Context) ([]db.CoverageRequirement, error)
}

// AuditCoverageResult lists the required coverage intervals in a window that
// no assignment touches
type AuditCoverageResult struct {
	From time.Time
	To   time.Time
	Gaps []engine.RequiredCoverageTask
}

// AuditCoverage reports the uncovered coverage requirements in [from, to]
// without changing the schedule
func AuditCoverage(
	ctx context.Context,
	database AuditCoverageStore,
	cfg *config.Config,
	logger *zap.Logger,
	from, to time.Time,
) (*AuditCoverageResult, error) {
	logger.Debug("Auditing coverage",
		zap.String("from", from.Format(dateLayout)),
		zap.String("to", to.Format(dateLayout)))

	assignmentRecords, err := database.GetAssignmentsInRange(ctx, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	assignments, err := mapAssignments(assignmentRecords)
	if err != nil {
		return nil, err
	}

	coverageRecords, err := database.GetCoverageRequirements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch coverage requirements: %w", err)
	}
	coverage, err := mapCoverage(coverageRecords)
	if err != nil {
		return nil, err
	}

	closed, err := expandClosedDates(cfg.ClosureRules, from, to)
	if err != nil {
		return nil, err
	}

	engineCtx := &engine.Context{
		Assignments:  assignments,
		CoverageRows: coverage,
		ClosedDates:  closed,
		WindowStart:  from,
		WindowEnd:    to,
	}
	gaps := engine.Audit(engineCtx, from, to)

	logger.Debug("Coverage audit completed", zap.Int("gaps", len(gaps)))

	return &AuditCoverageResult{From: from, To: to, Gaps: gaps}, nil
}
