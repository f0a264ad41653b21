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

// GenerateScheduleStore defines the database operations schedule generation
// needs on top of the shared reads
type GenerateScheduleStore interface {
	ScheduleStore

	ReplaceGeneratedAssignments(ctx context.Context, from, to string, batch []db.Assignment) error
}

// GenerateScheduleResult contains the generation outcome for a window
type GenerateScheduleResult struct {
	From time.Time
	To   time.Time

	// Generated holds the new machine-made assignments for the window.
	// Manual assignments stay in the store and are not repeated here.
	Generated []engine.Assignment

	// Unassigned lists the required coverage no feasible staff member could
	// take
	Unassigned []engine.RequiredCoverageTask

	// Persisted is false on a dry run
	Persisted bool
}

// GenerateSchedule fills the uncovered coverage requirements in [from, to]
// with new assignments and, unless dryRun is set, replaces the window's
// previous machine-made assignments with the fresh batch. Manual assignments
// are never touched.
func GenerateSchedule(
	ctx context.Context,
	database GenerateScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	from, to time.Time,
	dryRun bool,
) (*GenerateScheduleResult, error) {
	logger.Debug("Generating schedule",
		zap.String("from", from.Format(dateLayout)),
		zap.String("to", to.Format(dateLayout)),
		zap.Bool("dry_run", dryRun))

	engineCtx, err := loadEngineContext(ctx, database, cfg, from, to)
	if err != nil {
		return nil, err
	}

	result := engine.Generate(engineCtx, from, to)

	var generated []engine.Assignment
	for _, a := range result.Assignments {
		if !a.Manual && !a.Date.Before(from) && !a.Date.After(to) {
			generated = append(generated, a)
		}
	}

	logger.Debug("Generation completed",
		zap.Int("generated", len(generated)),
		zap.Int("unassigned", len(result.Unassigned)))

	out := &GenerateScheduleResult{
		From:       from,
		To:         to,
		Generated:  generated,
		Unassigned: result.Unassigned,
	}

	if dryRun {
		return out, nil
	}

	batch := make([]db.Assignment, 0, len(generated))
	for _, a := range generated {
		batch = append(batch, assignmentRecord(a))
	}
	if err := database.ReplaceGeneratedAssignments(ctx, from.Format(dateLayout), to.Format(dateLayout), batch); err != nil {
		return nil, fmt.Errorf("failed to persist generated assignments: %w", err)
	}
	out.Persisted = true

	logger.Debug("Generated assignments persisted", zap.Int("count", len(batch)))

	return out, nil
}
