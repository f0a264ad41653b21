package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tavolahq/brigade/internal/config"
	"github.com/tavolahq/brigade/pkg/core/engine"
	"github.com/tavolahq/brigade/pkg/core/engine/rules"
	"github.com/tavolahq/brigade/pkg/db"
)

// ScheduleStore defines the read operations the evaluation context is
// assembled from. The validate and generate stores both satisfy it.
type ScheduleStore interface {
	GetStaff(ctx context.Context) ([]db.Staff, error)
	GetAssignmentsInRange(ctx context.Context, from, to string) ([]db.Assignment, error)
	GetUnavailabilityInRange(ctx context.Context, from, to string) ([]db.Unavailability, error)
	GetCoverageRequirements(ctx context.Context) ([]db.CoverageRequirement, error)
}

// loadEngineContext assembles the evaluation context for [from, to]. The
// assignment fetch reaches back far enough before the window for the rest
// and consecutive-day rules to see the preceding shifts; those earlier
// assignments land in Lookback.
func loadEngineContext(ctx context.Context, database ScheduleStore, cfg *config.Config, from, to time.Time) (*engine.Context, error) {
	limits := cfg.Limits()
	lookbackFrom := from.AddDate(0, 0, -(limits.MaxConsecutiveDays + 1))

	staffRecords, err := database.GetStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	staff, err := mapStaff(staffRecords)
	if err != nil {
		return nil, err
	}

	assignmentRecords, err := database.GetAssignmentsInRange(ctx, lookbackFrom.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	all, err := mapAssignments(assignmentRecords)
	if err != nil {
		return nil, err
	}
	var assignments, lookback []engine.Assignment
	for _, a := range all {
		if a.Date.Before(from) {
			lookback = append(lookback, a)
		} else {
			assignments = append(assignments, a)
		}
	}

	unavailabilityRecords, err := database.GetUnavailabilityInRange(ctx, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unavailability: %w", err)
	}
	unavailability, err := mapUnavailability(unavailabilityRecords)
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

	return &engine.Context{
		Staff:          staff,
		Assignments:    assignments,
		Lookback:       lookback,
		Unavailability: unavailability,
		CoverageRows:   coverage,
		Limits:         limits,
		ClosedDates:    closed,
		WindowStart:    from,
		WindowEnd:      to,
	}, nil
}

// buildRules composes the standard rule set with the configured shift
// duration floor and keyword extensions
func buildRules(cfg *config.Config) []engine.Rule {
	floor := 6.0
	if cfg.MinShiftHours > 0 {
		floor = cfg.MinShiftHours
	}
	split := append(rules.DefaultSplitKeywords(), cfg.SplitShiftKeywords...)
	lunch := append(rules.DefaultLunchKeywords(), cfg.LunchKeywords...)

	return []engine.Rule{
		rules.NewMinimumRestRule(),
		rules.NewWeeklyHoursRule(),
		rules.NewConsecutiveDaysRule(),
		rules.NewShiftDurationRuleWith(floor, split, lunch),
		rules.NewOrphanedCoverageRule(),
		rules.NewCoverageSufficiencyRule(),
	}
}
