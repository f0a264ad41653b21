package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/tavolahq/brigade/internal/config"
	"github.com/tavolahq/brigade/pkg/core/engine"
)

// SlotStatus is one grid slot's requirement and staffing state
type SlotStatus struct {
	Required bool
	Covered  bool
}

// StationDayCoverage is one station's slot-by-slot coverage picture for one
// date. RequiredMinutes and CoveredMinutes only count slots the station
// actually requires; staffing outside the required windows does not inflate
// CoveredMinutes.
type StationDayCoverage struct {
	Station string
	Date    time.Time
	Closed  bool
	Slots   [engine.SlotsPerDay]SlotStatus

	RequiredMinutes int
	CoveredMinutes  int
}

// CoverageMatrixResult is the slot grid for a window, one row per station
// per date, sorted by (date, station)
type CoverageMatrixResult struct {
	From     time.Time
	To       time.Time
	Stations []string
	Rows     []StationDayCoverage
}

// CoverageMatrix builds the per-slot requirement and staffing grid for
// [from, to]. Closed dates keep their rows, flagged closed with no required
// slots, so the rendered grid stays rectangular.
func CoverageMatrix(
	ctx context.Context,
	database AuditCoverageStore,
	cfg *config.Config,
	logger *zap.Logger,
	from, to time.Time,
) (*CoverageMatrixResult, error) {
	logger.Debug("Building coverage matrix",
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

	stations := make(map[string]bool)
	for _, row := range coverage {
		stations[row.Station] = true
	}
	for _, a := range assignments {
		if a.Station != "" {
			stations[a.Station] = true
		}
	}
	names := make([]string, 0, len(stations))
	for name := range stations {
		names = append(names, name)
	}
	sort.Strings(names)

	result := &CoverageMatrixResult{From: from, To: to, Stations: names}

	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		for _, station := range names {
			row := StationDayCoverage{
				Station: station,
				Date:    date,
				Closed:  closed[date],
			}
			for i := 0; i < engine.SlotsPerDay; i++ {
				minute := engine.SlotMinute(i)
				if !row.Closed {
					row.Slots[i].Required = engine.SlotRequired(coverage, station, date, minute)
				}
				row.Slots[i].Covered = slotCovered(assignments, station, date, minute)
				if row.Slots[i].Required {
					row.RequiredMinutes += engine.SlotMinutes
					if row.Slots[i].Covered {
						row.CoveredMinutes += engine.SlotMinutes
					}
				}
			}
			result.Rows = append(result.Rows, row)
		}
	}

	logger.Debug("Coverage matrix built",
		zap.Int("stations", len(names)),
		zap.Int("rows", len(result.Rows)))

	return result, nil
}

// slotCovered reports whether any assignment staffs the station at the given
// grid minute on the given date
func slotCovered(assignments []engine.Assignment, station string, date time.Time, minute int) bool {
	for _, a := range assignments {
		if a.Station != station || !a.Date.Equal(date) {
			continue
		}
		start, err := engine.ParseClock(a.Start)
		if err != nil {
			continue
		}
		end, err := engine.ParseClock(a.End)
		if err != nil {
			continue
		}
		if engine.InInterval(minute, start, end) {
			return true
		}
	}
	return false
}
