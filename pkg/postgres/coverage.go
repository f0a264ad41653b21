package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tavolahq/brigade/pkg/db"
)

// GetCoverageRequirements retrieves all coverage requirement rows
func (d *DB) GetCoverageRequirements(ctx context.Context) ([]db.CoverageRequirement, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, station, week_start::text, days, active, extras
		FROM coverage_requirement
		ORDER BY station, week_start
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query coverage requirements: %w", err)
	}
	defer rows.Close()

	var requirements []db.CoverageRequirement
	for rows.Next() {
		var r db.CoverageRequirement
		var weekStart *string
		var daysJSON, extrasJSON []byte
		if err := rows.Scan(&r.ID, &r.Station, &weekStart, &daysJSON, &r.Active, &extrasJSON); err != nil {
			return nil, fmt.Errorf("failed to scan coverage requirement: %w", err)
		}
		if weekStart != nil {
			r.WeekStart = *weekStart
		}
		if err := json.Unmarshal(daysJSON, &r.Days); err != nil {
			return nil, fmt.Errorf("failed to decode day windows for %s: %w", r.ID, err)
		}
		if err := json.Unmarshal(extrasJSON, &r.Extras); err != nil {
			return nil, fmt.Errorf("failed to decode extras for %s: %w", r.ID, err)
		}
		requirements = append(requirements, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coverage requirements: %w", err)
	}

	return requirements, nil
}
