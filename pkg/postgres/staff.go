package postgres

import (
	"context"
	"fmt"

	"github.com/tavolahq/brigade/pkg/db"
)

// GetStaff retrieves all staff directory records
func (d *DB) GetStaff(ctx context.Context) ([]db.Staff, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, role, min_weekly_hours, max_weekly_hours,
		       hourly_cost::text, cost_multiplier::text, skill_tier, stations
		FROM staff
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	var staff []db.Staff
	for rows.Next() {
		var s db.Staff
		if err := rows.Scan(&s.ID, &s.Name, &s.Role, &s.MinWeeklyHours, &s.MaxWeeklyHours,
			&s.HourlyCost, &s.CostMultiplier, &s.SkillTier, &s.Stations); err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		staff = append(staff, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff: %w", err)
	}

	return staff, nil
}
