package postgres

import (
	"context"
	"fmt"

	"github.com/tavolahq/brigade/pkg/db"
)

// GetUnavailabilityInRange retrieves unavailability records intersecting
// [from, to]. Single-day records have a NULL to_date.
func (d *DB) GetUnavailabilityInRange(ctx context.Context, from, to string) ([]db.Unavailability, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, staff_id, from_date::text, to_date::text, start_time, end_time, reason
		FROM unavailability
		WHERE from_date <= $2 AND COALESCE(to_date, from_date) >= $1
		ORDER BY from_date, staff_id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query unavailability: %w", err)
	}
	defer rows.Close()

	var records []db.Unavailability
	for rows.Next() {
		var u db.Unavailability
		var toDate, startTime, endTime *string
		if err := rows.Scan(&u.ID, &u.StaffID, &u.FromDate, &toDate, &startTime, &endTime, &u.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan unavailability: %w", err)
		}
		if toDate != nil {
			u.ToDate = *toDate
		}
		if startTime != nil {
			u.StartTime = *startTime
		}
		if endTime != nil {
			u.EndTime = *endTime
		}
		records = append(records, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unavailability: %w", err)
	}

	return records, nil
}
