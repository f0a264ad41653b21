package postgres

import (
	"context"
	"fmt"

	"github.com/tavolahq/brigade/pkg/db"
)

// GetAssignmentsInRange retrieves assignments dated in [from, to]
func (d *DB) GetAssignmentsInRange(ctx context.Context, from, to string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, staff_id, shift_date::text, start_time, end_time, station, template, manual
		FROM assignment
		WHERE shift_date >= $1 AND shift_date <= $2
		ORDER BY shift_date, start_time
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		var startTime, endTime *string
		if err := rows.Scan(&a.ID, &a.StaffID, &a.Date, &startTime, &endTime,
			&a.Station, &a.Template, &a.Manual); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		if startTime != nil {
			a.StartTime = *startTime
		}
		if endTime != nil {
			a.EndTime = *endTime
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// ReplaceGeneratedAssignments deletes the non-manual assignments dated in
// [from, to] and inserts the given batch in one transaction. Manual
// assignments survive regeneration untouched.
func (d *DB) ReplaceGeneratedAssignments(ctx context.Context, from, to string, batch []db.Assignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM assignment
		WHERE shift_date >= $1 AND shift_date <= $2 AND manual = FALSE
	`, from, to)
	if err != nil {
		return fmt.Errorf("failed to delete generated assignments: %w", err)
	}

	for _, a := range batch {
		var startTime, endTime *string
		if a.StartTime != "" {
			startTime = &a.StartTime
		}
		if a.EndTime != "" {
			endTime = &a.EndTime
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO assignment (id, staff_id, shift_date, start_time, end_time, station, template, manual)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, a.ID, a.StaffID, a.Date, startTime, endTime, a.Station, a.Template, a.Manual)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
