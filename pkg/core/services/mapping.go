// Package services orchestrates the schedule workflows: loading records from
// the store, mapping them into engine types, running validation or
// generation, and persisting the outcome.
package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/teambition/rrule-go"

	"github.com/tavolahq/brigade/internal/config"
	"github.com/tavolahq/brigade/pkg/core/engine"
	"github.com/tavolahq/brigade/pkg/db"
)

const dateLayout = "2006-01-02"

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// parseDate parses a store date string into a midnight UTC time
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// mapStaff converts staff directory records into engine staff members. A
// missing cost multiplier defaults to 1.
func mapStaff(records []db.Staff) ([]engine.StaffMember, error) {
	staff := make([]engine.StaffMember, 0, len(records))
	for _, rec := range records {
		cost, err := decimal.NewFromString(rec.HourlyCost)
		if err != nil {
			return nil, fmt.Errorf("staff %d has invalid hourly cost %q: %w", rec.ID, rec.HourlyCost, err)
		}
		multiplier := decimal.NewFromInt(1)
		if rec.CostMultiplier != "" {
			multiplier, err = decimal.NewFromString(rec.CostMultiplier)
			if err != nil {
				return nil, fmt.Errorf("staff %d has invalid cost multiplier %q: %w", rec.ID, rec.CostMultiplier, err)
			}
		}
		staff = append(staff, engine.StaffMember{
			ID:             rec.ID,
			Name:           rec.Name,
			Role:           rec.Role,
			MinWeeklyHours: rec.MinWeeklyHours,
			MaxWeeklyHours: rec.MaxWeeklyHours,
			HourlyCost:     cost,
			CostMultiplier: multiplier,
			SkillTier:      rec.SkillTier,
			Stations:       rec.Stations,
		})
	}
	return staff, nil
}

// mapAssignments converts persisted shift records into engine assignments.
// Rows with an unparseable date are rejected; empty clock times pass through
// and are skipped by the individual rules.
func mapAssignments(records []db.Assignment) ([]engine.Assignment, error) {
	assignments := make([]engine.Assignment, 0, len(records))
	for _, rec := range records {
		date, err := parseDate(rec.Date)
		if err != nil {
			return nil, fmt.Errorf("assignment %s has invalid date %q: %w", rec.ID, rec.Date, err)
		}
		assignments = append(assignments, engine.Assignment{
			ID:       rec.ID,
			StaffID:  rec.StaffID,
			Date:     date,
			Start:    rec.StartTime,
			End:      rec.EndTime,
			Station:  rec.Station,
			Template: rec.Template,
			Manual:   rec.Manual,
		})
	}
	return assignments, nil
}

// mapUnavailability converts absence records into engine unavailability. An
// empty end date makes the record single-day.
func mapUnavailability(records []db.Unavailability) ([]engine.Unavailability, error) {
	out := make([]engine.Unavailability, 0, len(records))
	for _, rec := range records {
		from, err := parseDate(rec.FromDate)
		if err != nil {
			return nil, fmt.Errorf("unavailability %s has invalid from date %q: %w", rec.ID, rec.FromDate, err)
		}
		to := from
		if rec.ToDate != "" {
			to, err = parseDate(rec.ToDate)
			if err != nil {
				return nil, fmt.Errorf("unavailability %s has invalid to date %q: %w", rec.ID, rec.ToDate, err)
			}
		}
		out = append(out, engine.Unavailability{
			StaffID: rec.StaffID,
			From:    from,
			To:      to,
			Start:   rec.StartTime,
			End:     rec.EndTime,
			Reason:  rec.Reason,
		})
	}
	return out, nil
}

// mapCoverage converts coverage requirement rows into engine rows. Weekday
// keys the engine does not recognise are rejected rather than dropped. An
// explicit extras active flag of "false" deactivates a row even when its
// active column is set.
func mapCoverage(records []db.CoverageRequirement) ([]engine.CoverageRequirementRow, error) {
	rows := make([]engine.CoverageRequirementRow, 0, len(records))
	for _, rec := range records {
		days := make(map[time.Weekday]engine.DayWindows, len(rec.Days))
		for name, times := range rec.Days {
			weekday, ok := weekdayNames[name]
			if !ok {
				return nil, fmt.Errorf("coverage row %s has unknown weekday %q", rec.ID, name)
			}
			days[weekday] = engine.DayWindows{
				LunchIn:   times.LunchIn,
				LunchOut:  times.LunchOut,
				DinnerIn:  times.DinnerIn,
				DinnerOut: times.DinnerOut,
			}
		}

		var weekStart time.Time
		if rec.WeekStart != "" {
			var err error
			weekStart, err = parseDate(rec.WeekStart)
			if err != nil {
				return nil, fmt.Errorf("coverage row %s has invalid week start %q: %w", rec.ID, rec.WeekStart, err)
			}
		}

		active := rec.Active
		if rec.Extras["active"] == "false" {
			active = false
		}

		rows = append(rows, engine.CoverageRequirementRow{
			Station:   rec.Station,
			WeekStart: weekStart,
			Days:      days,
			Active:    active,
			Extras:    rec.Extras,
		})
	}
	return rows, nil
}

// expandClosedDates evaluates the configured closure rules over [from, to]
// and returns the set of closed dates as midnight UTC keys
func expandClosedDates(rules []config.ClosureRule, from, to time.Time) (map[time.Time]bool, error) {
	if len(rules) == 0 {
		return nil, nil
	}
	closed := make(map[time.Time]bool)
	for i, rule := range rules {
		r, err := rrule.StrToRRule(rule.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in closureRules[%d]: %w", i, err)
		}
		r.DTStart(from)
		for _, occ := range r.Between(from, to.AddDate(0, 0, 1), true) {
			day := time.Date(occ.Year(), occ.Month(), occ.Day(), 0, 0, 0, 0, time.UTC)
			if day.Before(from) || day.After(to) {
				continue
			}
			closed[day] = true
		}
	}
	return closed, nil
}

// assignmentRecord converts a generated engine assignment back into its
// store record form
func assignmentRecord(a engine.Assignment) db.Assignment {
	return db.Assignment{
		ID:        a.ID,
		StaffID:   a.StaffID,
		Date:      a.Date.Format(dateLayout),
		StartTime: a.Start,
		EndTime:   a.End,
		Station:   a.Station,
		Template:  a.Template,
		Manual:    a.Manual,
	}
}
