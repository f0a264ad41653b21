package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolahq/brigade/pkg/core/engine"
)

func lunchRow(station, in, out string) engine.CoverageRequirementRow {
	days := make(map[time.Weekday]engine.DayWindows)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		days[wd] = engine.DayWindows{LunchIn: in, LunchOut: out}
	}
	return engine.CoverageRequirementRow{Station: station, Days: days, Active: true}
}

func orphanContext(assignments []engine.Assignment, rows []engine.CoverageRequirementRow) *engine.Context {
	return &engine.Context{
		Staff:        []engine.StaffMember{{ID: 1, Name: "Ada"}},
		Assignments:  assignments,
		CoverageRows: rows,
		Limits:       engine.DefaultLimits(),
		WindowStart:  day(2024, 3, 4),
		WindowEnd:    day(2024, 3, 10),
	}
}

func TestOrphanedCoverage_LateStart(t *testing.T) {
	rows := []engine.CoverageRequirementRow{lunchRow("floor", "12:00", "14:00")}
	assignments := []engine.Assignment{
		{ID: "a1", StaffID: 1, Date: day(2024, 3, 4), Start: "12:40", End: "14:00", Station: "floor"},
	}

	results, err := NewOrphanedCoverageRule().Evaluate(orphanContext(assignments, rows))
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "orphaned_coverage", r.RuleID)
	assert.Equal(t, engine.SeverityInfo, r.Severity)
	assert.Equal(t, "40", r.Metadata["orphan_minutes"])
	assert.Equal(t, "12:00", r.Metadata["required_start"])
	assert.Equal(t, "12:40", r.Metadata["earliest_start"])
}

func TestOrphanedCoverage_SmallLeadInTolerated(t *testing.T) {
	rows := []engine.CoverageRequirementRow{lunchRow("floor", "12:00", "14:00")}
	assignments := []engine.Assignment{
		{ID: "a1", StaffID: 1, Date: day(2024, 3, 4), Start: "12:05", End: "14:00", Station: "floor"},
	}

	results, err := NewOrphanedCoverageRule().Evaluate(orphanContext(assignments, rows))
	require.NoError(t, err)
	assert.Empty(t, results, "5 minutes is inside the grace period")
}

func TestOrphanedCoverage_MidsizeLeadInBelowMinimum(t *testing.T) {
	rows := []engine.CoverageRequirementRow{lunchRow("floor", "12:00", "14:00")}
	assignments := []engine.Assignment{
		{ID: "a1", StaffID: 1, Date: day(2024, 3, 4), Start: "12:20", End: "14:00", Station: "floor"},
	}

	results, err := NewOrphanedCoverageRule().Evaluate(orphanContext(assignments, rows))
	require.NoError(t, err)
	assert.Empty(t, results, "20 minutes beats the grace period but not the 30m orphan minimum")
}

func TestOrphanedCoverage_UncoveredTaskIsNotItsConcern(t *testing.T) {
	rows := []engine.CoverageRequirementRow{lunchRow("floor", "12:00", "14:00")}
	assignments := []engine.Assignment{
		{ID: "a1", StaffID: 1, Date: day(2024, 3, 4), Start: "18:00", End: "23:00", Station: "bar"},
	}

	results, err := NewOrphanedCoverageRule().Evaluate(orphanContext(assignments, rows))
	require.NoError(t, err)
	assert.Empty(t, results, "total non-coverage belongs to the sufficiency rule")
}

func TestOrphanedCoverage_EarlyStartIsFine(t *testing.T) {
	rows := []engine.CoverageRequirementRow{lunchRow("floor", "12:00", "14:00")}
	assignments := []engine.Assignment{
		{ID: "a1", StaffID: 1, Date: day(2024, 3, 4), Start: "11:00", End: "14:00", Station: "floor"},
		{ID: "a2", StaffID: 1, Date: day(2024, 3, 4), Start: "13:00", End: "14:00", Station: "floor"},
	}

	results, err := NewOrphanedCoverageRule().Evaluate(orphanContext(assignments, rows))
	require.NoError(t, err)
	assert.Empty(t, results, "the earliest covering shift starts before the requirement")
}
