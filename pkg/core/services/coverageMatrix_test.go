package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tavolahq/brigade/internal/config"
	"github.com/tavolahq/brigade/pkg/core/engine"
	"github.com/tavolahq/brigade/pkg/db"
)

// slotIndex maps a clock string onto its grid slot
func slotIndex(t *testing.T, clock string) int {
	t.Helper()
	minute, err := engine.ParseClock(clock)
	require.NoError(t, err)
	return (minute - engine.DayStartMinute) / engine.SlotMinutes
}

func TestCoverageMatrix_RequiredAndCovered(t *testing.T) {
	store := &mockScheduleStore{
		assignments: []db.Assignment{
			{ID: "a-1", StaffID: 1, Date: "2024-03-04", StartTime: "12:00", EndTime: "15:00", Station: "floor"},
		},
		coverage: []db.CoverageRequirement{
			{
				ID: "c-1", Station: "floor", Active: true,
				Days: map[string]db.DayTimes{"monday": {LunchIn: "12:00", LunchOut: "18:00"}},
			},
		},
	}
	from := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	result, err := CoverageMatrix(context.Background(), store, testConfig(), zap.NewNop(), from, from)
	require.NoError(t, err)

	assert.Equal(t, []string{"floor"}, result.Stations)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.False(t, row.Closed)
	assert.Equal(t, 360, row.RequiredMinutes, "12:00 to 18:00 is six hours")
	assert.Equal(t, 180, row.CoveredMinutes, "only 12:00 to 15:00 is staffed")

	noon := row.Slots[slotIndex(t, "12:00")]
	assert.True(t, noon.Required)
	assert.True(t, noon.Covered)

	late := row.Slots[slotIndex(t, "17:00")]
	assert.True(t, late.Required)
	assert.False(t, late.Covered)

	offHours := row.Slots[slotIndex(t, "09:00")]
	assert.False(t, offHours.Required)
	assert.False(t, offHours.Covered)
}

func TestCoverageMatrix_ClosedDateKeepsRow(t *testing.T) {
	store := &mockScheduleStore{
		coverage: []db.CoverageRequirement{
			{
				ID: "c-1", Station: "floor", Active: true,
				Days: map[string]db.DayTimes{"monday": {LunchIn: "12:00", LunchOut: "18:00"}},
			},
		},
	}
	cfg := testConfig()
	cfg.ClosureRules = []config.ClosureRule{{RRule: "FREQ=WEEKLY;BYDAY=MO"}}
	from := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC) // a Monday

	result, err := CoverageMatrix(context.Background(), store, cfg, zap.NewNop(), from, from)
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.True(t, result.Rows[0].Closed)
	assert.Equal(t, 0, result.Rows[0].RequiredMinutes)
}

func TestCoverageMatrix_StationFromAssignmentsOnly(t *testing.T) {
	store := &mockScheduleStore{
		assignments: []db.Assignment{
			{ID: "a-1", StaffID: 1, Date: "2024-03-04", StartTime: "12:00", EndTime: "15:00", Station: "bar"},
		},
	}
	from := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	result, err := CoverageMatrix(context.Background(), store, testConfig(), zap.NewNop(), from, from)
	require.NoError(t, err)

	assert.Equal(t, []string{"bar"}, result.Stations)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, 0, result.Rows[0].RequiredMinutes)
	assert.True(t, result.Rows[0].Slots[slotIndex(t, "13:00")].Covered)
}
