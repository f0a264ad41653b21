package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolahq/brigade/pkg/core/engine"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func restContext(window, lookback []engine.Assignment) *engine.Context {
	return &engine.Context{
		Staff:       []engine.StaffMember{{ID: 1, Name: "Ada"}},
		Assignments: window,
		Lookback:    lookback,
		Limits:      engine.DefaultLimits(),
		WindowStart: day(2024, 3, 4),
		WindowEnd:   day(2024, 3, 10),
	}
}

func TestMinimumRest_SufficientGap(t *testing.T) {
	window := []engine.Assignment{
		{ID: "a1", StaffID: 1, Date: day(2024, 3, 4), Start: "12:00", End: "21:00"},
		{ID: "a2", StaffID: 1, Date: day(2024, 3, 5), Start: "08:00", End: "16:00"},
	}

	results, err := NewMinimumRestRule().Evaluate(restContext(window, nil))
	require.NoError(t, err)
	assert.Empty(t, results, "11h between 21:00 and 08:00 is exactly the minimum")
}

func TestMinimumRest_OneMinuteShort(t *testing.T) {
	window := []engine.Assignment{
		{ID: "a1", StaffID: 1, Date: day(2024, 3, 4), Start: "12:00", End: "21:00"},
		{ID: "a2", StaffID: 1, Date: day(2024, 3, 5), Start: "07:59", End: "16:00"},
	}

	results, err := NewMinimumRestRule().Evaluate(restContext(window, nil))
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "minimum_rest", r.RuleID)
	assert.Equal(t, engine.SeverityError, r.Severity)
	assert.Equal(t, int64(1), r.StaffID)
	assert.True(t, r.Date.Equal(day(2024, 3, 5)), "anchored to the later shift's date")
	assert.Contains(t, r.Message, "a1")
	assert.Contains(t, r.Message, "a2")
	assert.Equal(t, "659", r.Metadata["gap_minutes"])
	assert.Equal(t, "660", r.Metadata["required_minutes"])
}

func TestMinimumRest_OvernightPreviousShift(t *testing.T) {
	window := []engine.Assignment{
		{ID: "a1", StaffID: 1, Date: day(2024, 3, 4), Start: "18:00", End: "01:00"},
		{ID: "a2", StaffID: 1, Date: day(2024, 3, 5), Start: "10:00", End: "18:00"},
	}

	results, err := NewMinimumRestRule().Evaluate(restContext(window, nil))
	require.NoError(t, err)
	require.Len(t, results, 1, "01:00 to 10:00 is only 9h rest")
	assert.Equal(t, "540", results[0].Metadata["gap_minutes"])
}

func TestMinimumRest_LookbackPairReported(t *testing.T) {
	lookback := []engine.Assignment{
		{ID: "old", StaffID: 1, Date: day(2024, 3, 3), Start: "16:00", End: "23:30"},
	}
	window := []engine.Assignment{
		{ID: "new", StaffID: 1, Date: day(2024, 3, 4), Start: "08:00", End: "16:00"},
	}

	results, err := NewMinimumRestRule().Evaluate(restContext(window, lookback))
	require.NoError(t, err)
	require.Len(t, results, 1, "the later shift is in-window, so the boundary pair is reported")
	assert.Contains(t, results[0].Message, "old")
}

func TestMinimumRest_HistoricalPairNotReported(t *testing.T) {
	lookback := []engine.Assignment{
		{ID: "old1", StaffID: 1, Date: day(2024, 3, 2), Start: "16:00", End: "23:30"},
		{ID: "old2", StaffID: 1, Date: day(2024, 3, 3), Start: "08:00", End: "16:00"},
	}

	results, err := NewMinimumRestRule().Evaluate(restContext(nil, lookback))
	require.NoError(t, err)
	assert.Empty(t, results, "violations wholly inside the lookback window stay unreported")
}

func TestMinimumRest_SkipsShiftsWithMissingTimes(t *testing.T) {
	window := []engine.Assignment{
		{ID: "a1", StaffID: 1, Date: day(2024, 3, 4), Start: "12:00"},
		{ID: "a2", StaffID: 1, Date: day(2024, 3, 5), Start: "08:00", End: "16:00"},
	}

	results, err := NewMinimumRestRule().Evaluate(restContext(window, nil))
	require.NoError(t, err)
	assert.Empty(t, results)
}
