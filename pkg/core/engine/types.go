package engine

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Severity levels for validation results, ordered from least to most severe
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityError    Severity = "ERROR"
	SeverityCritical Severity = "CRITICAL"
)

// StaffMember is one member of the restaurant staff as supplied by the
// external staff directory. Immutable for the duration of an engine run.
type StaffMember struct {
	ID   int64
	Name string
	Role string

	// MinWeeklyHours and MaxWeeklyHours are the contracted weekly hour bounds
	MinWeeklyHours float64
	MaxWeeklyHours float64

	// HourlyCost is the base hourly wage; CostMultiplier scales it
	// (e.g. 1.25 for a senior rate)
	HourlyCost     decimal.Decimal
	CostMultiplier decimal.Decimal

	// SkillTier is the staff member's skill level (higher is more senior)
	SkillTier int

	// Stations is the set of station names this staff member may work
	Stations []string
}

// EligibleFor returns true if the staff member may work the given station
func (s *StaffMember) EligibleFor(station string) bool {
	return slices.Contains(s.Stations, station)
}

// Assignment is a single shift worked by one staff member. An overnight
// shift belongs to the date it starts on.
type Assignment struct {
	ID      string
	StaffID int64

	// Date is the calendar date the shift starts on (midnight UTC)
	Date time.Time

	// Start and End are clock times ("HH:MM"). Either may be empty when the
	// upstream record is partially populated; rules skip such assignments.
	Start string
	End   string

	Station string

	// Template is an optional shift template reference (e.g. "closing")
	Template string

	// Manual marks a human-entered assignment. Manual assignments are never
	// replaced by the generation workflow.
	Manual bool
}

// SortAssignments orders assignments by (date, start time) lexicographically,
// the canonical ordering for a staff member's shift history.
func SortAssignments(assignments []Assignment) {
	slices.SortStableFunc(assignments, func(a, b Assignment) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if a.Start < b.Start {
			return -1
		}
		if a.Start > b.Start {
			return 1
		}
		return 0
	})
}

// Unavailability is a staff member's declared inability to work. A zero To
// date means the single day From; empty Start/End means the whole day.
type Unavailability struct {
	StaffID int64
	From    time.Time
	To      time.Time
	Start   string
	End     string
	Reason  string
}

// Blocks returns true if the unavailability rules out working the given
// clock interval on the given date.
func (u *Unavailability) Blocks(date time.Time, start, end string) bool {
	to := u.To
	if to.IsZero() {
		to = u.From
	}
	if date.Before(u.From) || date.After(to) {
		return false
	}
	if u.Start == "" || u.End == "" {
		// Full-day unavailability
		return true
	}
	uStart, err := ParseClock(u.Start)
	if err != nil {
		return true
	}
	uEnd, err := ParseClock(u.End)
	if err != nil {
		return true
	}
	aStart, err := ParseClock(start)
	if err != nil {
		return false
	}
	aEnd, err := ParseClock(end)
	if err != nil {
		return false
	}
	return IntervalsOverlap(aStart, aEnd, uStart, uEnd)
}

// DayWindows is the two labelled requirement windows for one weekday of a
// coverage row. The labels are conventional ("lunch"/"dinner") but the
// windows are just two independent open intervals; an empty In time means
// that half-day has no requirement.
type DayWindows struct {
	LunchIn   string
	LunchOut  string
	DinnerIn  string
	DinnerOut string
}

// CoverageRequirementRow is one station's requirement pattern for one week.
type CoverageRequirementRow struct {
	Station string

	// WeekStart anchors the row to a specific week. A zero WeekStart makes
	// the row a standing pattern that applies to every week.
	WeekStart time.Time

	Days   map[time.Weekday]DayWindows
	Active bool
	Extras map[string]string
}

// AppliesTo returns true if this row's week contains the given date
func (r *CoverageRequirementRow) AppliesTo(date time.Time) bool {
	if r.WeekStart.IsZero() {
		return true
	}
	return !date.Before(r.WeekStart) && date.Before(r.WeekStart.AddDate(0, 0, 7))
}

// RequiredCoverageTask is a derived (date, station, start, end) interval of
// required coverage. Tasks are never persisted; they are recomputed from
// coverage rows on every run.
type RequiredCoverageTask struct {
	Date    time.Time
	Station string
	Start   string
	End     string
}

// ValidationResult is one finding produced by a constraint rule. StaffID is
// zero when the finding is not specific to one staff member. Metadata holds
// documented string keys for programmatic consumers.
type ValidationResult struct {
	RuleID   string
	StaffID  int64
	Severity Severity
	Message  string
	Date     time.Time
	Metadata map[string]string
}

// Limits is the configurable constraint block shared by all rules
type Limits struct {
	// MaxWeeklyHours is the default rolling 7-day hour cap; a staff member's
	// contracted maximum overrides it when higher
	MaxWeeklyHours float64

	// MinRestHours is the minimum gap between two consecutive shifts
	MinRestHours float64

	// MaxConsecutiveDays is the maximum streak of worked calendar days
	MaxConsecutiveDays int

	// ContractToleranceHours is added on top of the weekly cap before a
	// violation is reported
	ContractToleranceHours float64
}

// DefaultLimits returns the standard limit set: 40h weekly cap, 11h rest,
// 6 consecutive days, 1h contract tolerance.
func DefaultLimits() Limits {
	return Limits{
		MaxWeeklyHours:         40,
		MinRestHours:           11,
		MaxConsecutiveDays:     6,
		ContractToleranceHours: 1,
	}
}

// Context is the per-invocation input bundle for validation and generation.
// It is constructed fresh per call and never mutated by the engine; rules
// are pure functions of it.
type Context struct {
	Staff []StaffMember

	// Assignments inside the evaluation window
	Assignments []Assignment

	// Lookback holds assignments before the evaluation window, included so
	// rest and consecutive-day checks spanning the window boundary see them
	Lookback []Assignment

	Unavailability []Unavailability
	CoverageRows   []CoverageRequirementRow
	Limits         Limits

	// ClosedDates marks dates (holidays, closures) on which no coverage is
	// required regardless of what the coverage rows say
	ClosedDates map[time.Time]bool

	// WindowStart and WindowEnd bound the evaluation window (inclusive dates)
	WindowStart time.Time
	WindowEnd   time.Time
}

// StaffByID returns the staff member with the given ID, or nil
func (c *Context) StaffByID(id int64) *StaffMember {
	for i := range c.Staff {
		if c.Staff[i].ID == id {
			return &c.Staff[i]
		}
	}
	return nil
}

// Closed reports whether the restaurant is closed on the given date
func (c *Context) Closed(date time.Time) bool {
	return c.ClosedDates[date]
}

// InWindow reports whether a date falls inside the evaluation window
func (c *Context) InWindow(date time.Time) bool {
	return !date.Before(c.WindowStart) && !date.After(c.WindowEnd)
}

// History returns the merged lookback + current-window assignments for one
// staff member, sorted by (date, start time).
func (c *Context) History(staffID int64) []Assignment {
	var history []Assignment
	for _, a := range c.Lookback {
		if a.StaffID == staffID {
			history = append(history, a)
		}
	}
	for _, a := range c.Assignments {
		if a.StaffID == staffID {
			history = append(history, a)
		}
	}
	SortAssignments(history)
	return history
}

// WindowAssignments returns the current-window assignments for one staff
// member, sorted by (date, start time).
func (c *Context) WindowAssignments(staffID int64) []Assignment {
	var window []Assignment
	for _, a := range c.Assignments {
		if a.StaffID == staffID {
			window = append(window, a)
		}
	}
	SortAssignments(window)
	return window
}
