// Package db defines the storage records and interfaces the engine's
// surrounding service layer works with. Records carry dates and clock times
// as strings, matching what upstream systems deliver; parsing into engine
// types happens in the services layer.
package db

// Staff is one staff directory record
type Staff struct {
	ID             int64
	Name           string
	Role           string
	MinWeeklyHours float64
	MaxWeeklyHours float64

	// HourlyCost and CostMultiplier are decimal strings (e.g. "14.50")
	HourlyCost     string
	CostMultiplier string

	SkillTier int

	// Stations the staff member may work
	Stations []string
}

// Assignment is one persisted shift record. Date is "2006-01-02"; StartTime
// and EndTime are "HH:MM" and may be empty on partially populated rows.
type Assignment struct {
	ID        string
	StaffID   int64
	Date      string
	StartTime string
	EndTime   string
	Station   string
	Template  string
	Manual    bool
}

// Unavailability is one declared absence. ToDate empty means the single day
// FromDate; empty StartTime/EndTime means the whole day.
type Unavailability struct {
	ID        string
	StaffID   int64
	FromDate  string
	ToDate    string
	StartTime string
	EndTime   string
	Reason    string
}

// DayTimes is the two labelled requirement windows for one weekday
type DayTimes struct {
	LunchIn   string `json:"l_in"`
	LunchOut  string `json:"l_out"`
	DinnerIn  string `json:"d_in"`
	DinnerOut string `json:"d_out"`
}

// CoverageRequirement is one station's weekly requirement pattern. Days maps
// lowercase weekday names ("monday") to their windows. WeekStart empty makes
// the row a standing pattern for every week.
type CoverageRequirement struct {
	ID        string
	Station   string
	WeekStart string
	Days      map[string]DayTimes
	Active    bool
	Extras    map[string]string
}
