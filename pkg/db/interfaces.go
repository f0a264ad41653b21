package db

import "context"

// Database is the full store contract the CLI wires up. Services declare
// narrower interfaces for just the calls they make; postgres.DB implements
// all of them.
type Database interface {
	// GetStaff returns all staff directory records
	GetStaff(ctx context.Context) ([]Staff, error)

	// GetAssignmentsInRange returns assignments whose date falls in
	// [from, to], both "2006-01-02" inclusive
	GetAssignmentsInRange(ctx context.Context, from, to string) ([]Assignment, error)

	// GetUnavailabilityInRange returns unavailability records intersecting
	// [from, to]
	GetUnavailabilityInRange(ctx context.Context, from, to string) ([]Unavailability, error)

	// GetCoverageRequirements returns all coverage requirement rows
	GetCoverageRequirements(ctx context.Context) ([]CoverageRequirement, error)

	// ReplaceGeneratedAssignments atomically deletes the non-manual
	// assignments dated in [from, to] and inserts the given batch. Manual
	// assignments are never touched.
	ReplaceGeneratedAssignments(ctx context.Context, from, to string, batch []Assignment) error
}
