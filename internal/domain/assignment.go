package domain

import "time"

// AssignmentStatus enumerates assignment lifecycle states.
type AssignmentStatus string

const (
	AssignmentScheduled  AssignmentStatus = "SCHEDULED"
	AssignmentConfirmed  AssignmentStatus = "CONFIRMED"
	AssignmentInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentCompleted  AssignmentStatus = "COMPLETED"
	AssignmentAbsent     AssignmentStatus = "ABSENT"
	AssignmentCancelled  AssignmentStatus = "CANCELLED"
)

// ActiveStatuses are the statuses that occupy a staff member's time window.
// Overlap exclusion applies only to assignments in one of these states.
var ActiveStatuses = []AssignmentStatus{
	AssignmentScheduled,
	AssignmentConfirmed,
	AssignmentInProgress,
}

// IsTerminal reports whether the status ends the assignment lifecycle.
func (s AssignmentStatus) IsTerminal() bool {
	switch s {
	case AssignmentCompleted, AssignmentAbsent, AssignmentCancelled:
		return true
	}
	return false
}

// ParseAssignmentStatus validates a status label.
func ParseAssignmentStatus(s string) (AssignmentStatus, bool) {
	switch AssignmentStatus(s) {
	case AssignmentScheduled, AssignmentConfirmed, AssignmentInProgress,
		AssignmentCompleted, AssignmentAbsent, AssignmentCancelled:
		return AssignmentStatus(s), true
	}
	return "", false
}

// Assignment places a staff member on an operation for a time window.
type Assignment struct {
	ID                    string
	StaffID               string
	OperationID           string
	StartTime             time.Time
	EndTime               time.Time
	Status                AssignmentStatus
	IsReplacement         bool
	ReplacementForStaffID *string
	Cost                  float64
	OvertimeHours         *float64
	Notes                 string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// DurationHours returns the assignment window length in hours.
func (a *Assignment) DurationHours() float64 {
	return DurationHours(a.StartTime, a.EndTime)
}
