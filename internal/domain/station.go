package domain

import "time"

// Station is a ground-handling station with its staffing requirements.
type Station struct {
	ID                     string
	Name                   string
	Code                   string
	MinimumStaff           int
	MaximumStaff           int
	RequiredCertifications []string
	Active                 bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
