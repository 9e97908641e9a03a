package domain

import "time"

// StaffRole enumerates ground-operations roles.
type StaffRole string

const (
	StaffRoleWorker     StaffRole = "WORKER"
	StaffRoleSupervisor StaffRole = "SUPERVISOR"
	StaffRoleManager    StaffRole = "MANAGER"
	StaffRoleAdmin      StaffRole = "ADMIN"
)

// Default hour caps applied when a staff record carries none.
const (
	DefaultMaxWeeklyHours = 40.0
	DefaultMaxDailyHours  = 8.0
)

// StaffMember models a ground-operations employee.
type StaffMember struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string
	Role            StaffRole
	StationID       *string
	Active          bool
	Available       bool
	Certifications  []string
	Skills          []string
	AvailableShifts []ShiftWindow
	MaxWeeklyHours  float64
	MaxDailyHours   float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasCertifications reports whether the staff member holds every listed
// certification. An empty requirement list is always satisfied.
func (s *StaffMember) HasCertifications(required []string) bool {
	return len(s.MissingCertifications(required)) == 0
}

// MissingCertifications returns the required certifications the staff member
// does not hold, in the order they were required.
func (s *StaffMember) MissingCertifications(required []string) []string {
	if len(required) == 0 {
		return nil
	}
	held := make(map[string]struct{}, len(s.Certifications))
	for _, c := range s.Certifications {
		held[c] = struct{}{}
	}
	var missing []string
	for _, c := range required {
		if _, ok := held[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// HasSkills reports whether the staff member holds every listed skill.
func (s *StaffMember) HasSkills(required []string) bool {
	if len(required) == 0 {
		return true
	}
	held := make(map[string]struct{}, len(s.Skills))
	for _, sk := range s.Skills {
		held[sk] = struct{}{}
	}
	for _, sk := range required {
		if _, ok := held[sk]; !ok {
			return false
		}
	}
	return true
}

// WorksShift reports whether the shift window is among the staff member's
// available shifts. A staff record with no declared shifts matches none.
func (s *StaffMember) WorksShift(w ShiftWindow) bool {
	for _, have := range s.AvailableShifts {
		if have == w {
			return true
		}
	}
	return false
}

// WeeklyCap returns the effective weekly hour cap.
func (s *StaffMember) WeeklyCap() float64 {
	if s.MaxWeeklyHours > 0 {
		return s.MaxWeeklyHours
	}
	return DefaultMaxWeeklyHours
}

// DailyCap returns the effective daily hour cap.
func (s *StaffMember) DailyCap() float64 {
	if s.MaxDailyHours > 0 {
		return s.MaxDailyHours
	}
	return DefaultMaxDailyHours
}
