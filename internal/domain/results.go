package domain

// ValidationResult carries the outcome of validating a candidate assignment.
// Errors block creation; warnings are advisory and never affect IsValid.
type ValidationResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// AvailabilityResult reports whether a staff member can take a window.
// Unlike validation, every reason here is disqualifying: availability checks
// feed replacement searches where soft overrides make no sense.
type AvailabilityResult struct {
	StaffID                string
	IsAvailable            bool
	ConflictingAssignments []Assignment
	Reasons                []string
}

// StaffingPlan is the computed staffing recommendation for an operation.
type StaffingPlan struct {
	OperationID      string
	MinimumStaff     int
	RecommendedStaff int
	SkillsNeeded     []string
	AvailableStaff   []StaffMember
}
