package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/groundops-service/internal/domain"
)

// Wednesday 2026-03-04; the containing week starts Sunday 2026-03-01.
var testDay = time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func seedWorker(fx *schedulingFixture, id string, mutate ...func(*domain.StaffMember)) domain.StaffMember {
	member := domain.StaffMember{
		ID:              id,
		Name:            "Worker " + id,
		Email:           id + "@groundops.test",
		Role:            domain.StaffRoleWorker,
		Active:          true,
		Available:       true,
		Certifications:  []string{"ramp_safety", "customs_clearance"},
		Skills:          []string{"baggage_loading"},
		AvailableShifts: []domain.ShiftWindow{domain.ShiftMorning, domain.ShiftAfternoon},
		MaxWeeklyHours:  40,
		MaxDailyHours:   8,
	}
	for _, m := range mutate {
		m(&member)
	}
	fx.staff.members[member.ID] = member
	return member
}

func seedOperation(fx *schedulingFixture, id string, mutate ...func(*domain.Operation)) domain.Operation {
	op := domain.Operation{
		ID:            id,
		FlightNumber:  "GO100",
		FlightType:    domain.FlightTypeDomestic,
		Direction:     domain.DirectionDeparture,
		ScheduledTime: at(9, 0),
		StationID:     "st-1",
		Station: &domain.Station{
			ID:                     "st-1",
			Name:                   "Terminal A Ramp",
			Code:                   "TA-R",
			MinimumStaff:           2,
			RequiredCertifications: []string{"ramp_safety"},
			Active:                 true,
		},
	}
	for _, m := range mutate {
		m(&op)
	}
	fx.operations.operations[op.ID] = op
	return op
}

func TestValidateApprovesCleanCandidate(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "w1")
	seedOperation(fx, "op1")

	result := fx.schedule.Validate(context.Background(), "w1", "op1", at(9, 0), at(13, 0))

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateUnknownStaffAndOperation(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "w1")
	seedOperation(fx, "op1")

	result := fx.schedule.Validate(context.Background(), "ghost", "op1", at(9, 0), at(13, 0))
	require.False(t, result.IsValid)
	assert.Equal(t, []string{"staff member not found"}, result.Errors)

	result = fx.schedule.Validate(context.Background(), "w1", "ghost", at(9, 0), at(13, 0))
	require.False(t, result.IsValid)
	assert.Equal(t, []string{"operation not found"}, result.Errors)
}

func TestValidateInactiveStaffShortCircuits(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "w1", func(m *domain.StaffMember) {
		m.Active = false
		m.Certifications = nil
	})
	seedOperation(fx, "op1")

	result := fx.schedule.Validate(context.Background(), "w1", "op1", at(9, 0), at(19, 0))

	require.False(t, result.IsValid)
	assert.Equal(t, []string{"staff member is not active"}, result.Errors)
}

func TestValidateRejectsInvertedWindow(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "w1")
	seedOperation(fx, "op1")

	result := fx.schedule.Validate(context.Background(), "w1", "op1", at(13, 0), at(13, 0))

	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "start time must be before end time")
}

func TestValidateDailyCapExceeded(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "w1")
	seedOperation(fx, "op1")

	// Nine hours against an eight hour daily cap.
	result := fx.schedule.Validate(context.Background(), "w1", "op1", at(6, 0), at(15, 0))

	require.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "daily limit")
}

func TestValidateOverlapBlocks(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "w1")
	seedOperation(fx, "op1")
	fx.assignments.assignments["a1"] = domain.Assignment{
		ID:          "a1",
		StaffID:     "w1",
		OperationID: "op0",
		StartTime:   at(9, 0),
		EndTime:     at(12, 0),
		Status:      domain.AssignmentConfirmed,
	}

	result := fx.schedule.Validate(context.Background(), "w1", "op1", at(11, 0), at(14, 0))
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "staff member is already assigned in that window")

	// Touching boundaries do not overlap.
	result = fx.schedule.Validate(context.Background(), "w1", "op1", at(12, 0), at(14, 0))
	assert.True(t, result.IsValid)
}

func TestValidateCancelledAssignmentDoesNotBlock(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "w1")
	seedOperation(fx, "op1")
	fx.assignments.assignments["a1"] = domain.Assignment{
		ID:        "a1",
		StaffID:   "w1",
		StartTime: at(9, 0),
		EndTime:   at(12, 0),
		Status:    domain.AssignmentCancelled,
	}

	result := fx.schedule.Validate(context.Background(), "w1", "op1", at(10, 0), at(13, 0))
	assert.True(t, result.IsValid)
}

func TestValidateWeeklyOverflowWarnsOnly(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "w1")
	seedOperation(fx, "op1")
	// 38 completed hours earlier in the same week.
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	fx.assignments.assignments["done"] = domain.Assignment{
		ID:        "done",
		StaffID:   "w1",
		StartTime: monday,
		EndTime:   monday.Add(38 * time.Hour),
		Status:    domain.AssignmentCompleted,
	}

	result := fx.schedule.Validate(context.Background(), "w1", "op1", at(9, 0), at(13, 0))

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "weekly hours")
}

func TestValidateIgnoresCompletedHoursFromOtherWeeks(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "w1")
	seedOperation(fx, "op1")
	lastWeek := testDay.AddDate(0, 0, -7)
	fx.assignments.assignments["done"] = domain.Assignment{
		ID:        "done",
		StaffID:   "w1",
		StartTime: lastWeek,
		EndTime:   lastWeek.Add(39 * time.Hour),
		Status:    domain.AssignmentCompleted,
	}

	result := fx.schedule.Validate(context.Background(), "w1", "op1", at(9, 0), at(13, 0))

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
}

func TestValidateShiftMismatchWarns(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "w1", func(m *domain.StaffMember) {
		m.AvailableShifts = []domain.ShiftWindow{domain.ShiftNight}
	})
	seedOperation(fx, "op1")

	result := fx.schedule.Validate(context.Background(), "w1", "op1", at(9, 0), at(13, 0))

	assert.True(t, result.IsValid)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "MORNING")
}

func TestValidateMissingCertificationsNamed(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "w1", func(m *domain.StaffMember) {
		m.Certifications = []string{"ramp_safety"}
	})
	seedOperation(fx, "op1", func(op *domain.Operation) {
		op.Station.RequiredCertifications = []string{"ramp_safety", "customs_clearance", "dangerous_goods"}
	})

	result := fx.schedule.Validate(context.Background(), "w1", "op1", at(9, 0), at(13, 0))

	require.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "customs_clearance, dangerous_goods")
}

func TestValidateInternalFailureFailsClosed(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "w1")
	seedOperation(fx, "op1")
	fx.assignments.findErr = errors.New("connection reset")

	result := fx.schedule.Validate(context.Background(), "w1", "op1", at(9, 0), at(13, 0))

	require.False(t, result.IsValid)
	assert.Equal(t, []string{internalValidationError}, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestCheckAvailability(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "free")
	seedWorker(fx, "busy")
	seedWorker(fx, "off-duty", func(m *domain.StaffMember) { m.Available = false })
	seedWorker(fx, "tired")
	fx.assignments.assignments["a1"] = domain.Assignment{
		ID:        "a1",
		StaffID:   "busy",
		StartTime: at(9, 0),
		EndTime:   at(12, 0),
		Status:    domain.AssignmentScheduled,
	}
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	fx.assignments.assignments["a2"] = domain.Assignment{
		ID:        "a2",
		StaffID:   "tired",
		StartTime: monday,
		EndTime:   monday.Add(38 * time.Hour),
		Status:    domain.AssignmentCompleted,
	}

	results := fx.schedule.CheckAvailability(context.Background(),
		[]string{"free", "busy", "off-duty", "tired", "ghost"}, at(10, 0), at(14, 0))

	require.Len(t, results, 5)
	byID := make(map[string]domain.AvailabilityResult, len(results))
	for _, r := range results {
		byID[r.StaffID] = r
	}

	assert.True(t, byID["free"].IsAvailable)

	require.False(t, byID["busy"].IsAvailable)
	assert.Len(t, byID["busy"].ConflictingAssignments, 1)

	require.False(t, byID["off-duty"].IsAvailable)
	assert.Contains(t, byID["off-duty"].Reasons, "staff member is inactive or marked unavailable")

	// Weekly overflow is disqualifying here, unlike Validate.
	require.False(t, byID["tired"].IsAvailable)
	assert.Contains(t, byID["tired"].Reasons, "weekly hour limit would be exceeded")

	require.False(t, byID["ghost"].IsAvailable)
	assert.Contains(t, byID["ghost"].Reasons, "staff member not found")
}
