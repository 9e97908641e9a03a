package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/events"
	apperrors "github.com/spec-kit/groundops-service/pkg/util"
)

func supervisor() *domain.StaffMember {
	return &domain.StaffMember{ID: "sup-1", Role: domain.StaffRoleSupervisor, Active: true}
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestRecommendationScore(t *testing.T) {
	cases := []struct {
		name  string
		staff domain.StaffMember
		want  int
	}{
		{"bare worker", domain.StaffMember{Role: domain.StaffRoleWorker}, 1},
		{"certified worker", domain.StaffMember{
			Role:           domain.StaffRoleWorker,
			Certifications: []string{"a", "b"},
			Skills:         []string{"x"},
		}, 6},
		{"manager", domain.StaffMember{
			Role:   domain.StaffRoleManager,
			Skills: []string{"x", "y"},
		}, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RecommendationScore(&tc.staff))
		})
	}
}

func TestFindAvailableStaffFiltersAndRanks(t *testing.T) {
	fx := newSchedulingFixture()
	seedOperation(fx, "op1", func(op *domain.Operation) {
		op.EstimatedDurationHours = hoursFloat(4)
	})

	seedWorker(fx, "w-strong", func(m *domain.StaffMember) {
		m.Certifications = []string{"ramp_safety", "dangerous_goods", "deicing"}
		m.Skills = []string{"baggage_loading", "aircraft_marshalling"}
	})
	seedWorker(fx, "w-a")
	seedWorker(fx, "w-b")
	seedWorker(fx, "w-uncertified", func(m *domain.StaffMember) {
		m.Certifications = []string{"deicing"}
	})
	seedWorker(fx, "w-nightshift", func(m *domain.StaffMember) {
		m.AvailableShifts = []domain.ShiftWindow{domain.ShiftNight}
	})
	seedWorker(fx, "w-excluded")
	seedWorker(fx, "w-booked")
	fx.assignments.assignments["a1"] = domain.Assignment{
		ID:        "a1",
		StaffID:   "w-booked",
		StartTime: at(10, 0),
		EndTime:   at(11, 0),
		Status:    domain.AssignmentScheduled,
	}

	candidates, err := fx.staffing.FindAvailableStaff(context.Background(), "op1", nil, []string{"w-excluded"})
	require.NoError(t, err)

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	// Highest score first, then lexical staff ID on ties.
	assert.Equal(t, []string{"w-strong", "w-a", "w-b"}, ids)
}

func TestFindAvailableStaffRequiresSkillsOnlyWhenAsked(t *testing.T) {
	fx := newSchedulingFixture()
	seedOperation(fx, "op1")
	seedWorker(fx, "w-skilled", func(m *domain.StaffMember) {
		m.Skills = []string{"baggage_loading", "crowd_management"}
	})
	seedWorker(fx, "w-plain", func(m *domain.StaffMember) {
		m.Skills = nil
	})

	candidates, err := fx.staffing.FindAvailableStaff(context.Background(), "op1", []string{"crowd_management"}, nil)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "w-skilled", candidates[0].ID)

	candidates, err = fx.staffing.FindAvailableStaff(context.Background(), "op1", nil, nil)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestFindAvailableStaffUnknownOperation(t *testing.T) {
	fx := newSchedulingFixture()

	_, err := fx.staffing.FindAvailableStaff(context.Background(), "ghost", nil, nil)

	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestGetOptimalStaffingPlan(t *testing.T) {
	fx := newSchedulingFixture()
	seedOperation(fx, "op1", func(op *domain.Operation) {
		op.FlightType = domain.FlightTypeInternational
		op.Direction = domain.DirectionDeparture
		op.PassengerCount = 220
		op.Station.MinimumStaff = 3
	})
	seedWorker(fx, "w1", func(m *domain.StaffMember) {
		m.Skills = []string{
			"customs_handling", "immigration_procedures",
			"baggage_loading", "aircraft_marshalling",
			"crowd_management",
		}
	})

	plan, err := fx.staffing.GetOptimalStaffing(context.Background(), "op1")
	require.NoError(t, err)

	// ceil(220/50) = 5 beats the station minimum of 3.
	assert.Equal(t, 5, plan.MinimumStaff)
	assert.Equal(t, 6, plan.RecommendedStaff)
	assert.Equal(t, []string{
		"customs_handling", "immigration_procedures",
		"baggage_loading", "aircraft_marshalling",
		"crowd_management",
	}, plan.SkillsNeeded)
	require.Len(t, plan.AvailableStaff, 1)
	assert.Equal(t, "w1", plan.AvailableStaff[0].ID)
}

func TestGetOptimalStaffingStationFloorApplies(t *testing.T) {
	fx := newSchedulingFixture()
	seedOperation(fx, "op1", func(op *domain.Operation) {
		op.FlightType = domain.FlightTypeDomestic
		op.Direction = domain.DirectionArrival
		op.PassengerCount = 40
		op.Station.MinimumStaff = 4
	})

	plan, err := fx.staffing.GetOptimalStaffing(context.Background(), "op1")
	require.NoError(t, err)

	assert.Equal(t, 4, plan.MinimumStaff)
	assert.Equal(t, 5, plan.RecommendedStaff)
	assert.Equal(t, []string{"baggage_unloading", "passenger_escort"}, plan.SkillsNeeded)
}

func TestCreateAssignment(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "w1")
	seedOperation(fx, "op1")

	assignment, err := fx.staffing.CreateAssignment(context.Background(), supervisor(),
		"w1", "op1", at(9, 0), at(13, 0), 120)
	require.NoError(t, err)

	assert.NotEmpty(t, assignment.ID)
	assert.Equal(t, domain.AssignmentScheduled, assignment.Status)
	assert.Equal(t, 120.0, assignment.Cost)

	published := fx.dispatcher.events()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventAssignmentCreated, published[0].Type)
	assert.Equal(t, assignment.ID, published[0].AssignmentID)
}

func TestCreateAssignmentRejectsInvalidCandidate(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "w1", func(m *domain.StaffMember) {
		m.Certifications = nil
	})
	seedOperation(fx, "op1")

	_, err := fx.staffing.CreateAssignment(context.Background(), supervisor(),
		"w1", "op1", at(9, 0), at(13, 0), 0)

	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
	assert.Empty(t, fx.assignments.assignments)
	assert.Empty(t, fx.dispatcher.events())
}

func TestCreateAssignmentForbiddenForWorkers(t *testing.T) {
	fx := newSchedulingFixture()
	actor := &domain.StaffMember{ID: "w9", Role: domain.StaffRoleWorker, Active: true}

	_, err := fx.staffing.CreateAssignment(context.Background(), actor,
		"w1", "op1", at(9, 0), at(13, 0), 0)

	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}

func TestCreateAssignmentConflictWhenWriteRaces(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "w1")
	seedOperation(fx, "op1")
	fx.assignments.forceOverlapOnWrite = true

	_, err := fx.staffing.CreateAssignment(context.Background(), supervisor(),
		"w1", "op1", at(9, 0), at(13, 0), 0)

	assert.Equal(t, "CONFLICT", domainCode(t, err))
	assert.Empty(t, fx.dispatcher.events())
}

func TestCreateReplacementSwapsAtomically(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "orig-w")
	seedWorker(fx, "rep-w")
	seedOperation(fx, "op1")
	fx.assignments.assignments["a1"] = domain.Assignment{
		ID:          "a1",
		StaffID:     "orig-w",
		OperationID: "op1",
		StartTime:   at(9, 0),
		EndTime:     at(13, 0),
		Status:      domain.AssignmentConfirmed,
		Cost:        80,
	}

	replacement, err := fx.staffing.CreateReplacement(context.Background(), supervisor(),
		"a1", "rep-w", "reported sick")
	require.NoError(t, err)

	assert.True(t, replacement.IsReplacement)
	require.NotNil(t, replacement.ReplacementForStaffID)
	assert.Equal(t, "orig-w", *replacement.ReplacementForStaffID)
	assert.Equal(t, at(9, 0), replacement.StartTime)
	assert.Equal(t, at(13, 0), replacement.EndTime)
	assert.Equal(t, 80.0, replacement.Cost)

	original := fx.assignments.assignments["a1"]
	assert.Equal(t, domain.AssignmentCancelled, original.Status)
	assert.Contains(t, original.Notes, "rep-w")
	assert.Contains(t, original.Notes, "reported sick")

	published := fx.dispatcher.events()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventAssignmentReplaced, published[0].Type)
}

func TestCreateReplacementRejectionLeavesOriginalUntouched(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "orig-w")
	seedWorker(fx, "rep-w", func(m *domain.StaffMember) {
		m.Certifications = nil
	})
	seedOperation(fx, "op1")
	fx.assignments.assignments["a1"] = domain.Assignment{
		ID:          "a1",
		StaffID:     "orig-w",
		OperationID: "op1",
		StartTime:   at(9, 0),
		EndTime:     at(13, 0),
		Status:      domain.AssignmentConfirmed,
	}

	_, err := fx.staffing.CreateReplacement(context.Background(), supervisor(),
		"a1", "rep-w", "reported sick")

	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
	original := fx.assignments.assignments["a1"]
	assert.Equal(t, domain.AssignmentConfirmed, original.Status)
	assert.Empty(t, original.Notes)
	assert.Len(t, fx.assignments.assignments, 1)
}

func TestCreateReplacementOfCancelledAssignment(t *testing.T) {
	fx := newSchedulingFixture()
	seedWorker(fx, "orig-w")
	seedWorker(fx, "rep-w")
	seedOperation(fx, "op1")
	fx.assignments.assignments["a1"] = domain.Assignment{
		ID:          "a1",
		StaffID:     "orig-w",
		OperationID: "op1",
		StartTime:   at(9, 0),
		EndTime:     at(13, 0),
		Status:      domain.AssignmentCancelled,
	}

	_, err := fx.staffing.CreateReplacement(context.Background(), supervisor(),
		"a1", "rep-w", "reported sick")

	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestCreateReplacementUnknownAssignment(t *testing.T) {
	fx := newSchedulingFixture()

	_, err := fx.staffing.CreateReplacement(context.Background(), supervisor(),
		"ghost", "rep-w", "reported sick")

	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestUpdateAssignmentStatus(t *testing.T) {
	fx := newSchedulingFixture()
	fx.assignments.assignments["a1"] = domain.Assignment{
		ID:      "a1",
		StaffID: "w1",
		Status:  domain.AssignmentScheduled,
	}

	self := &domain.StaffMember{ID: "w1", Role: domain.StaffRoleWorker, Active: true}
	updated, err := fx.staffing.UpdateAssignmentStatus(context.Background(), self,
		"a1", domain.AssignmentConfirmed, "on my way")
	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentConfirmed, updated.Status)

	published := fx.dispatcher.events()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventAssignmentStatusChanged, published[0].Type)
}

func TestUpdateAssignmentStatusForbiddenForOtherWorker(t *testing.T) {
	fx := newSchedulingFixture()
	fx.assignments.assignments["a1"] = domain.Assignment{
		ID:      "a1",
		StaffID: "w1",
		Status:  domain.AssignmentScheduled,
	}

	other := &domain.StaffMember{ID: "w2", Role: domain.StaffRoleWorker, Active: true}
	_, err := fx.staffing.UpdateAssignmentStatus(context.Background(), other,
		"a1", domain.AssignmentConfirmed, "")

	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}

func TestUpdateAssignmentStatusTerminalGuard(t *testing.T) {
	fx := newSchedulingFixture()
	fx.assignments.assignments["a1"] = domain.Assignment{
		ID:      "a1",
		StaffID: "w1",
		Status:  domain.AssignmentCompleted,
	}

	_, err := fx.staffing.UpdateAssignmentStatus(context.Background(), supervisor(),
		"a1", domain.AssignmentInProgress, "")

	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestGetOptimalStaffingUnknownOperation(t *testing.T) {
	fx := newSchedulingFixture()

	_, err := fx.staffing.GetOptimalStaffing(context.Background(), "ghost")

	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}
