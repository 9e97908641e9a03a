package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/repository"
)

const internalValidationError = "validation could not be completed due to an internal error"

// ScheduleService decides whether a staff member may be placed on an
// operation. Rule violations are result values, not errors: callers get the
// full list of problems in one pass.
type ScheduleService struct {
	staff       repository.StaffRepository
	assignments repository.AssignmentRepository
	operations  repository.OperationRepository
	logger      *zap.Logger
}

// ScheduleDependencies bundles repositories.
type ScheduleDependencies struct {
	StaffRepo      repository.StaffRepository
	AssignmentRepo repository.AssignmentRepository
	OperationRepo  repository.OperationRepository
}

// NewScheduleService creates the service.
func NewScheduleService(deps ScheduleDependencies, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		staff:       deps.StaffRepo,
		assignments: deps.AssignmentRepo,
		operations:  deps.OperationRepo,
		logger:      logger,
	}
}

// Validate runs every admissibility rule for the candidate assignment.
// Errors block; warnings advise. Any internal fault collapses into a single
// blocking error so validation never approves on partial data.
func (s *ScheduleService) Validate(ctx context.Context, staffID, operationID string, start, end time.Time) *domain.ValidationResult {
	result, err := s.runValidation(ctx, staffID, operationID, start, end)
	if err != nil {
		s.logger.Error("assignment validation failed internally",
			zap.String("staff_id", staffID),
			zap.String("operation_id", operationID),
			zap.Error(err),
		)
		return &domain.ValidationResult{
			IsValid: false,
			Errors:  []string{internalValidationError},
		}
	}
	result.IsValid = len(result.Errors) == 0
	return result
}

func (s *ScheduleService) runValidation(ctx context.Context, staffID, operationID string, start, end time.Time) (*domain.ValidationResult, error) {
	result := &domain.ValidationResult{}

	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			result.Errors = append(result.Errors, "staff member not found")
			return result, nil
		}
		return nil, err
	}
	if !staff.Active {
		result.Errors = append(result.Errors, "staff member is not active")
		return result, nil
	}

	operation, err := s.operations.GetByID(ctx, operationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			result.Errors = append(result.Errors, "operation not found")
			return result, nil
		}
		return nil, err
	}

	if !start.Before(end) {
		result.Errors = append(result.Errors, "start time must be before end time")
	}

	duration := domain.DurationHours(start, end)
	if duration > staff.DailyCap() {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"assignment duration %.1fh exceeds daily limit of %.1fh", duration, staff.DailyCap()))
	}

	overlapping, err := s.assignments.FindOverlapping(ctx, staffID, start, end, domain.ActiveStatuses)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		result.Errors = append(result.Errors, "staff member is already assigned in that window")
	}

	weekStart, weekEnd := domain.WeekBounds(start)
	completed, err := s.assignments.SumCompletedHours(ctx, staffID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	if completed+duration > staff.WeeklyCap() {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"weekly hours would reach %.1fh, above the %.1fh limit", completed+duration, staff.WeeklyCap()))
	}

	if !staff.WorksShift(domain.ShiftWindowAt(start)) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"start time falls in the %s shift, outside the staff member's available shifts",
			domain.ShiftWindowAt(start)))
	}

	if missing := staff.MissingCertifications(operation.RequiredCertifications()); len(missing) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"staff member lacks required certifications: %s", strings.Join(missing, ", ")))
	}

	return result, nil
}

// CheckAvailability batch-checks staff against a window. Stricter than
// Validate: weekly overflow and shift mismatch disqualify here, since this
// feeds replacement searches where a soft override makes no sense.
func (s *ScheduleService) CheckAvailability(ctx context.Context, staffIDs []string, start, end time.Time) []domain.AvailabilityResult {
	results := make([]domain.AvailabilityResult, 0, len(staffIDs))
	for _, id := range staffIDs {
		results = append(results, s.checkOne(ctx, id, start, end))
	}
	return results
}

func (s *ScheduleService) checkOne(ctx context.Context, staffID string, start, end time.Time) domain.AvailabilityResult {
	result := domain.AvailabilityResult{StaffID: staffID}

	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			result.Reasons = append(result.Reasons, "staff member not found")
		} else {
			s.logger.Error("availability check failed internally", zap.String("staff_id", staffID), zap.Error(err))
			result.Reasons = append(result.Reasons, internalValidationError)
		}
		return result
	}
	if !staff.Active || !staff.Available {
		result.Reasons = append(result.Reasons, "staff member is inactive or marked unavailable")
		return result
	}

	conflicts, err := s.assignments.FindOverlapping(ctx, staffID, start, end, domain.ActiveStatuses)
	if err != nil {
		s.logger.Error("availability check failed internally", zap.String("staff_id", staffID), zap.Error(err))
		result.Reasons = append(result.Reasons, internalValidationError)
		return result
	}
	if len(conflicts) > 0 {
		result.ConflictingAssignments = conflicts
		result.Reasons = append(result.Reasons, "conflicting assignments in the requested window")
	}

	if !staff.WorksShift(domain.ShiftWindowAt(start)) {
		result.Reasons = append(result.Reasons, "requested window is outside the staff member's available shifts")
	}

	weekStart, weekEnd := domain.WeekBounds(start)
	completed, err := s.assignments.SumCompletedHours(ctx, staffID, weekStart, weekEnd)
	if err != nil {
		s.logger.Error("availability check failed internally", zap.String("staff_id", staffID), zap.Error(err))
		result.Reasons = append(result.Reasons, internalValidationError)
		return result
	}
	if completed+domain.DurationHours(start, end) > staff.WeeklyCap() {
		result.Reasons = append(result.Reasons, "weekly hour limit would be exceeded")
	}

	result.IsAvailable = len(result.Reasons) == 0
	return result
}
