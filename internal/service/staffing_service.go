package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/groundops-service/internal/auth"
	"github.com/spec-kit/groundops-service/internal/config"
	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/events"
	"github.com/spec-kit/groundops-service/internal/repository"
	apperrors "github.com/spec-kit/groundops-service/pkg/util"
)

// Skill sets derived from operation characteristics.
var (
	customsSkills   = []string{"customs_handling", "immigration_procedures"}
	loadingSkills   = []string{"baggage_loading", "aircraft_marshalling"}
	unloadingSkills = []string{"baggage_unloading", "passenger_escort"}
	crowdSkills     = []string{"crowd_management"}
)

var roleScores = map[domain.StaffRole]int{
	domain.StaffRoleWorker:     1,
	domain.StaffRoleSupervisor: 2,
	domain.StaffRoleManager:    3,
	domain.StaffRoleAdmin:      4,
}

// StaffingService computes staffing plans, finds candidate staff and drives
// replacement creation.
type StaffingService struct {
	staff       repository.StaffRepository
	assignments repository.AssignmentRepository
	operations  repository.OperationRepository
	schedule    *ScheduleService
	dispatcher  events.Dispatcher
	cache       *redis.Client
	cfg         config.SchedulingConfig
	logger      *zap.Logger
}

// StaffingDependencies bundles collaborators.
type StaffingDependencies struct {
	StaffRepo      repository.StaffRepository
	AssignmentRepo repository.AssignmentRepository
	OperationRepo  repository.OperationRepository
	Schedule       *ScheduleService
	Dispatcher     events.Dispatcher
	Cache          *redis.Client
}

// NewStaffingService creates the service.
func NewStaffingService(cfg config.SchedulingConfig, deps StaffingDependencies, logger *zap.Logger) *StaffingService {
	return &StaffingService{
		staff:       deps.StaffRepo,
		assignments: deps.AssignmentRepo,
		operations:  deps.OperationRepo,
		schedule:    deps.Schedule,
		dispatcher:  deps.Dispatcher,
		cache:       deps.Cache,
		cfg:         cfg,
		logger:      logger,
	}
}

// RecommendationScore ranks a staff member for manager convenience.
// Supervisor-tier roles outrank frontline workers; certifications weigh
// double what skills do.
func RecommendationScore(staff *domain.StaffMember) int {
	return roleScores[staff.Role] + 2*len(staff.Certifications) + len(staff.Skills)
}

// FindAvailableStaff returns frontline workers able to cover the operation,
// ranked by recommendation score. Filters only apply when the corresponding
// requirement exists, so missing data never eliminates a candidate.
func (s *StaffingService) FindAvailableStaff(ctx context.Context, operationID string, requiredSkills, excludeIDs []string) ([]domain.StaffMember, error) {
	operation, err := s.operations.GetByID(ctx, operationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("operation", map[string]any{"operation_id": operationID})
		}
		return nil, apperrors.MapError(err)
	}

	role := domain.StaffRoleWorker
	active, available := true, true
	pool, err := s.staff.List(ctx, repository.StaffFilter{
		Role:      &role,
		Active:    &active,
		Available: &available,
		Limit:     1000,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	shift := domain.ShiftWindowAt(operation.ScheduledTime)
	requiredCerts := operation.RequiredCertifications()
	winStart, winEnd, hasWindow := operation.Window()

	var candidates []domain.StaffMember
	for i := range pool {
		candidate := &pool[i]
		if _, skip := excluded[candidate.ID]; skip {
			continue
		}
		if len(requiredSkills) > 0 && !candidate.HasSkills(requiredSkills) {
			continue
		}
		if len(requiredCerts) > 0 && !candidate.HasCertifications(requiredCerts) {
			continue
		}
		if !candidate.WorksShift(shift) {
			continue
		}
		if hasWindow {
			conflicts, err := s.assignments.FindOverlapping(ctx, candidate.ID, winStart, winEnd, domain.ActiveStatuses)
			if err != nil {
				return nil, apperrors.MapError(err)
			}
			if len(conflicts) > 0 {
				continue
			}
		}
		candidates = append(candidates, *candidate)
	}

	// Ties break on lower staff ID so rankings are reproducible.
	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := RecommendationScore(&candidates[i]), RecommendationScore(&candidates[j])
		if si != sj {
			return si > sj
		}
		return candidates[i].ID < candidates[j].ID
	})
	return candidates, nil
}

// GetOptimalStaffing computes minimum and recommended staffing for an
// operation. Plans are cached in redis for a short TTL; cache failures are
// logged and otherwise ignored.
func (s *StaffingService) GetOptimalStaffing(ctx context.Context, operationID string) (*domain.StaffingPlan, error) {
	if plan := s.cachedPlan(ctx, operationID); plan != nil {
		return plan, nil
	}

	operation, err := s.operations.GetByID(ctx, operationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("operation", map[string]any{"operation_id": operationID})
		}
		return nil, apperrors.MapError(err)
	}

	perStaff := s.cfg.PassengersPerStaff
	if perStaff <= 0 {
		perStaff = 50
	}
	baseStaff := int(math.Ceil(float64(operation.PassengerCount) / float64(perStaff)))
	minimum := baseStaff
	if operation.Station != nil && operation.Station.MinimumStaff > minimum {
		minimum = operation.Station.MinimumStaff
	}
	factor := s.cfg.RecommendedStaffFactor
	if factor <= 0 {
		factor = 1.2
	}
	recommended := int(math.Ceil(float64(minimum) * factor))

	skills := s.skillsNeeded(operation)
	availableStaff, err := s.FindAvailableStaff(ctx, operationID, skills, nil)
	if err != nil {
		return nil, err
	}

	plan := &domain.StaffingPlan{
		OperationID:      operationID,
		MinimumStaff:     minimum,
		RecommendedStaff: recommended,
		SkillsNeeded:     skills,
		AvailableStaff:   availableStaff,
	}
	s.storePlan(ctx, plan)
	return plan, nil
}

func (s *StaffingService) skillsNeeded(operation *domain.Operation) []string {
	var skills []string
	if operation.FlightType == domain.FlightTypeInternational {
		skills = append(skills, customsSkills...)
	}
	if operation.Direction == domain.DirectionDeparture {
		skills = append(skills, loadingSkills...)
	} else {
		skills = append(skills, unloadingSkills...)
	}
	threshold := s.cfg.CrowdControlThreshold
	if threshold <= 0 {
		threshold = 200
	}
	if operation.PassengerCount > threshold {
		skills = append(skills, crowdSkills...)
	}
	return skills
}

// CreateAssignment validates a candidate and inserts it under the per-staff
// lock. Rejected candidates surface every blocking reason at once.
func (s *StaffingService) CreateAssignment(ctx context.Context, actor *domain.StaffMember, staffID, operationID string, start, end time.Time, cost float64) (*domain.Assignment, error) {
	if err := requireSchedulePriv(actor); err != nil {
		return nil, err
	}

	validation := s.schedule.Validate(ctx, staffID, operationID, start, end)
	if !validation.IsValid {
		return nil, apperrors.NewValidationFailed(validation.Errors)
	}

	assignment := &domain.Assignment{
		StaffID:     staffID,
		OperationID: operationID,
		StartTime:   start,
		EndTime:     end,
		Status:      domain.AssignmentScheduled,
		Cost:        cost,
	}
	if err := s.assignments.CreateExclusive(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrOverlappingAssignment) {
			return nil, apperrors.NewConflict("staff member is already assigned in that window", map[string]any{
				"staff_id": staffID,
			})
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.Event{
		Type:         events.EventAssignmentCreated,
		AssignmentID: assignment.ID,
		OperationID:  operationID,
		Payload: events.AssignmentCreatedPayload{
			StaffID:     staffID,
			OperationID: operationID,
			StartTime:   start,
			EndTime:     end,
		},
	})
	return assignment, nil
}

// CreateReplacement swaps a replacement staff member into an existing
// assignment's window. The cancel and the insert commit together or not at
// all; the original is untouched until the replacement is proven valid.
func (s *StaffingService) CreateReplacement(ctx context.Context, actor *domain.StaffMember, originalAssignmentID, replacementStaffID, reason string) (*domain.Assignment, error) {
	if err := requireSchedulePriv(actor); err != nil {
		return nil, err
	}

	original, err := s.assignments.GetByID(ctx, originalAssignmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignment", map[string]any{"assignment_id": originalAssignmentID})
		}
		return nil, apperrors.MapError(err)
	}

	validation := s.schedule.Validate(ctx, replacementStaffID, original.OperationID, original.StartTime, original.EndTime)
	if !validation.IsValid {
		return nil, apperrors.NewValidationFailed(validation.Errors)
	}

	replacement := &domain.Assignment{
		StaffID:               replacementStaffID,
		OperationID:           original.OperationID,
		StartTime:             original.StartTime,
		EndTime:               original.EndTime,
		Status:                domain.AssignmentScheduled,
		IsReplacement:         true,
		ReplacementForStaffID: &original.StaffID,
		Cost:                  original.Cost,
	}
	cancelNote := fmt.Sprintf("replaced by staff %s (reason: %s, requested by %s)",
		replacementStaffID, reason, actor.ID)

	if err := s.assignments.Replace(ctx, original.ID, cancelNote, replacement); err != nil {
		if errors.Is(err, repository.ErrOverlappingAssignment) {
			return nil, apperrors.NewConflict("replacement staff member is already assigned in that window", map[string]any{
				"staff_id": replacementStaffID,
			})
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("original assignment is already cancelled", map[string]any{
				"assignment_id": original.ID,
			})
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.Event{
		Type:         events.EventAssignmentReplaced,
		AssignmentID: replacement.ID,
		OperationID:  original.OperationID,
		Payload: events.AssignmentReplacedPayload{
			OriginalAssignmentID: original.ID,
			OriginalStaffID:      original.StaffID,
			ReplacementStaffID:   replacementStaffID,
			Reason:               reason,
		},
	})
	return replacement, nil
}

// UpdateAssignmentStatus applies a caller-driven lifecycle transition.
// Terminal states cannot be left.
func (s *StaffingService) UpdateAssignmentStatus(ctx context.Context, actor *domain.StaffMember, assignmentID string, status domain.AssignmentStatus, note string) (*domain.Assignment, error) {
	existing, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignment", map[string]any{"assignment_id": assignmentID})
		}
		return nil, apperrors.MapError(err)
	}
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	if actor.ID != existing.StaffID && !auth.HasPermission(actor.Role, auth.PermCreateAssignments) {
		return nil, apperrors.NewForbidden("cannot update another staff member's assignment")
	}
	if existing.Status.IsTerminal() {
		return nil, apperrors.NewConflict("assignment is in a terminal state", map[string]any{
			"status": existing.Status,
		})
	}

	updated, err := s.assignments.UpdateStatus(ctx, assignmentID, status, note)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.Event{
		Type:         events.EventAssignmentStatusChanged,
		AssignmentID: assignmentID,
		OperationID:  existing.OperationID,
		Payload: events.AssignmentStatusChangedPayload{
			StaffID:   existing.StaffID,
			OldStatus: existing.Status,
			NewStatus: status,
			Note:      note,
		},
	})
	return updated, nil
}

func (s *StaffingService) publish(ctx context.Context, actor *domain.StaffMember, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	if actor != nil {
		event.Actor = events.Actor{StaffID: &actor.ID, Role: actor.Role}
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func (s *StaffingService) cachedPlan(ctx context.Context, operationID string) *domain.StaffingPlan {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, planCacheKey(operationID)).Bytes()
	if err != nil {
		return nil
	}
	var plan domain.StaffingPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil
	}
	return &plan
}

func (s *StaffingService) storePlan(ctx context.Context, plan *domain.StaffingPlan) {
	if s.cache == nil || s.cfg.PlanCacheTTL() <= 0 {
		return
	}
	raw, err := json.Marshal(plan)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, planCacheKey(plan.OperationID), raw, s.cfg.PlanCacheTTL()).Err(); err != nil {
		s.logger.Warn("failed to cache staffing plan", zap.String("operation_id", plan.OperationID), zap.Error(err))
	}
}

func planCacheKey(operationID string) string {
	return "staffing_plan:" + operationID
}

func requireSchedulePriv(actor *domain.StaffMember) error {
	if actor == nil {
		return apperrors.NewUnauthorized("staff required")
	}
	if !auth.HasPermission(actor.Role, auth.PermCreateAssignments) {
		return apperrors.NewForbidden("insufficient role for scheduling")
	}
	return nil
}
