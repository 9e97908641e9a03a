package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/groundops-service/internal/auth"
	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/events"
	"github.com/spec-kit/groundops-service/internal/repository"
	apperrors "github.com/spec-kit/groundops-service/pkg/util"
)

// OperationService manages the operation catalog.
type OperationService struct {
	operations repository.OperationRepository
	stations   repository.StationRepository
	dispatcher events.Dispatcher
}

// NewOperationService constructs the service.
func NewOperationService(operations repository.OperationRepository, stations repository.StationRepository, dispatcher events.Dispatcher) *OperationService {
	return &OperationService{
		operations: operations,
		stations:   stations,
		dispatcher: dispatcher,
	}
}

func requireOperationPriv(actor *domain.StaffMember) error {
	if actor == nil {
		return apperrors.NewUnauthorized("staff required")
	}
	if !auth.HasPermission(actor.Role, auth.PermManageOperations) {
		return apperrors.NewForbidden("operation management requires manager role")
	}
	return nil
}

// CreateOperation registers a new flight/ground operation.
func (s *OperationService) CreateOperation(ctx context.Context, actor *domain.StaffMember, op *domain.Operation) (*domain.Operation, error) {
	if err := requireOperationPriv(actor); err != nil {
		return nil, err
	}
	if op.PassengerCount < 0 {
		return nil, apperrors.NewValidationError("passenger count cannot be negative", nil)
	}
	if _, err := s.stations.GetByID(ctx, op.StationID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("station", map[string]any{"station_id": op.StationID})
		}
		return nil, apperrors.MapError(err)
	}
	if err := s.operations.Create(ctx, op); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:          uuid.NewString(),
			Type:        events.EventOperationCreated,
			OperationID: op.ID,
			Actor:       events.Actor{StaffID: &actor.ID, Role: actor.Role},
			Timestamp:   time.Now(),
			Payload: events.OperationCreatedPayload{
				FlightNumber: op.FlightNumber,
				FlightType:   op.FlightType,
				StationID:    op.StationID,
				ScheduledAt:  op.ScheduledTime,
			},
		})
	}
	return op, nil
}

// UpdateOperation updates an operation's fields.
func (s *OperationService) UpdateOperation(ctx context.Context, actor *domain.StaffMember, op *domain.Operation) (*domain.Operation, error) {
	if err := requireOperationPriv(actor); err != nil {
		return nil, err
	}
	if err := s.operations.Update(ctx, op); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("operation", map[string]any{"operation_id": op.ID})
		}
		return nil, apperrors.MapError(err)
	}
	return op, nil
}

// GetOperation fetches an operation with its station resolved.
func (s *OperationService) GetOperation(ctx context.Context, id string) (*domain.Operation, error) {
	op, err := s.operations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("operation", map[string]any{"operation_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return op, nil
}

// ListOperations returns operations matching the filter.
func (s *OperationService) ListOperations(ctx context.Context, filter repository.OperationFilter) ([]domain.Operation, error) {
	ops, err := s.operations.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return ops, nil
}
