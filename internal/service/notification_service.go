package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/events"
	"github.com/spec-kit/groundops-service/internal/repository"
)

// NotificationService turns domain events into persisted staff notifications.
// Delivery is best-effort: a failed notification never fails the write that
// triggered it.
type NotificationService struct {
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAssignmentCreated, n.handleAssignmentCreated)
	n.dispatcher.Subscribe(events.EventAssignmentReplaced, n.handleAssignmentReplaced)
	n.dispatcher.Subscribe(events.EventAssignmentStatusChanged, n.handleAssignmentStatusChanged)
}

// Notify persists a notification for a staff member, logging on failure.
func (n *NotificationService) Notify(ctx context.Context, staffID, title, message string, data map[string]any) {
	notification := &domain.Notification{
		StaffID: staffID,
		Title:   title,
		Message: message,
		Data:    data,
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Warn("failed to persist notification",
			zap.String("staff_id", staffID),
			zap.String("title", title),
			zap.Error(err),
		)
	}
}

// ListForStaff returns a staff member's notifications.
func (n *NotificationService) ListForStaff(ctx context.Context, staffID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	return n.notifications.ListByStaff(ctx, staffID, unreadOnly, limit)
}

// MarkRead flags a notification as read.
func (n *NotificationService) MarkRead(ctx context.Context, id string) error {
	return n.notifications.MarkRead(ctx, id)
}

func (n *NotificationService) handleAssignmentCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AssignmentCreatedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("AssignmentCreated", zap.String("assignment_id", event.AssignmentID), zap.Any("payload", payload))
	n.Notify(ctx, payload.StaffID, "New assignment",
		"You have been assigned to an operation.",
		map[string]any{
			"assignment_id": event.AssignmentID,
			"operation_id":  payload.OperationID,
			"start_time":    payload.StartTime,
			"end_time":      payload.EndTime,
		})
	return nil
}

func (n *NotificationService) handleAssignmentReplaced(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AssignmentReplacedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("AssignmentReplaced", zap.String("assignment_id", event.AssignmentID), zap.Any("payload", payload))
	n.Notify(ctx, payload.ReplacementStaffID, "New assignment",
		"You have been assigned as a replacement.",
		map[string]any{
			"assignment_id": event.AssignmentID,
			"operation_id":  event.OperationID,
			"reason":        payload.Reason,
		})
	n.Notify(ctx, payload.OriginalStaffID, "Assignment cancelled",
		"Your assignment has been cancelled and reassigned.",
		map[string]any{
			"assignment_id": payload.OriginalAssignmentID,
			"reason":        payload.Reason,
		})
	return nil
}

func (n *NotificationService) handleAssignmentStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AssignmentStatusChangedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("AssignmentStatusChanged",
		zap.String("assignment_id", event.AssignmentID),
		zap.String("old_status", string(payload.OldStatus)),
		zap.String("new_status", string(payload.NewStatus)),
	)
	return nil
}
