package events

import (
	"time"

	"github.com/spec-kit/groundops-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAssignmentCreated       EventType = "assignment_created"
	EventAssignmentStatusChanged EventType = "assignment_status_changed"
	EventAssignmentReplaced      EventType = "assignment_replaced"
	EventOperationCreated        EventType = "operation_created"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	StaffID *string          `json:"staff_id,omitempty"`
	Role    domain.StaffRole `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	AssignmentID string      `json:"assignment_id,omitempty"`
	OperationID  string      `json:"operation_id,omitempty"`
	Actor        Actor       `json:"actor"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// AssignmentCreatedPayload payload.
type AssignmentCreatedPayload struct {
	StaffID       string    `json:"staff_id"`
	OperationID   string    `json:"operation_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	IsReplacement bool      `json:"is_replacement"`
}

// AssignmentStatusChangedPayload payload.
type AssignmentStatusChangedPayload struct {
	StaffID   string                  `json:"staff_id"`
	OldStatus domain.AssignmentStatus `json:"old_status"`
	NewStatus domain.AssignmentStatus `json:"new_status"`
	Note      string                  `json:"note,omitempty"`
}

// AssignmentReplacedPayload payload.
type AssignmentReplacedPayload struct {
	OriginalAssignmentID string `json:"original_assignment_id"`
	OriginalStaffID      string `json:"original_staff_id"`
	ReplacementStaffID   string `json:"replacement_staff_id"`
	Reason               string `json:"reason"`
}

// OperationCreatedPayload payload.
type OperationCreatedPayload struct {
	FlightNumber string            `json:"flight_number"`
	FlightType   domain.FlightType `json:"flight_type"`
	StationID    string            `json:"station_id"`
	ScheduledAt  time.Time         `json:"scheduled_at"`
}
