package dto

import (
	"time"

	"github.com/spec-kit/groundops-service/internal/domain"
)

// ValidateRequest payload for candidate assignment validation.
type ValidateRequest struct {
	StaffID     string `json:"staff_id"`
	OperationID string `json:"operation_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// ValidationResponse payload.
type ValidationResponse struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// AvailabilityRequest payload for batch availability checks.
type AvailabilityRequest struct {
	StaffIDs  []string `json:"staff_ids"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
}

// AvailabilityResponse payload for one staff member.
type AvailabilityResponse struct {
	StaffID                string               `json:"staff_id"`
	IsAvailable            bool                 `json:"is_available"`
	ConflictingAssignments []AssignmentResponse `json:"conflicting_assignments,omitempty"`
	Reasons                []string             `json:"reasons"`
}

// AssignmentCreateRequest payload.
type AssignmentCreateRequest struct {
	StaffID     string  `json:"staff_id"`
	OperationID string  `json:"operation_id"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Cost        float64 `json:"cost"`
}

// AssignmentStatusRequest payload.
type AssignmentStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// ReplacementRequest payload.
type ReplacementRequest struct {
	ReplacementStaffID string `json:"replacement_staff_id"`
	Reason             string `json:"reason"`
}

// AssignmentResponse payload.
type AssignmentResponse struct {
	ID                    string                  `json:"id"`
	StaffID               string                  `json:"staff_id"`
	OperationID           string                  `json:"operation_id"`
	StartTime             time.Time               `json:"start_time"`
	EndTime               time.Time               `json:"end_time"`
	Status                domain.AssignmentStatus `json:"status"`
	IsReplacement         bool                    `json:"is_replacement"`
	ReplacementForStaffID *string                 `json:"replacement_for_staff_id,omitempty"`
	Cost                  float64                 `json:"cost"`
	Notes                 string                  `json:"notes,omitempty"`
}

// StaffingPlanResponse payload.
type StaffingPlanResponse struct {
	OperationID      string          `json:"operation_id"`
	MinimumStaff     int             `json:"minimum_staff"`
	RecommendedStaff int             `json:"recommended_staff"`
	SkillsNeeded     []string        `json:"skills_needed"`
	AvailableStaff   []StaffResponse `json:"available_staff"`
}
