package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/groundops-service/internal/api/dto"
	"github.com/spec-kit/groundops-service/internal/service"
)

// ScheduleHandler exposes validation and availability endpoints.
type ScheduleHandler struct {
	schedule *service.ScheduleService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(schedule *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule}
}

// Validate handles POST /schedule/validate.
func (h *ScheduleHandler) Validate(c *fiber.Ctx) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}
	var req dto.ValidateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.StaffID == "" || req.OperationID == "" {
		return fiber.NewError(http.StatusBadRequest, "staff_id and operation_id required")
	}
	start, err := parseTimeField(req.StartTime, "start_time")
	if err != nil {
		return err
	}
	end, err := parseTimeField(req.EndTime, "end_time")
	if err != nil {
		return err
	}

	result := h.schedule.Validate(c.Context(), req.StaffID, req.OperationID, start, end)
	return c.JSON(fiber.Map{"data": dto.ValidationResponse{
		IsValid:  result.IsValid,
		Errors:   emptyIfNil(result.Errors),
		Warnings: emptyIfNil(result.Warnings),
	}})
}

// CheckAvailability handles POST /schedule/availability.
func (h *ScheduleHandler) CheckAvailability(c *fiber.Ctx) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}
	var req dto.AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if len(req.StaffIDs) == 0 {
		return fiber.NewError(http.StatusBadRequest, "staff_ids required")
	}
	start, err := parseTimeField(req.StartTime, "start_time")
	if err != nil {
		return err
	}
	end, err := parseTimeField(req.EndTime, "end_time")
	if err != nil {
		return err
	}

	results := h.schedule.CheckAvailability(c.Context(), req.StaffIDs, start, end)
	resp := make([]dto.AvailabilityResponse, 0, len(results))
	for _, r := range results {
		conflicts := make([]dto.AssignmentResponse, 0, len(r.ConflictingAssignments))
		for i := range r.ConflictingAssignments {
			conflicts = append(conflicts, assignmentResponse(&r.ConflictingAssignments[i]))
		}
		resp = append(resp, dto.AvailabilityResponse{
			StaffID:                r.StaffID,
			IsAvailable:            r.IsAvailable,
			ConflictingAssignments: conflicts,
			Reasons:                emptyIfNil(r.Reasons),
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
