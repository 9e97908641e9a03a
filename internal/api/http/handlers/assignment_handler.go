package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/groundops-service/internal/api/dto"
	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/service"
)

// AssignmentHandler exposes assignment endpoints.
type AssignmentHandler struct {
	staffing *service.StaffingService
}

// NewAssignmentHandler constructs handler.
func NewAssignmentHandler(staffing *service.StaffingService) *AssignmentHandler {
	return &AssignmentHandler{staffing: staffing}
}

// CreateAssignment handles POST /assignments.
func (h *AssignmentHandler) CreateAssignment(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.AssignmentCreateRequest
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

	assignment, err := h.staffing.CreateAssignment(c.Context(), actor, req.StaffID, req.OperationID, start, end, req.Cost)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": assignmentResponse(assignment)})
}

// UpdateStatus handles PATCH /assignments/:id/status.
func (h *AssignmentHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.AssignmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	status, ok := domain.ParseAssignmentStatus(req.Status)
	if !ok {
		return fiber.NewError(http.StatusBadRequest, "unknown status")
	}

	assignment, err := h.staffing.UpdateAssignmentStatus(c.Context(), actor, c.Params("id"), status, req.Note)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": assignmentResponse(assignment)})
}

// CreateReplacement handles POST /assignments/:id/replacement.
func (h *AssignmentHandler) CreateReplacement(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ReplacementRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ReplacementStaffID == "" {
		return fiber.NewError(http.StatusBadRequest, "replacement_staff_id required")
	}

	replacement, err := h.staffing.CreateReplacement(c.Context(), actor, c.Params("id"), req.ReplacementStaffID, req.Reason)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": assignmentResponse(replacement)})
}
