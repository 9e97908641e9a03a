package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/groundops-service/internal/api/dto"
	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/repository"
	"github.com/spec-kit/groundops-service/internal/service"
)

// OperationHandler exposes operation catalog endpoints.
type OperationHandler struct {
	operations *service.OperationService
	staffing   *service.StaffingService
}

// NewOperationHandler constructs handler.
func NewOperationHandler(operations *service.OperationService, staffing *service.StaffingService) *OperationHandler {
	return &OperationHandler{operations: operations, staffing: staffing}
}

// CreateOperation handles POST /operations.
func (h *OperationHandler) CreateOperation(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	op, err := operationFromRequest(c)
	if err != nil {
		return err
	}
	created, err := h.operations.CreateOperation(c.Context(), actor, op)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": operationResponse(created)})
}

// UpdateOperation handles PUT /operations/:id.
func (h *OperationHandler) UpdateOperation(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	op, err := operationFromRequest(c)
	if err != nil {
		return err
	}
	op.ID = c.Params("id")
	updated, err := h.operations.UpdateOperation(c.Context(), actor, op)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": operationResponse(updated)})
}

// GetOperation handles GET /operations/:id.
func (h *OperationHandler) GetOperation(c *fiber.Ctx) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}
	op, err := h.operations.GetOperation(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": operationResponse(op)})
}

// ListOperations handles GET /operations.
func (h *OperationHandler) ListOperations(c *fiber.Ctx) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}
	var filter repository.OperationFilter
	if stationID := c.Query("station_id"); stationID != "" {
		filter.StationID = &stationID
	}
	if ft := c.Query("flight_type"); ft != "" {
		flightType := domain.FlightType(ft)
		filter.FlightType = &flightType
	}
	if from := c.Query("from"); from != "" {
		t, err := parseTimeField(from, "from")
		if err != nil {
			return err
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := parseTimeField(to, "to")
		if err != nil {
			return err
		}
		filter.To = &t
	}
	page := parseIntQuery(c, "page", 1)
	pageSize := parseIntQuery(c, "page_size", 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	ops, err := h.operations.ListOperations(c.Context(), filter)
	if err != nil {
		return err
	}
	resp := make([]dto.OperationResponse, 0, len(ops))
	for i := range ops {
		resp = append(resp, operationResponse(&ops[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// GetStaffing handles GET /operations/:id/staffing.
func (h *OperationHandler) GetStaffing(c *fiber.Ctx) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}
	plan, err := h.staffing.GetOptimalStaffing(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	available := make([]dto.StaffResponse, 0, len(plan.AvailableStaff))
	for i := range plan.AvailableStaff {
		available = append(available, staffResponse(&plan.AvailableStaff[i]))
	}
	return c.JSON(fiber.Map{"data": dto.StaffingPlanResponse{
		OperationID:      plan.OperationID,
		MinimumStaff:     plan.MinimumStaff,
		RecommendedStaff: plan.RecommendedStaff,
		SkillsNeeded:     plan.SkillsNeeded,
		AvailableStaff:   available,
	}})
}

// GetAvailableStaff handles GET /operations/:id/available-staff.
func (h *OperationHandler) GetAvailableStaff(c *fiber.Ctx) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}
	var skills, exclude []string
	if raw := c.Query("skills"); raw != "" {
		skills = splitCSV(raw)
	}
	if raw := c.Query("exclude"); raw != "" {
		exclude = splitCSV(raw)
	}
	staff, err := h.staffing.FindAvailableStaff(c.Context(), c.Params("id"), skills, exclude)
	if err != nil {
		return err
	}
	resp := make([]dto.StaffResponse, 0, len(staff))
	for i := range staff {
		resp = append(resp, staffResponse(&staff[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

func operationFromRequest(c *fiber.Ctx) (*domain.Operation, error) {
	var req dto.OperationRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.FlightNumber == "" || req.StationID == "" {
		return nil, fiber.NewError(http.StatusBadRequest, "flight_number and station_id required")
	}
	scheduled, err := parseTimeField(req.ScheduledTime, "scheduled_time")
	if err != nil {
		return nil, err
	}

	flightType := domain.FlightType(req.FlightType)
	switch flightType {
	case domain.FlightTypeDomestic, domain.FlightTypeInternational, domain.FlightTypeCargo, domain.FlightTypePrivate:
	default:
		return nil, fiber.NewError(http.StatusBadRequest, "unknown flight_type")
	}
	direction := domain.FlightDirection(req.Direction)
	if direction == "" {
		direction = domain.DirectionDeparture
	}
	switch direction {
	case domain.DirectionDeparture, domain.DirectionArrival:
	default:
		return nil, fiber.NewError(http.StatusBadRequest, "unknown direction")
	}

	return &domain.Operation{
		FlightNumber:           req.FlightNumber,
		FlightType:             flightType,
		Direction:              direction,
		ScheduledTime:          scheduled,
		EstimatedDurationHours: req.EstimatedDurationHours,
		PassengerCount:         req.PassengerCount,
		StationID:              req.StationID,
	}, nil
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
