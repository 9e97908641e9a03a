package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/groundops-service/internal/api/dto"
	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/repository"
	"github.com/spec-kit/groundops-service/internal/service"
)

// StaffHandler exposes staff roster endpoints.
type StaffHandler struct {
	roster        *service.RosterService
	notifications *service.NotificationService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(roster *service.RosterService, notifications *service.NotificationService) *StaffHandler {
	return &StaffHandler{roster: roster, notifications: notifications}
}

// CreateStaff handles POST /staff/members.
func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.StaffCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}
	shifts, err := parseShiftList(req.AvailableShifts)
	if err != nil {
		return err
	}

	staff, err := h.roster.CreateStaffMember(c.Context(), actor, service.StaffCreateInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		Role:            domain.StaffRole(req.Role),
		StationID:       req.StationID,
		Certifications:  req.Certifications,
		Skills:          req.Skills,
		AvailableShifts: shifts,
		MaxWeeklyHours:  req.MaxWeeklyHours,
		MaxDailyHours:   req.MaxDailyHours,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": staffResponse(staff)})
}

// UpdateStaff handles PUT /staff/members/:id.
func (h *StaffHandler) UpdateStaff(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.StaffUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	input := service.StaffUpdateInput{
		Name:           req.Name,
		Email:          req.Email,
		StationID:      req.StationID,
		ClearStation:   req.ClearStation,
		Active:         req.Active,
		Available:      req.Available,
		Certifications: req.Certifications,
		Skills:         req.Skills,
		MaxWeeklyHours: req.MaxWeeklyHours,
		MaxDailyHours:  req.MaxDailyHours,
	}
	if req.Role != nil {
		role := domain.StaffRole(*req.Role)
		input.Role = &role
	}
	if req.AvailableShifts != nil {
		shifts, err := parseShiftList(req.AvailableShifts)
		if err != nil {
			return err
		}
		input.AvailableShifts = shifts
	}

	staff, err := h.roster.UpdateStaffMember(c.Context(), actor, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffResponse(staff)})
}

// GetStaff handles GET /staff/members/:id.
func (h *StaffHandler) GetStaff(c *fiber.Ctx) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}
	staff, err := h.roster.GetStaffMember(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffResponse(staff)})
}

// ListStaff handles GET /staff/members.
func (h *StaffHandler) ListStaff(c *fiber.Ctx) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}
	list, err := h.roster.ListStaffMembers(c.Context(), parseStaffListFilter(c))
	if err != nil {
		return err
	}
	resp := make([]dto.StaffResponse, 0, len(list))
	for i := range list {
		resp = append(resp, staffResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// SetAvailability handles PATCH /staff/members/:id/availability.
func (h *StaffHandler) SetAvailability(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.AvailabilityToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.roster.SetAvailability(c.Context(), actor, c.Params("id"), req.Available); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"available": req.Available}})
}

// ListNotifications handles GET /staff/members/:id/notifications.
func (h *StaffHandler) ListNotifications(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	staffID := c.Params("id")
	if actor.ID != staffID && actor.Role == domain.StaffRoleWorker {
		return fiber.NewError(http.StatusForbidden, "cannot read another staff member's notifications")
	}
	unreadOnly := parseBoolQuery(c, "unread_only", false)
	limit := parseIntQuery(c, "limit", 50)

	list, err := h.notifications.ListForStaff(c.Context(), staffID, unreadOnly, limit)
	if err != nil {
		return err
	}
	resp := make([]dto.NotificationResponse, 0, len(list))
	for i := range list {
		resp = append(resp, notificationResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// MarkNotificationRead handles PATCH /staff/members/:id/notifications/:notificationID/read.
func (h *StaffHandler) MarkNotificationRead(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	staffID := c.Params("id")
	if actor.ID != staffID && actor.Role == domain.StaffRoleWorker {
		return fiber.NewError(http.StatusForbidden, "cannot read another staff member's notifications")
	}
	if err := h.notifications.MarkRead(c.Context(), c.Params("notificationID")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseShiftList(labels []string) ([]domain.ShiftWindow, error) {
	shifts := make([]domain.ShiftWindow, 0, len(labels))
	for _, l := range labels {
		w, ok := domain.ParseShiftWindow(l)
		if !ok {
			return nil, fiber.NewError(http.StatusBadRequest, "unknown shift window: "+l)
		}
		shifts = append(shifts, w)
	}
	return shifts, nil
}

func parseStaffListFilter(c *fiber.Ctx) repository.StaffFilter {
	var filter repository.StaffFilter
	if roleStr := c.Query("role"); roleStr != "" {
		role := domain.StaffRole(roleStr)
		filter.Role = &role
	}
	if stationID := c.Query("station_id"); stationID != "" {
		filter.StationID = &stationID
	}
	if active := c.Query("active"); active != "" {
		if val, err := strconv.ParseBool(active); err == nil {
			filter.Active = &val
		}
	}
	if available := c.Query("available"); available != "" {
		if val, err := strconv.ParseBool(available); err == nil {
			filter.Available = &val
		}
	}
	page := parseIntQuery(c, "page", 1)
	pageSize := parseIntQuery(c, "page_size", 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseBoolQuery(c *fiber.Ctx, key string, defaultVal bool) bool {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}
