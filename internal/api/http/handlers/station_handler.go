package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/groundops-service/internal/api/dto"
	"github.com/spec-kit/groundops-service/internal/domain"
	"github.com/spec-kit/groundops-service/internal/service"
)

// StationHandler exposes station endpoints.
type StationHandler struct {
	roster *service.RosterService
}

// NewStationHandler constructs handler.
func NewStationHandler(roster *service.RosterService) *StationHandler {
	return &StationHandler{roster: roster}
}

// CreateStation handles POST /stations.
func (h *StationHandler) CreateStation(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.StationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Code == "" {
		return fiber.NewError(http.StatusBadRequest, "name and code required")
	}

	station, err := h.roster.CreateStation(c.Context(), actor, &domain.Station{
		Name:                   req.Name,
		Code:                   req.Code,
		MinimumStaff:           req.MinimumStaff,
		MaximumStaff:           req.MaximumStaff,
		RequiredCertifications: req.RequiredCertifications,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": stationResponse(station)})
}

// UpdateStation handles PUT /stations/:id.
func (h *StationHandler) UpdateStation(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	station, err := h.roster.GetStation(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.StationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name != "" {
		station.Name = req.Name
	}
	if req.Code != "" {
		station.Code = req.Code
	}
	if req.MinimumStaff > 0 {
		station.MinimumStaff = req.MinimumStaff
	}
	if req.MaximumStaff > 0 {
		station.MaximumStaff = req.MaximumStaff
	}
	if req.RequiredCertifications != nil {
		station.RequiredCertifications = req.RequiredCertifications
	}
	if req.Active != nil {
		station.Active = *req.Active
	}

	updated, err := h.roster.UpdateStation(c.Context(), actor, station)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stationResponse(updated)})
}

// GetStation handles GET /stations/:id.
func (h *StationHandler) GetStation(c *fiber.Ctx) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}
	station, err := h.roster.GetStation(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stationResponse(station)})
}

// ListStations handles GET /stations.
func (h *StationHandler) ListStations(c *fiber.Ctx) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}
	includeInactive := parseBoolQuery(c, "include_inactive", false)
	stations, err := h.roster.ListStations(c.Context(), includeInactive)
	if err != nil {
		return err
	}
	resp := make([]dto.StationResponse, 0, len(stations))
	for i := range stations {
		resp = append(resp, stationResponse(&stations[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}
