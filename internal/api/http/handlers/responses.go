package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/groundops-service/internal/api/dto"
	"github.com/spec-kit/groundops-service/internal/auth"
	"github.com/spec-kit/groundops-service/internal/domain"
)

func staffResponse(staff *domain.StaffMember) dto.StaffResponse {
	shifts := make([]string, 0, len(staff.AvailableShifts))
	for _, s := range staff.AvailableShifts {
		shifts = append(shifts, string(s))
	}
	return dto.StaffResponse{
		ID:              staff.ID,
		Name:            staff.Name,
		Email:           staff.Email,
		Role:            staff.Role,
		StationID:       staff.StationID,
		Active:          staff.Active,
		Available:       staff.Available,
		Certifications:  staff.Certifications,
		Skills:          staff.Skills,
		AvailableShifts: shifts,
		MaxWeeklyHours:  staff.WeeklyCap(),
		MaxDailyHours:   staff.DailyCap(),
	}
}

func stationResponse(station *domain.Station) dto.StationResponse {
	return dto.StationResponse{
		ID:                     station.ID,
		Name:                   station.Name,
		Code:                   station.Code,
		MinimumStaff:           station.MinimumStaff,
		MaximumStaff:           station.MaximumStaff,
		RequiredCertifications: station.RequiredCertifications,
		Active:                 station.Active,
	}
}

func operationResponse(op *domain.Operation) dto.OperationResponse {
	resp := dto.OperationResponse{
		ID:                     op.ID,
		FlightNumber:           op.FlightNumber,
		FlightType:             op.FlightType,
		Direction:              op.Direction,
		ScheduledTime:          op.ScheduledTime,
		EstimatedDurationHours: op.EstimatedDurationHours,
		PassengerCount:         op.PassengerCount,
		StationID:              op.StationID,
	}
	if op.Station != nil {
		station := stationResponse(op.Station)
		resp.Station = &station
	}
	return resp
}

func assignmentResponse(a *domain.Assignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:                    a.ID,
		StaffID:               a.StaffID,
		OperationID:           a.OperationID,
		StartTime:             a.StartTime,
		EndTime:               a.EndTime,
		Status:                a.Status,
		IsReplacement:         a.IsReplacement,
		ReplacementForStaffID: a.ReplacementForStaffID,
		Cost:                  a.Cost,
		Notes:                 a.Notes,
	}
}

func notificationResponse(n *domain.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:      n.ID,
		Title:   n.Title,
		Message: n.Message,
		Data:    n.Data,
		Read:    n.ReadAt != nil,
	}
}

func requirePrincipal(c *fiber.Ctx) (*domain.StaffMember, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return nil, fiber.NewError(http.StatusUnauthorized, "staff required")
	}
	return principal.Staff, nil
}

func parseTimeField(value, field string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fiber.NewError(http.StatusBadRequest, field+" must be RFC3339")
	}
	return t, nil
}
