package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/groundops-service/internal/api/http/handlers"
	"github.com/spec-kit/groundops-service/internal/auth"
	"github.com/spec-kit/groundops-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Staff          *handlers.StaffHandler
	Stations       *handlers.StationHandler
	Operations     *handlers.OperationHandler
	Schedule       *handlers.ScheduleHandler
	Assignments    *handlers.AssignmentHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/staff/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	protected.Post("/auth/password/change", cfg.Auth.ChangePassword)

	stations := protected.Group("/stations")
	stations.Get("", cfg.Stations.ListStations)
	stations.Get("/:id", cfg.Stations.GetStation)
	stations.Post("", auth.RequirePermission(auth.PermManageStations), cfg.Stations.CreateStation)
	stations.Put("/:id", auth.RequirePermission(auth.PermManageStations), cfg.Stations.UpdateStation)

	staff := protected.Group("/staff/members")
	staff.Get("", cfg.Staff.ListStaff)
	staff.Get("/:id", cfg.Staff.GetStaff)
	staff.Get("/:id/notifications", cfg.Staff.ListNotifications)
	staff.Patch("/:id/notifications/:notificationID/read", cfg.Staff.MarkNotificationRead)
	staff.Patch("/:id/availability", cfg.Staff.SetAvailability)
	staff.Post("", auth.RequirePermission(auth.PermManageStaff), cfg.Staff.CreateStaff)
	staff.Put("/:id", auth.RequirePermission(auth.PermManageStaff), cfg.Staff.UpdateStaff)

	operations := protected.Group("/operations")
	operations.Get("", cfg.Operations.ListOperations)
	operations.Get("/:id", cfg.Operations.GetOperation)
	operations.Get("/:id/staffing", cfg.Operations.GetStaffing)
	operations.Get("/:id/available-staff", cfg.Operations.GetAvailableStaff)
	operations.Post("", auth.RequirePermission(auth.PermManageOperations), cfg.Operations.CreateOperation)
	operations.Put("/:id", auth.RequirePermission(auth.PermManageOperations), cfg.Operations.UpdateOperation)

	schedule := protected.Group("/schedule", auth.RequireStaffRole(
		domain.StaffRoleSupervisor, domain.StaffRoleManager, domain.StaffRoleAdmin))
	schedule.Post("/validate", cfg.Schedule.Validate)
	schedule.Post("/availability", cfg.Schedule.CheckAvailability)

	assignments := protected.Group("/assignments")
	assignments.Post("", auth.RequirePermission(auth.PermCreateAssignments), cfg.Assignments.CreateAssignment)
	assignments.Patch("/:id/status", cfg.Assignments.UpdateStatus)
	assignments.Post("/:id/replacement", auth.RequirePermission(auth.PermReplaceStaff), cfg.Assignments.CreateReplacement)
}
