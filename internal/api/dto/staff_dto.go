package dto

import "github.com/spec-kit/groundops-service/internal/domain"

// StaffCreateRequest payload.
type StaffCreateRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	Role            string   `json:"role"`
	StationID       *string  `json:"station_id"`
	Certifications  []string `json:"certifications"`
	Skills          []string `json:"skills"`
	AvailableShifts []string `json:"available_shifts"`
	MaxWeeklyHours  float64  `json:"max_weekly_hours"`
	MaxDailyHours   float64  `json:"max_daily_hours"`
}

// StaffUpdateRequest payload; nil fields are left unchanged.
type StaffUpdateRequest struct {
	Name            *string  `json:"name"`
	Email           *string  `json:"email"`
	Role            *string  `json:"role"`
	StationID       *string  `json:"station_id"`
	ClearStation    bool     `json:"clear_station"`
	Active          *bool    `json:"active"`
	Available       *bool    `json:"available"`
	Certifications  []string `json:"certifications"`
	Skills          []string `json:"skills"`
	AvailableShifts []string `json:"available_shifts"`
	MaxWeeklyHours  *float64 `json:"max_weekly_hours"`
	MaxDailyHours   *float64 `json:"max_daily_hours"`
}

// AvailabilityToggleRequest payload.
type AvailabilityToggleRequest struct {
	Available bool `json:"available"`
}

// StaffResponse payload.
type StaffResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Role            domain.StaffRole `json:"role"`
	StationID       *string          `json:"station_id,omitempty"`
	Active          bool             `json:"active"`
	Available       bool             `json:"available"`
	Certifications  []string         `json:"certifications"`
	Skills          []string         `json:"skills"`
	AvailableShifts []string         `json:"available_shifts"`
	MaxWeeklyHours  float64          `json:"max_weekly_hours"`
	MaxDailyHours   float64          `json:"max_daily_hours"`
}

// StationRequest payload.
type StationRequest struct {
	Name                   string   `json:"name"`
	Code                   string   `json:"code"`
	MinimumStaff           int      `json:"minimum_staff"`
	MaximumStaff           int      `json:"maximum_staff"`
	RequiredCertifications []string `json:"required_certifications"`
	Active                 *bool    `json:"active"`
}

// StationResponse payload.
type StationResponse struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Code                   string   `json:"code"`
	MinimumStaff           int      `json:"minimum_staff"`
	MaximumStaff           int      `json:"maximum_staff"`
	RequiredCertifications []string `json:"required_certifications"`
	Active                 bool     `json:"active"`
}

// NotificationResponse payload.
type NotificationResponse struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
	Read    bool           `json:"read"`
}
