package dto

import (
	"time"

	"github.com/spec-kit/groundops-service/internal/domain"
)

// OperationRequest payload.
type OperationRequest struct {
	FlightNumber           string   `json:"flight_number"`
	FlightType             string   `json:"flight_type"`
	Direction              string   `json:"direction"`
	ScheduledTime          string   `json:"scheduled_time"`
	EstimatedDurationHours *float64 `json:"estimated_duration_hours"`
	PassengerCount         int      `json:"passenger_count"`
	StationID              string   `json:"station_id"`
}

// OperationResponse payload.
type OperationResponse struct {
	ID                     string                 `json:"id"`
	FlightNumber           string                 `json:"flight_number"`
	FlightType             domain.FlightType      `json:"flight_type"`
	Direction              domain.FlightDirection `json:"direction"`
	ScheduledTime          time.Time              `json:"scheduled_time"`
	EstimatedDurationHours *float64               `json:"estimated_duration_hours,omitempty"`
	PassengerCount         int                    `json:"passenger_count"`
	StationID              string                 `json:"station_id"`
	Station                *StationResponse       `json:"station,omitempty"`
}
