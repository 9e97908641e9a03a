package domain

import "time"

// FlightType enumerates supported flight categories.
type FlightType string

const (
	FlightTypeDomestic      FlightType = "DOMESTIC"
	FlightTypeInternational FlightType = "INTERNATIONAL"
	FlightTypeCargo         FlightType = "CARGO"
	FlightTypePrivate       FlightType = "PRIVATE"
)

// FlightDirection distinguishes departures from arrivals.
type FlightDirection string

const (
	DirectionDeparture FlightDirection = "DEPARTURE"
	DirectionArrival   FlightDirection = "ARRIVAL"
)

// Operation is a flight or ground operation needing staff coverage.
type Operation struct {
	ID                     string
	FlightNumber           string
	FlightType             FlightType
	Direction              FlightDirection
	ScheduledTime          time.Time
	EstimatedDurationHours *float64
	PassengerCount         int
	StationID              string
	Station                *Station
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// RequiredCertifications returns the station's certification requirements,
// or nil when the station was not resolved.
func (o *Operation) RequiredCertifications() []string {
	if o.Station == nil {
		return nil
	}
	return o.Station.RequiredCertifications
}

// Window derives the operation's staffing window from its scheduled time and
// estimated duration. ok is false when no duration estimate exists.
func (o *Operation) Window() (start, end time.Time, ok bool) {
	if o.EstimatedDurationHours == nil || *o.EstimatedDurationHours <= 0 {
		return time.Time{}, time.Time{}, false
	}
	dur := time.Duration(*o.EstimatedDurationHours * float64(time.Hour))
	return o.ScheduledTime, o.ScheduledTime.Add(dur), true
}
