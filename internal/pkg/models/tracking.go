package models

import "time"

// GeofenceType classifies the circular regions watched during a ride.
type GeofenceType string

const (
	GeofencePickup   GeofenceType = "pickup"
	GeofenceDropoff  GeofenceType = "dropoff"
	GeofenceHospital GeofenceType = "hospital"
	GeofenceWaypoint GeofenceType = "waypoint"
)

// AlertType identifies the safety condition that raised an alert.
type AlertType string

const (
	AlertSpeedLimit      AlertType = "speed_limit"
	AlertLowBattery      AlertType = "low_battery"
	AlertLocationTimeout AlertType = "location_timeout"
	AlertRouteDeviation  AlertType = "route_deviation"
	AlertGeofenceEntry   AlertType = "geofence_entry"
	AlertGeofenceExit    AlertType = "geofence_exit"
)

// AlertSeverity is the ordinal urgency tier used for escalation policy.
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "low"
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

// Geofence is a circular region around a coordinate. Triggered flips
// false to true at most once per session lifetime and is never reset.
type Geofence struct {
	ID          string       `json:"id"`
	Type        GeofenceType `json:"type"`
	Latitude    float64      `json:"latitude"`
	Longitude   float64      `json:"longitude"`
	Radius      float64      `json:"radius"` // meters
	Triggered   bool         `json:"triggered"`
	TriggeredAt *time.Time   `json:"triggered_at,omitempty"`
}

// Alert is one entry in a session's append-only alert log.
type Alert struct {
	ID         string        `json:"id"`
	Type       AlertType     `json:"type"`
	Severity   AlertSeverity `json:"severity"`
	Message    string        `json:"message"`
	Timestamp  time.Time     `json:"timestamp"`
	IsResolved bool          `json:"is_resolved"`
}

// TrackingSession is the live state of one ride's location stream, from
// start to stop.
type TrackingSession struct {
	RideID          string           `json:"ride_id"`
	DriverID        string           `json:"driver_id"`
	RiderID         string           `json:"rider_id"`
	IsActive        bool             `json:"is_active"`
	StartTime       time.Time        `json:"start_time"`
	LastUpdate      time.Time        `json:"last_update"`
	CurrentLocation *LocationUpdate  `json:"current_location,omitempty"`
	LocationHistory []LocationUpdate `json:"location_history"`
	Geofences       []*Geofence      `json:"geofences"`
	Alerts          []Alert          `json:"alerts"`
}

// Clone returns a deep copy of the session, safe to hand to event
// subscribers and query callers while the original keeps mutating.
func (s *TrackingSession) Clone() *TrackingSession {
	if s == nil {
		return nil
	}

	clone := *s

	if s.CurrentLocation != nil {
		loc := *s.CurrentLocation
		clone.CurrentLocation = &loc
	}

	clone.LocationHistory = make([]LocationUpdate, len(s.LocationHistory))
	copy(clone.LocationHistory, s.LocationHistory)

	clone.Geofences = make([]*Geofence, len(s.Geofences))
	for i, gf := range s.Geofences {
		g := *gf
		clone.Geofences[i] = &g
	}

	clone.Alerts = make([]Alert, len(s.Alerts))
	copy(clone.Alerts, s.Alerts)

	return &clone
}
