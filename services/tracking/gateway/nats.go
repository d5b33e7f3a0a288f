package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/caretrip/caretrip/internal/pkg/constants"
	"github.com/caretrip/caretrip/internal/pkg/models"
	"github.com/caretrip/caretrip/services/tracking"
)

// Publisher is the transport the gateway publishes through. The NATS
// client satisfies it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// TrackingEvent is the envelope for lifecycle events. Session is the full
// snapshot at the time of emission.
type TrackingEvent struct {
	RideID    string                  `json:"ride_id"`
	DriverID  string                  `json:"driver_id"`
	RiderID   string                  `json:"rider_id"`
	Session   *models.TrackingSession `json:"session"`
	Timestamp time.Time               `json:"timestamp"`
}

// LocationEvent carries one accepted point for live consumers, with the
// session snapshot it was accepted into.
type LocationEvent struct {
	RideID    string                  `json:"ride_id"`
	DriverID  string                  `json:"driver_id"`
	Location  *models.LocationUpdate  `json:"location"`
	Session   *models.TrackingSession `json:"session"`
	Timestamp time.Time               `json:"timestamp"`
}

// NotificationEvent addresses an in-app message to one user.
type NotificationEvent struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// AlertEvent carries one raised alert to the notification service.
type AlertEvent struct {
	UserID string       `json:"user_id"`
	RideID string       `json:"ride_id"`
	Alert  models.Alert `json:"alert"`
}

type trackingGW struct {
	pub Publisher
}

// NewTrackingGW creates the NATS-backed tracking gateway.
func NewTrackingGW(pub Publisher) tracking.TrackingGW {
	return &trackingGW{
		pub: pub,
	}
}

func (g *trackingGW) publishJSON(subject string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", subject, err)
	}
	return g.pub.Publish(subject, data)
}

// PublishTrackingStarted announces a new tracking session.
func (g *trackingGW) PublishTrackingStarted(ctx context.Context, session *models.TrackingSession) error {
	return g.publishJSON(constants.SubjectTrackingStarted, TrackingEvent{
		RideID:    session.RideID,
		DriverID:  session.DriverID,
		RiderID:   session.RiderID,
		Session:   session,
		Timestamp: session.StartTime,
	})
}

// PublishLocationUpdated emits one accepted point.
func (g *trackingGW) PublishLocationUpdated(ctx context.Context, location *models.LocationUpdate, session *models.TrackingSession) error {
	return g.publishJSON(constants.SubjectTrackingLocation, LocationEvent{
		RideID:    session.RideID,
		DriverID:  session.DriverID,
		Location:  location,
		Session:   session,
		Timestamp: location.Timestamp,
	})
}

// PublishTrackingStopped announces a torn-down session.
func (g *trackingGW) PublishTrackingStopped(ctx context.Context, session *models.TrackingSession) error {
	return g.publishJSON(constants.SubjectTrackingStopped, TrackingEvent{
		RideID:    session.RideID,
		DriverID:  session.DriverID,
		RiderID:   session.RiderID,
		Session:   session,
		Timestamp: session.LastUpdate,
	})
}

// NotifyTrackingEvent sends an in-app tracking message to a user.
func (g *trackingGW) NotifyTrackingEvent(ctx context.Context, userID, message string) error {
	return g.publishJSON(constants.SubjectNotifyTracking, NotificationEvent{
		UserID:  userID,
		Message: message,
	})
}

// NotifyAlert routes a raised alert to the notification service.
func (g *trackingGW) NotifyAlert(ctx context.Context, userID string, rideID string, alert models.Alert) error {
	return g.publishJSON(constants.SubjectNotifyAlert, AlertEvent{
		UserID: userID,
		RideID: rideID,
		Alert:  alert,
	})
}

// SendSMS escalates a message to the SMS channel.
func (g *trackingGW) SendSMS(ctx context.Context, userID, message string) error {
	return g.publishJSON(constants.SubjectNotifySMS, NotificationEvent{
		UserID:  userID,
		Message: message,
	})
}
