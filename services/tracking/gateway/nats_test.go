package gateway

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caretrip/caretrip/internal/pkg/constants"
	"github.com/caretrip/caretrip/internal/pkg/models"
)

type fakePublisher struct {
	published map[string][][]byte
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{published: make(map[string][][]byte)}
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	f.published[subject] = append(f.published[subject], data)
	return nil
}

func testSession() *models.TrackingSession {
	return &models.TrackingSession{
		RideID:     "ride-1",
		DriverID:   "driver-1",
		RiderID:    "rider-1",
		IsActive:   true,
		StartTime:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		LastUpdate: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		Geofences: []*models.Geofence{
			{ID: "gf-1", Type: models.GeofencePickup, Latitude: 40.0, Longitude: -75.0, Radius: 100},
		},
	}
}

func TestPublishTrackingStarted(t *testing.T) {
	pub := newFakePublisher()
	gw := NewTrackingGW(pub)

	err := gw.PublishTrackingStarted(context.Background(), testSession())
	require.NoError(t, err)

	msgs := pub.published[constants.SubjectTrackingStarted]
	require.Len(t, msgs, 1)

	var event TrackingEvent
	require.NoError(t, json.Unmarshal(msgs[0], &event))
	assert.Equal(t, "ride-1", event.RideID)
	assert.Equal(t, "driver-1", event.DriverID)
	assert.Equal(t, "rider-1", event.RiderID)

	// The full session snapshot rides along with the event.
	require.NotNil(t, event.Session)
	assert.True(t, event.Session.IsActive)
	require.Len(t, event.Session.Geofences, 1)
	assert.Equal(t, models.GeofencePickup, event.Session.Geofences[0].Type)
}

func TestPublishLocationUpdated(t *testing.T) {
	pub := newFakePublisher()
	gw := NewTrackingGW(pub)

	location := &models.LocationUpdate{
		RideID:    "ride-1",
		DriverID:  "driver-1",
		Latitude:  40.0,
		Longitude: -75.0,
		Timestamp: time.Date(2026, 3, 1, 12, 15, 0, 0, time.UTC),
	}

	err := gw.PublishLocationUpdated(context.Background(), location, testSession())
	require.NoError(t, err)

	msgs := pub.published[constants.SubjectTrackingLocation]
	require.Len(t, msgs, 1)

	var event LocationEvent
	require.NoError(t, json.Unmarshal(msgs[0], &event))
	assert.Equal(t, "ride-1", event.RideID)
	require.NotNil(t, event.Location)
	assert.Equal(t, 40.0, event.Location.Latitude)
	assert.Equal(t, location.Timestamp, event.Timestamp)
	require.NotNil(t, event.Session)
	assert.Equal(t, "rider-1", event.Session.RiderID)
}

func TestPublishTrackingStopped(t *testing.T) {
	pub := newFakePublisher()
	gw := NewTrackingGW(pub)

	err := gw.PublishTrackingStopped(context.Background(), testSession())
	require.NoError(t, err)

	msgs := pub.published[constants.SubjectTrackingStopped]
	require.Len(t, msgs, 1)

	var event TrackingEvent
	require.NoError(t, json.Unmarshal(msgs[0], &event))
	require.NotNil(t, event.Session)
	assert.Equal(t, "driver-1", event.Session.DriverID)
}

func TestNotifyTrackingEvent(t *testing.T) {
	pub := newFakePublisher()
	gw := NewTrackingGW(pub)

	err := gw.NotifyTrackingEvent(context.Background(), "rider-1", "Your driver is on the way")
	require.NoError(t, err)

	msgs := pub.published[constants.SubjectNotifyTracking]
	require.Len(t, msgs, 1)

	var event NotificationEvent
	require.NoError(t, json.Unmarshal(msgs[0], &event))
	assert.Equal(t, "rider-1", event.UserID)
	assert.Equal(t, "Your driver is on the way", event.Message)
}

func TestNotifyAlert(t *testing.T) {
	pub := newFakePublisher()
	gw := NewTrackingGW(pub)

	alert := models.Alert{
		ID:       "alert-1",
		Type:     models.AlertSpeedLimit,
		Severity: models.SeverityHigh,
		Message:  "Driver is traveling at 90 mph, above the 80 mph limit",
	}

	err := gw.NotifyAlert(context.Background(), "rider-1", "ride-1", alert)
	require.NoError(t, err)

	msgs := pub.published[constants.SubjectNotifyAlert]
	require.Len(t, msgs, 1)

	var event AlertEvent
	require.NoError(t, json.Unmarshal(msgs[0], &event))
	assert.Equal(t, "rider-1", event.UserID)
	assert.Equal(t, "ride-1", event.RideID)
	assert.Equal(t, models.AlertSpeedLimit, event.Alert.Type)
}

func TestSendSMS(t *testing.T) {
	pub := newFakePublisher()
	gw := NewTrackingGW(pub)

	err := gw.SendSMS(context.Background(), "rider-1", "Driver's device battery is at 5%")
	require.NoError(t, err)

	msgs := pub.published[constants.SubjectNotifySMS]
	require.Len(t, msgs, 1)

	var event NotificationEvent
	require.NoError(t, json.Unmarshal(msgs[0], &event))
	assert.Equal(t, "rider-1", event.UserID)
}
