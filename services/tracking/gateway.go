package tracking

import (
	"context"

	"github.com/caretrip/caretrip/internal/pkg/models"
)

// TrackingGW publishes tracking events for external subscribers and
// dispatches notifications to riders and drivers. All calls are best-effort
// side channels; failures are logged by the caller and never surfaced.
type TrackingGW interface {
	// Emitted events, each carrying the session snapshot at emission time
	PublishTrackingStarted(ctx context.Context, session *models.TrackingSession) error
	PublishLocationUpdated(ctx context.Context, location *models.LocationUpdate, session *models.TrackingSession) error
	PublishTrackingStopped(ctx context.Context, session *models.TrackingSession) error

	// Notification dispatch, addressed by user id
	NotifyTrackingEvent(ctx context.Context, userID, message string) error
	NotifyAlert(ctx context.Context, userID string, rideID string, alert models.Alert) error
	SendSMS(ctx context.Context, userID, message string) error
}
