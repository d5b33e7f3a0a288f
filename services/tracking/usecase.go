package tracking

import (
	"context"

	"github.com/caretrip/caretrip/internal/pkg/models"
)

// TrackingUC defines the business logic surface of the live tracking engine.
type TrackingUC interface {
	// Lifecycle operations
	StartTracking(ctx context.Context, rideID string) (*models.TrackingSession, error)
	UpdateLocation(ctx context.Context, rideID string, update *models.LocationUpdate) error
	StopTracking(ctx context.Context, rideID string) error

	// Read-only queries; unknown ride ids yield empty results, not errors
	GetCurrentLocation(ctx context.Context, rideID string) (*models.LocationUpdate, error)
	GetLocationHistory(ctx context.Context, rideID string, limit int) ([]models.LocationUpdate, error)
	GetTrackingSession(ctx context.Context, rideID string) (*models.TrackingSession, error)
	GetActiveSessions(ctx context.Context) ([]*models.TrackingSession, error)
}
