package tracking

import (
	"context"

	"github.com/caretrip/caretrip/internal/pkg/models"
)

// RideRepo is the externally-owned ride store. The tracking engine reads
// ride coordinates and writes status transitions; everything else about
// rides lives outside this service.
type RideRepo interface {
	// GetRide returns nil, nil when the ride does not exist
	GetRide(ctx context.Context, rideID string) (*models.Ride, error)
	UpdateRideStatus(ctx context.Context, rideID string, status models.RideStatus) error
}

// LocationRepo is the durable location store. Writes are best-effort from
// the engine's point of view; in-memory session state is the source of truth.
type LocationRepo interface {
	// AppendLocation persists one accepted point (append-only) and
	// refreshes the latest-location cache
	AppendLocation(ctx context.Context, update *models.LocationUpdate) error
	// GetLatestLocation reads the latest cached point for a ride;
	// nil, nil when nothing is cached
	GetLatestLocation(ctx context.Context, rideID string) (*models.LocationUpdate, error)
	// RemoveLiveDriver drops the driver from the live geo set on teardown
	RemoveLiveDriver(ctx context.Context, driverID string) error
}
