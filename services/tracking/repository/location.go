package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/caretrip/caretrip/internal/pkg/constants"
	"github.com/caretrip/caretrip/internal/pkg/database"
	"github.com/caretrip/caretrip/internal/pkg/models"
	"github.com/caretrip/caretrip/internal/utils"
	"github.com/caretrip/caretrip/services/tracking"
)

const (
	// LocationTTL is how long the latest-location cache entry survives
	// without a refresh. Covers post-ride support lookups.
	LocationTTL = 24 * time.Hour

	// geohashPrecision gives ~5 m cells, finer than GPS accuracy.
	geohashPrecision = 9
)

type locationRepo struct {
	db          *sqlx.DB
	redisClient *database.RedisClient
}

// NewLocationRepository creates the durable location store over Postgres
// (append-only trail) and Redis (latest-location cache plus live geo set).
func NewLocationRepository(db *sqlx.DB, redisClient *database.RedisClient) tracking.LocationRepo {
	return &locationRepo{
		db:          db,
		redisClient: redisClient,
	}
}

// AppendLocation writes one point to the append-only trail and refreshes
// the caches keyed by ride and driver.
func (r *locationRepo) AppendLocation(ctx context.Context, update *models.LocationUpdate) error {
	query := `
		INSERT INTO ride_locations (
			ride_id, driver_id, latitude, longitude, accuracy,
			heading, speed, battery_level, location_services_enabled, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		update.RideID,
		update.DriverID,
		update.Latitude,
		update.Longitude,
		update.Accuracy,
		update.Heading,
		update.Speed,
		update.BatteryLevel,
		update.LocationServicesEnabled,
		update.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert location: %w", err)
	}

	return r.cacheLatest(ctx, update)
}

// cacheLatest refreshes the ride's latest-location hash and the driver's
// position in the live geo set.
func (r *locationRepo) cacheLatest(ctx context.Context, update *models.LocationUpdate) error {
	locationKey := fmt.Sprintf(constants.KeyRideLocation, update.RideID)
	locationData := map[string]interface{}{
		constants.FieldLatitude:  strconv.FormatFloat(update.Latitude, 'f', -1, 64),
		constants.FieldLongitude: strconv.FormatFloat(update.Longitude, 'f', -1, 64),
		constants.FieldAccuracy:  strconv.FormatFloat(update.Accuracy, 'f', -1, 64),
		constants.FieldGeohash:   utils.EncodePoint(update.Latitude, update.Longitude, geohashPrecision),
		constants.FieldTimestamp: strconv.FormatInt(update.Timestamp.Unix(), 10),
	}

	if err := r.redisClient.HMSet(ctx, locationKey, locationData); err != nil {
		return fmt.Errorf("failed to cache latest location: %w", err)
	}
	if err := r.redisClient.Expire(ctx, locationKey, LocationTTL); err != nil {
		return fmt.Errorf("failed to set location TTL: %w", err)
	}

	if err := r.redisClient.GeoAdd(ctx, constants.KeyDriverGeo, update.Longitude, update.Latitude, update.DriverID); err != nil {
		return fmt.Errorf("failed to update driver geo set: %w", err)
	}

	return nil
}

// GetLatestLocation reads the latest cached point for a ride, returning
// nil, nil when nothing is cached.
func (r *locationRepo) GetLatestLocation(ctx context.Context, rideID string) (*models.LocationUpdate, error) {
	locationKey := fmt.Sprintf(constants.KeyRideLocation, rideID)

	fields := []string{
		constants.FieldLatitude,
		constants.FieldLongitude,
		constants.FieldAccuracy,
		constants.FieldTimestamp,
	}

	values, err := r.redisClient.HMGet(ctx, locationKey, fields...)
	if err != nil {
		return nil, fmt.Errorf("failed to get cached location: %w", err)
	}

	hasValue := false
	for _, v := range values {
		if v != "" {
			hasValue = true
			break
		}
	}
	if !hasValue || len(values) != 4 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(values[0], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cached latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(values[1], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cached longitude: %w", err)
	}
	acc, err := strconv.ParseFloat(values[2], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cached accuracy: %w", err)
	}
	ts, err := strconv.ParseInt(values[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cached timestamp: %w", err)
	}

	return &models.LocationUpdate{
		RideID:                  rideID,
		Latitude:                lat,
		Longitude:               lng,
		Accuracy:                acc,
		Timestamp:               time.Unix(ts, 0),
		LocationServicesEnabled: true,
	}, nil
}

// RemoveLiveDriver drops the driver from the live geo set on teardown.
func (r *locationRepo) RemoveLiveDriver(ctx context.Context, driverID string) error {
	if err := r.redisClient.GeoRemove(ctx, constants.KeyDriverGeo, driverID); err != nil {
		return fmt.Errorf("failed to remove driver from geo set: %w", err)
	}
	return nil
}
