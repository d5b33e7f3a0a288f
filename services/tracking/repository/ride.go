package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/caretrip/caretrip/internal/pkg/models"
	"github.com/caretrip/caretrip/services/tracking"
)

type rideRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewRideRepository creates a ride repository backed by Postgres.
func NewRideRepository(cfg *models.Config, db *sqlx.DB) tracking.RideRepo {
	return &rideRepo{
		cfg: cfg,
		db:  db,
	}
}

// GetRide retrieves a ride by ID, returning nil, nil when it does not exist.
func (r *rideRepo) GetRide(ctx context.Context, rideID string) (*models.Ride, error) {
	query := `
		SELECT
			ride_id, rider_id, driver_id, status,
			pickup_latitude, pickup_longitude,
			dropoff_latitude, dropoff_longitude,
			created_at, updated_at
		FROM rides
		WHERE ride_id = $1
	`

	row := r.db.QueryRowContext(ctx, query, rideID)

	ride := &models.Ride{}
	var driverID sql.NullString
	var pickupLat, pickupLng, dropoffLat, dropoffLng sql.NullFloat64

	err := row.Scan(
		&ride.RideID,
		&ride.RiderID,
		&driverID,
		&ride.Status,
		&pickupLat,
		&pickupLng,
		&dropoffLat,
		&dropoffLng,
		&ride.CreatedAt,
		&ride.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	if driverID.Valid {
		ride.DriverID = driverID.String
	}
	if pickupLat.Valid && pickupLng.Valid {
		ride.PickupLatitude = &pickupLat.Float64
		ride.PickupLongitude = &pickupLng.Float64
	}
	if dropoffLat.Valid && dropoffLng.Valid {
		ride.DropoffLatitude = &dropoffLat.Float64
		ride.DropoffLongitude = &dropoffLng.Float64
	}

	return ride, nil
}

// UpdateRideStatus transitions a ride to the given status.
func (r *rideRepo) UpdateRideStatus(ctx context.Context, rideID string, status models.RideStatus) error {
	query := `
		UPDATE rides
		SET status = $1, updated_at = $2
		WHERE ride_id = $3
	`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), rideID)
	if err != nil {
		return fmt.Errorf("failed to update ride status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", tracking.ErrRideNotFound, rideID)
	}

	return nil
}
