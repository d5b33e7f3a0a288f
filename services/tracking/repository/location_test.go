package repository

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caretrip/caretrip/internal/pkg/constants"
	"github.com/caretrip/caretrip/internal/pkg/database"
	"github.com/caretrip/caretrip/internal/pkg/models"
)

func setupRepo(t *testing.T) (*miniredis.Miniredis, sqlmock.Sqlmock, *locationRepo) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "sqlmock")

	repo := &locationRepo{
		db:          db,
		redisClient: database.NewRedisClientFromClient(client),
	}
	return mr, mock, repo
}

func TestAppendLocation(t *testing.T) {
	mr, mock, repo := setupRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ride_locations")).
		WithArgs("ride-1", "driver-1", 40.0, -75.0, 5.0,
			nil, nil, nil, true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	update := &models.LocationUpdate{
		RideID:                  "ride-1",
		DriverID:                "driver-1",
		Latitude:                40.0,
		Longitude:               -75.0,
		Accuracy:                5.0,
		Timestamp:               time.Now(),
		LocationServicesEnabled: true,
	}

	err := repo.AppendLocation(context.Background(), update)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	key := fmt.Sprintf(constants.KeyRideLocation, "ride-1")
	assert.Equal(t, "40", mr.HGet(key, constants.FieldLatitude))
	assert.Equal(t, "-75", mr.HGet(key, constants.FieldLongitude))
	assert.NotEmpty(t, mr.HGet(key, constants.FieldGeohash))

	ttl := mr.TTL(key)
	assert.Equal(t, LocationTTL, ttl)
}

func TestGetLatestLocation(t *testing.T) {
	mr, _, repo := setupRepo(t)

	now := time.Now().Truncate(time.Second)
	key := fmt.Sprintf(constants.KeyRideLocation, "ride-1")
	mr.HSet(key,
		constants.FieldLatitude, "40.5",
		constants.FieldLongitude, "-75.5",
		constants.FieldAccuracy, "8",
		constants.FieldTimestamp, strconv.FormatInt(now.Unix(), 10),
	)

	location, err := repo.GetLatestLocation(context.Background(), "ride-1")
	require.NoError(t, err)
	require.NotNil(t, location)
	assert.Equal(t, 40.5, location.Latitude)
	assert.Equal(t, -75.5, location.Longitude)
	assert.Equal(t, 8.0, location.Accuracy)
	assert.Equal(t, now.Unix(), location.Timestamp.Unix())
}

func TestGetLatestLocation_NothingCached(t *testing.T) {
	_, _, repo := setupRepo(t)

	location, err := repo.GetLatestLocation(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, location)
}

func TestRemoveLiveDriver(t *testing.T) {
	mr, mock, repo := setupRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ride_locations")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	update := &models.LocationUpdate{
		RideID:                  "ride-1",
		DriverID:                "driver-1",
		Latitude:                40.0,
		Longitude:               -75.0,
		Accuracy:                5.0,
		Timestamp:               time.Now(),
		LocationServicesEnabled: true,
	}
	require.NoError(t, repo.AppendLocation(context.Background(), update))

	members, err := mr.ZMembers(constants.KeyDriverGeo)
	require.NoError(t, err)
	assert.Contains(t, members, "driver-1")

	require.NoError(t, repo.RemoveLiveDriver(context.Background(), "driver-1"))

	members, _ = mr.ZMembers(constants.KeyDriverGeo)
	assert.NotContains(t, members, "driver-1")
}
