package usecase

import (
	"time"

	"github.com/caretrip/caretrip/internal/pkg/models"
	"github.com/caretrip/caretrip/internal/utils"
)

// evaluateGeofences checks the update against every untriggered fence and
// flips the ones it entered. Idempotency rests entirely on the one-way
// triggered flag; no distance hysteresis is applied at the radius boundary.
// Caller holds the session lock.
func evaluateGeofences(sess *models.TrackingSession, update *models.LocationUpdate, now time.Time) []*models.Geofence {
	var entered []*models.Geofence

	point := utils.GeoPoint{Latitude: update.Latitude, Longitude: update.Longitude}
	for _, gf := range sess.Geofences {
		if gf.Triggered {
			continue
		}

		center := utils.GeoPoint{Latitude: gf.Latitude, Longitude: gf.Longitude}
		if utils.DistanceMeters(point, center) <= gf.Radius {
			gf.Triggered = true
			at := now
			gf.TriggeredAt = &at
			entered = append(entered, gf)
		}
	}

	return entered
}

// geofenceEntryMessage is the user-facing text for an entry event.
func geofenceEntryMessage(t models.GeofenceType) string {
	switch t {
	case models.GeofencePickup:
		return "Driver has arrived at pickup location"
	case models.GeofenceDropoff:
		return "Driver has arrived at dropoff location"
	case models.GeofenceHospital:
		return "Driver has arrived at the hospital"
	default:
		return "Driver has reached a route waypoint"
	}
}
