package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters_SamePoint(t *testing.T) {
	p := GeoPoint{Latitude: 40.0, Longitude: -75.0}
	assert.Equal(t, 0.0, DistanceMeters(p, p))
}

func TestDistanceMeters_OneKilometerNorth(t *testing.T) {
	// 0.009 degrees of latitude is almost exactly one kilometer.
	p1 := GeoPoint{Latitude: 40.0, Longitude: -75.0}
	p2 := GeoPoint{Latitude: 40.009, Longitude: -75.0}

	assert.InDelta(t, 1000.0, DistanceMeters(p1, p2), 5.0)
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	p1 := GeoPoint{Latitude: -6.175392, Longitude: 106.827153}
	p2 := GeoPoint{Latitude: -6.121435, Longitude: 106.774124}

	assert.Equal(t, DistanceMeters(p1, p2), DistanceMeters(p2, p1))
}

func TestGeohashRoundTrip(t *testing.T) {
	lat, lng := 40.0, -75.0

	hash := EncodePoint(lat, lng, 9)
	assert.Len(t, hash, 9)

	gotLat, gotLng := DecodeGeohash(hash)
	assert.InDelta(t, lat, gotLat, 0.001)
	assert.InDelta(t, lng, gotLng, 0.001)
}
