package models

import "time"

// LocationUpdate is a single point sample reported by the driver's device
// during an active ride. Immutable once accepted; the server stamps the
// timestamp on receipt.
type LocationUpdate struct {
	RideID                  string    `json:"ride_id" db:"ride_id"`
	DriverID                string    `json:"driver_id" db:"driver_id"`
	Latitude                float64   `json:"latitude" db:"latitude" validate:"gte=-90,lte=90"`
	Longitude               float64   `json:"longitude" db:"longitude" validate:"gte=-180,lte=180"`
	Accuracy                float64   `json:"accuracy" db:"accuracy" validate:"gte=0"`
	Heading                 *float64  `json:"heading,omitempty" db:"heading" validate:"omitempty,gte=0,lt=360"`
	Speed                   *float64  `json:"speed,omitempty" db:"speed"` // mph
	Timestamp               time.Time `json:"timestamp" db:"recorded_at"`
	BatteryLevel            *float64  `json:"battery_level,omitempty" db:"battery_level" validate:"omitempty,gte=0,lte=100"`
	LocationServicesEnabled bool      `json:"location_services_enabled" db:"location_services_enabled"`
}
