package models

import "time"

// RideStatus represents the status of a ride
type RideStatus string

const (
	RideStatusRequested RideStatus = "requested"
	RideStatusAccepted  RideStatus = "accepted"
	RideStatusEnRoute   RideStatus = "en_route"
	RideStatusPickedUp  RideStatus = "picked_up"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// Ride is the tracking service's view of a ride record. The ride store is
// owned elsewhere in the platform; this service only reads coordinates and
// writes status transitions. Pickup/dropoff coordinates may be absent on
// rides booked without a resolved address.
type Ride struct {
	RideID           string     `json:"ride_id" db:"ride_id"`
	RiderID          string     `json:"rider_id" db:"rider_id"`
	DriverID         string     `json:"driver_id" db:"driver_id"` // empty until a driver is assigned
	Status           RideStatus `json:"status" db:"status"`
	PickupLatitude   *float64   `json:"pickup_latitude,omitempty" db:"pickup_latitude"`
	PickupLongitude  *float64   `json:"pickup_longitude,omitempty" db:"pickup_longitude"`
	DropoffLatitude  *float64   `json:"dropoff_latitude,omitempty" db:"dropoff_latitude"`
	DropoffLongitude *float64   `json:"dropoff_longitude,omitempty" db:"dropoff_longitude"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// HasPickup reports whether the ride carries pickup coordinates.
func (r *Ride) HasPickup() bool {
	return r.PickupLatitude != nil && r.PickupLongitude != nil
}

// HasDropoff reports whether the ride carries dropoff coordinates.
func (r *Ride) HasDropoff() bool {
	return r.DropoffLatitude != nil && r.DropoffLongitude != nil
}
