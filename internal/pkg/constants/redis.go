package constants

// Redis key formats
const (
	KeyRideLocation = "ride:location:%s" // Format: ride:location:{ride_id}
	KeyDriverGeo    = "drivers:geo"      // Geo set of live driver positions
)

// Redis hash fields
const (
	FieldLatitude  = "lat"
	FieldLongitude = "lng"
	FieldAccuracy  = "acc"
	FieldGeohash   = "gh"
	FieldTimestamp = "ts"
)
