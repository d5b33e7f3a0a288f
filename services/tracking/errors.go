package tracking

import "errors"

// Failure taxonomy of the public tracking operations. Callers match with
// errors.Is; operations wrap these with ride context.
var (
	// ErrRideNotFound - startTracking against a ride that does not exist
	ErrRideNotFound = errors.New("ride not found")

	// ErrNoDriverAssigned - startTracking before driver assignment
	ErrNoDriverAssigned = errors.New("ride has no assigned driver")

	// ErrTrackingActive - startTracking while a session is already live;
	// at most one active session per ride
	ErrTrackingActive = errors.New("tracking already active for ride")

	// ErrNoActiveSession - updateLocation against an unregistered or
	// already-stopped ride
	ErrNoActiveSession = errors.New("no active tracking session for ride")

	// ErrSessionNotFound - stopTracking with nothing to stop; a second
	// stop surfaces this instead of succeeding silently
	ErrSessionNotFound = errors.New("tracking session not found")
)
