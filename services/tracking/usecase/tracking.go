package usecase

import (
	"context"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/caretrip/caretrip/internal/pkg/logger"
	"github.com/caretrip/caretrip/internal/pkg/models"
	"github.com/caretrip/caretrip/services/tracking"
)

// TrackingUC implements the tracking.TrackingUC interface. It owns the
// session registry exclusively; collaborators are invoked but never handed
// mutable tracking state.
type TrackingUC struct {
	cfg      *models.Config
	rideRepo tracking.RideRepo
	locRepo  tracking.LocationRepo
	gw       tracking.TrackingGW
	clk      clock.Clock
	registry *sessionRegistry
	alerts   *alertEngine
	sup      *supervisor
}

var _ tracking.TrackingUC = (*TrackingUC)(nil)

// NewTrackingUC creates the tracking use case and starts its health sweep.
func NewTrackingUC(
	cfg *models.Config,
	rideRepo tracking.RideRepo,
	locRepo tracking.LocationRepo,
	gw tracking.TrackingGW,
	clk clock.Clock,
) *TrackingUC {
	registry := newSessionRegistry()
	uc := &TrackingUC{
		cfg:      cfg,
		rideRepo: rideRepo,
		locRepo:  locRepo,
		gw:       gw,
		clk:      clk,
		registry: registry,
		alerts:   &alertEngine{cfg: cfg.Tracking},
		sup:      newSupervisor(cfg.Tracking, clk, registry),
	}

	go uc.sup.run()

	return uc
}

// Close stops the health sweep. Live sessions stay registered; the process
// is going away with them.
func (uc *TrackingUC) Close() error {
	uc.sup.shutdown()
	return nil
}

// StartTracking registers a tracking session for a ride with an assigned
// driver, arms its inactivity timer, and tells the rider tracking began.
func (uc *TrackingUC) StartTracking(ctx context.Context, rideID string) (*models.TrackingSession, error) {
	ride, err := uc.rideRepo.GetRide(ctx, rideID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ride %s: %w", rideID, err)
	}
	if ride == nil {
		return nil, fmt.Errorf("%w: %s", tracking.ErrRideNotFound, rideID)
	}
	if ride.DriverID == "" {
		return nil, fmt.Errorf("%w: %s", tracking.ErrNoDriverAssigned, rideID)
	}

	now := uc.clk.Now()
	s := &session{
		data: &models.TrackingSession{
			RideID:          rideID,
			DriverID:        ride.DriverID,
			RiderID:         ride.RiderID,
			IsActive:        true,
			StartTime:       now,
			LastUpdate:      now,
			LocationHistory: make([]models.LocationUpdate, 0, uc.cfg.Tracking.HistoryLimit),
			Geofences:       uc.buildGeofences(ride),
		},
	}

	if !uc.registry.add(rideID, s) {
		return nil, fmt.Errorf("%w: %s", tracking.ErrTrackingActive, rideID)
	}

	uc.armInactivityTimer(s, rideID)

	snapshot := s.snapshot()
	logger.Info("Tracking started",
		logger.String("ride_id", rideID),
		logger.String("driver_id", snapshot.DriverID),
		logger.Int("geofences", len(snapshot.Geofences)))

	go func() {
		bg := context.Background()
		if err := uc.gw.NotifyTrackingEvent(bg, snapshot.RiderID, "Your driver is on the way. Live tracking has started."); err != nil {
			logger.Warn("Failed to notify rider of tracking start",
				logger.String("ride_id", rideID), logger.Err(err))
		}
		if err := uc.gw.PublishTrackingStarted(bg, snapshot); err != nil {
			logger.Warn("Failed to publish tracking started event",
				logger.String("ride_id", rideID), logger.Err(err))
		}
	}()

	return snapshot, nil
}

// buildGeofences derives the fixed fence set from the ride's coordinates.
// A ride missing either coordinate simply gets fewer geofences.
func (uc *TrackingUC) buildGeofences(ride *models.Ride) []*models.Geofence {
	var fences []*models.Geofence

	if ride.HasPickup() {
		fences = append(fences, &models.Geofence{
			ID:        uuid.NewString(),
			Type:      models.GeofencePickup,
			Latitude:  *ride.PickupLatitude,
			Longitude: *ride.PickupLongitude,
			Radius:    uc.cfg.Tracking.GeofenceRadius,
		})
	}
	if ride.HasDropoff() {
		fences = append(fences, &models.Geofence{
			ID:        uuid.NewString(),
			Type:      models.GeofenceDropoff,
			Latitude:  *ride.DropoffLatitude,
			Longitude: *ride.DropoffLongitude,
			Radius:    uc.cfg.Tracking.GeofenceRadius,
		})
	}

	return fences
}

// UpdateLocation processes one point sample from the driver's device:
// records it, evaluates alerts and geofences, re-arms the inactivity timer,
// and hands the point to the best-effort persistence and event channels.
func (uc *TrackingUC) UpdateLocation(ctx context.Context, rideID string, update *models.LocationUpdate) error {
	s, ok := uc.registry.get(rideID)
	if !ok {
		return fmt.Errorf("%w: %s", tracking.ErrNoActiveSession, rideID)
	}

	now := uc.clk.Now()
	update.RideID = rideID
	update.Timestamp = now

	if update.Accuracy > uc.cfg.Tracking.AccuracyWarnMeters {
		// Accepted anyway: availability of tracking beats precision filtering.
		logger.Warn("Accepted location update with poor accuracy",
			logger.String("ride_id", rideID),
			logger.Float64("accuracy_meters", update.Accuracy))
	}

	s.mu.Lock()
	if !s.data.IsActive {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", tracking.ErrNoActiveSession, rideID)
	}

	update.DriverID = s.data.DriverID

	loc := *update
	s.data.CurrentLocation = &loc
	s.data.LocationHistory = append(s.data.LocationHistory, loc)
	if len(s.data.LocationHistory) > uc.cfg.Tracking.HistoryLimit {
		// FIFO eviction: append at tail, evict at head.
		s.data.LocationHistory = s.data.LocationHistory[1:]
	}
	s.data.LastUpdate = now

	alerts := uc.alerts.evaluate(&loc)
	entered := evaluateGeofences(s.data, &loc, now)
	for _, gf := range entered {
		alerts = append(alerts, newAlert(models.AlertGeofenceEntry, models.SeverityLow, geofenceEntryMessage(gf.Type), now))
	}
	s.data.Alerts = append(s.data.Alerts, alerts...)

	riderID := s.data.RiderID
	driverID := s.data.DriverID
	snapshot := s.data.Clone()
	s.mu.Unlock()

	uc.armInactivityTimer(s, rideID)
	uc.dispatchAlerts(rideID, riderID, alerts)

	dropoffReached := false
	for _, gf := range entered {
		uc.handleGeofenceEntry(ctx, rideID, riderID, driverID, gf)
		if gf.Type == models.GeofenceDropoff {
			dropoffReached = true
		}
	}

	go uc.persistAndPublish(rideID, &loc, snapshot)

	if dropoffReached {
		// Arrival at dropoff ends the session.
		if err := uc.StopTracking(ctx, rideID); err != nil {
			logger.Error("Failed to stop tracking after dropoff arrival",
				logger.String("ride_id", rideID), logger.Err(err))
		}
	}

	return nil
}

// handleGeofenceEntry notifies both parties and applies the ride-status
// side effect of an entered fence.
func (uc *TrackingUC) handleGeofenceEntry(ctx context.Context, rideID, riderID, driverID string, gf *models.Geofence) {
	msg := geofenceEntryMessage(gf.Type)

	go func() {
		bg := context.Background()
		for _, userID := range []string{riderID, driverID} {
			if err := uc.gw.NotifyTrackingEvent(bg, userID, msg); err != nil {
				logger.Warn("Failed to send geofence notification",
					logger.String("ride_id", rideID),
					logger.String("user_id", userID),
					logger.Err(err))
			}
		}
	}()

	switch gf.Type {
	case models.GeofencePickup:
		if err := uc.rideRepo.UpdateRideStatus(ctx, rideID, models.RideStatusPickedUp); err != nil {
			logger.Error("Failed to update ride status on pickup arrival",
				logger.String("ride_id", rideID), logger.Err(err))
		}
	case models.GeofenceDropoff:
		if err := uc.rideRepo.UpdateRideStatus(ctx, rideID, models.RideStatusCompleted); err != nil {
			logger.Error("Failed to update ride status on dropoff arrival",
				logger.String("ride_id", rideID), logger.Err(err))
		}
	}
}

// dispatchAlerts sends each alert to the notification channel; critical
// severity additionally escalates to SMS for the rider. No deduplication.
func (uc *TrackingUC) dispatchAlerts(rideID, riderID string, alerts []models.Alert) {
	for _, alert := range alerts {
		go func(alert models.Alert) {
			bg := context.Background()
			if err := uc.gw.NotifyAlert(bg, riderID, rideID, alert); err != nil {
				logger.Warn("Failed to dispatch alert notification",
					logger.String("ride_id", rideID),
					logger.String("alert_type", string(alert.Type)),
					logger.Err(err))
			}
			if alert.Severity == models.SeverityCritical {
				if err := uc.gw.SendSMS(bg, riderID, alert.Message); err != nil {
					logger.Warn("Failed to send SMS escalation",
						logger.String("ride_id", rideID),
						logger.String("alert_type", string(alert.Type)),
						logger.Err(err))
				}
			}
		}(alert)
	}
}

// persistAndPublish writes the point to the durable store and emits the
// location event. Both are best-effort; in-memory session state is the
// operation's source of truth.
func (uc *TrackingUC) persistAndPublish(rideID string, loc *models.LocationUpdate, snapshot *models.TrackingSession) {
	bg := context.Background()

	if err := uc.locRepo.AppendLocation(bg, loc); err != nil {
		logger.Warn("Failed to persist location update",
			logger.String("ride_id", rideID), logger.Err(err))
	}
	if err := uc.gw.PublishLocationUpdated(bg, loc, snapshot); err != nil {
		logger.Warn("Failed to publish location updated event",
			logger.String("ride_id", rideID), logger.Err(err))
	}
}

// armInactivityTimer (re)starts the session's inactivity window.
func (uc *TrackingUC) armInactivityTimer(s *session, rideID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = uc.clk.AfterFunc(uc.cfg.Tracking.InactivityTimeout, func() {
		uc.onInactivityTimeout(rideID)
	})
}

// onInactivityTimeout fires when a session goes quiet for the full window.
// The session stays active, awaiting either a recovering update or an
// explicit stop.
func (uc *TrackingUC) onInactivityTimeout(rideID string) {
	s, ok := uc.registry.get(rideID)
	if !ok {
		// Session was stopped after the timer fired.
		return
	}

	s.mu.Lock()
	if !s.data.IsActive {
		s.mu.Unlock()
		return
	}
	now := uc.clk.Now()
	if now.Sub(s.data.LastUpdate) < uc.cfg.Tracking.InactivityTimeout {
		// A fresh update raced the callback.
		s.mu.Unlock()
		return
	}

	alert := newAlert(models.AlertLocationTimeout, models.SeverityHigh,
		fmt.Sprintf("No location updates received for %s", uc.cfg.Tracking.InactivityTimeout), now)
	s.data.Alerts = append(s.data.Alerts, alert)
	riderID := s.data.RiderID
	s.mu.Unlock()

	logger.Warn("Location updates stopped for active session",
		logger.String("ride_id", rideID))
	uc.dispatchAlerts(rideID, riderID, []models.Alert{alert})
}

// StopTracking tears a session down: marks it inactive, cancels its timer
// synchronously, removes it from the registry, and notifies both parties.
func (uc *TrackingUC) StopTracking(ctx context.Context, rideID string) error {
	s, ok := uc.registry.remove(rideID)
	if !ok {
		return fmt.Errorf("%w: %s", tracking.ErrSessionNotFound, rideID)
	}

	s.mu.Lock()
	s.data.IsActive = false
	if s.timer != nil {
		// Cancel before releasing the session so no callback can fire
		// against removed state.
		s.timer.Stop()
		s.timer = nil
	}
	snapshot := s.data.Clone()
	s.mu.Unlock()

	logger.Info("Tracking stopped",
		logger.String("ride_id", rideID),
		logger.Int("points", len(snapshot.LocationHistory)),
		logger.Int("alerts", len(snapshot.Alerts)))

	go func() {
		bg := context.Background()
		if err := uc.locRepo.RemoveLiveDriver(bg, snapshot.DriverID); err != nil {
			logger.Warn("Failed to remove driver from live geo set",
				logger.String("driver_id", snapshot.DriverID), logger.Err(err))
		}
		for _, userID := range []string{snapshot.RiderID, snapshot.DriverID} {
			if err := uc.gw.NotifyTrackingEvent(bg, userID, "Live tracking for this ride has ended."); err != nil {
				logger.Warn("Failed to send tracking stopped notification",
					logger.String("ride_id", rideID),
					logger.String("user_id", userID),
					logger.Err(err))
			}
		}
		if err := uc.gw.PublishTrackingStopped(bg, snapshot); err != nil {
			logger.Warn("Failed to publish tracking stopped event",
				logger.String("ride_id", rideID), logger.Err(err))
		}
	}()

	return nil
}

// GetCurrentLocation returns the latest accepted point, or nil when the
// ride has no session.
func (uc *TrackingUC) GetCurrentLocation(ctx context.Context, rideID string) (*models.LocationUpdate, error) {
	s, ok := uc.registry.get(rideID)
	if !ok {
		return nil, nil
	}
	return s.snapshot().CurrentLocation, nil
}

// GetLocationHistory returns up to limit most recent points in
// chronological order, most-recent-last. limit <= 0 means everything held.
func (uc *TrackingUC) GetLocationHistory(ctx context.Context, rideID string, limit int) ([]models.LocationUpdate, error) {
	s, ok := uc.registry.get(rideID)
	if !ok {
		return nil, nil
	}

	history := s.snapshot().LocationHistory
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	return history, nil
}

// GetTrackingSession returns a snapshot of the ride's session, or nil.
func (uc *TrackingUC) GetTrackingSession(ctx context.Context, rideID string) (*models.TrackingSession, error) {
	s, ok := uc.registry.get(rideID)
	if !ok {
		return nil, nil
	}
	return s.snapshot(), nil
}

// GetActiveSessions returns snapshots of every active session.
func (uc *TrackingUC) GetActiveSessions(ctx context.Context) ([]*models.TrackingSession, error) {
	sessions := uc.registry.list()

	active := make([]*models.TrackingSession, 0, len(sessions))
	for _, s := range sessions {
		snap := s.snapshot()
		if snap.IsActive {
			active = append(active, snap)
		}
	}
	return active, nil
}
