package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/caretrip/caretrip/internal/pkg/logger"
	"github.com/caretrip/caretrip/internal/pkg/models"
	"github.com/caretrip/caretrip/internal/utils"
	"github.com/caretrip/caretrip/services/tracking"
)

// TrackingHandler handles HTTP requests for tracking operations
type TrackingHandler struct {
	trackingUC tracking.TrackingUC
	locRepo    tracking.LocationRepo
}

// NewTrackingHandler creates a new tracking HTTP handler
func NewTrackingHandler(trackingUC tracking.TrackingUC, locRepo tracking.LocationRepo) *TrackingHandler {
	return &TrackingHandler{
		trackingUC: trackingUC,
		locRepo:    locRepo,
	}
}

// StartTracking begins a tracking session for a ride
func (h *TrackingHandler) StartTracking(c echo.Context) error {
	rideID := c.Param("rideID")
	if rideID == "" {
		return utils.BadRequestResponse(c, "Ride ID is required")
	}

	session, err := h.trackingUC.StartTracking(c.Request().Context(), rideID)
	if err != nil {
		switch {
		case errors.Is(err, tracking.ErrRideNotFound):
			return utils.NotFoundResponse(c, "Ride not found")
		case errors.Is(err, tracking.ErrNoDriverAssigned):
			return utils.ConflictResponse(c, "Ride has no assigned driver")
		case errors.Is(err, tracking.ErrTrackingActive):
			return utils.ConflictResponse(c, "Tracking is already active for this ride")
		}
		logger.Error("Failed to start tracking",
			logger.String("ride_id", rideID),
			logger.ErrorField(err))
		return utils.InternalServerErrorResponse(c, "Failed to start tracking")
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Tracking started", session)
}

// UpdateLocation accepts a location update from the driver's device
func (h *TrackingHandler) UpdateLocation(c echo.Context) error {
	rideID := c.Param("rideID")
	if rideID == "" {
		return utils.BadRequestResponse(c, "Ride ID is required")
	}

	var update models.LocationUpdate
	if err := c.Bind(&update); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	if err := c.Validate(&update); err != nil {
		return utils.BadRequestResponse(c, "Invalid location payload: "+err.Error())
	}

	if err := h.trackingUC.UpdateLocation(c.Request().Context(), rideID, &update); err != nil {
		if errors.Is(err, tracking.ErrNoActiveSession) {
			return utils.NotFoundResponse(c, "No active tracking session for this ride")
		}
		logger.Error("Failed to process location update",
			logger.String("ride_id", rideID),
			logger.ErrorField(err))
		return utils.InternalServerErrorResponse(c, "Failed to process location update")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Location accepted", nil)
}

// StopTracking ends a tracking session
func (h *TrackingHandler) StopTracking(c echo.Context) error {
	rideID := c.Param("rideID")
	if rideID == "" {
		return utils.BadRequestResponse(c, "Ride ID is required")
	}

	if err := h.trackingUC.StopTracking(c.Request().Context(), rideID); err != nil {
		if errors.Is(err, tracking.ErrSessionNotFound) {
			return utils.NotFoundResponse(c, "No tracking session for this ride")
		}
		logger.Error("Failed to stop tracking",
			logger.String("ride_id", rideID),
			logger.ErrorField(err))
		return utils.InternalServerErrorResponse(c, "Failed to stop tracking")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Tracking stopped", nil)
}

// GetCurrentLocation returns the latest accepted point for an active session
func (h *TrackingHandler) GetCurrentLocation(c echo.Context) error {
	rideID := c.Param("rideID")
	if rideID == "" {
		return utils.BadRequestResponse(c, "Ride ID is required")
	}

	location, err := h.trackingUC.GetCurrentLocation(c.Request().Context(), rideID)
	if err != nil {
		return utils.InternalServerErrorResponse(c, "Failed to get current location")
	}
	if location == nil {
		return utils.NotFoundResponse(c, "No location available for this ride")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Current location", location)
}

// GetLocationHistory returns the session's recent points, most recent last
func (h *TrackingHandler) GetLocationHistory(c echo.Context) error {
	rideID := c.Param("rideID")
	if rideID == "" {
		return utils.BadRequestResponse(c, "Ride ID is required")
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return utils.BadRequestResponse(c, "Invalid limit parameter")
		}
		limit = parsed
	}

	history, err := h.trackingUC.GetLocationHistory(c.Request().Context(), rideID, limit)
	if err != nil {
		return utils.InternalServerErrorResponse(c, "Failed to get location history")
	}
	if history == nil {
		return utils.NotFoundResponse(c, "No tracking session for this ride")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Location history", history)
}

// GetTrackingSession returns the full session snapshot
func (h *TrackingHandler) GetTrackingSession(c echo.Context) error {
	rideID := c.Param("rideID")
	if rideID == "" {
		return utils.BadRequestResponse(c, "Ride ID is required")
	}

	session, err := h.trackingUC.GetTrackingSession(c.Request().Context(), rideID)
	if err != nil {
		return utils.InternalServerErrorResponse(c, "Failed to get tracking session")
	}
	if session == nil {
		return utils.NotFoundResponse(c, "No tracking session for this ride")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Tracking session", session)
}

// GetActiveSessions lists all live sessions
func (h *TrackingHandler) GetActiveSessions(c echo.Context) error {
	sessions, err := h.trackingUC.GetActiveSessions(c.Request().Context())
	if err != nil {
		return utils.InternalServerErrorResponse(c, "Failed to list active sessions")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Active sessions", sessions)
}

// GetLastKnownLocation serves the cached latest point from the durable
// store. Works after a session ends, which the in-memory queries do not.
func (h *TrackingHandler) GetLastKnownLocation(c echo.Context) error {
	rideID := c.Param("rideID")
	if rideID == "" {
		return utils.BadRequestResponse(c, "Ride ID is required")
	}

	location, err := h.locRepo.GetLatestLocation(c.Request().Context(), rideID)
	if err != nil {
		logger.Error("Failed to read cached location",
			logger.String("ride_id", rideID),
			logger.ErrorField(err))
		return utils.InternalServerErrorResponse(c, "Failed to get last known location")
	}
	if location == nil {
		return utils.NotFoundResponse(c, "No cached location for this ride")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Last known location", location)
}
