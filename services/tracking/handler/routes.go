package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/caretrip/caretrip/internal/pkg/models"
	"github.com/caretrip/caretrip/services/tracking"
	httpHandler "github.com/caretrip/caretrip/services/tracking/handler/http"
)

// Handler combines all handlers for the tracking service
type Handler struct {
	trackingHTTP *httpHandler.TrackingHandler
	cfg          *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(
	trackingUC tracking.TrackingUC,
	locRepo tracking.LocationRepo,
	cfg *models.Config,
) *Handler {
	return &Handler{
		trackingHTTP: httpHandler.NewTrackingHandler(trackingUC, locRepo),
		cfg:          cfg,
	}
}

// payloadValidator adapts go-playground/validator to echo's Validator hook.
type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Validator = &payloadValidator{validate: validator.New()}

	trackingGroup := e.Group("/tracking")
	trackingGroup.GET("/sessions", h.trackingHTTP.GetActiveSessions)

	rideGroup := trackingGroup.Group("/rides/:rideID")
	rideGroup.POST("/start", h.trackingHTTP.StartTracking)
	rideGroup.POST("/location", h.trackingHTTP.UpdateLocation)
	rideGroup.POST("/stop", h.trackingHTTP.StopTracking)
	rideGroup.GET("/location", h.trackingHTTP.GetCurrentLocation)
	rideGroup.GET("/location/last", h.trackingHTTP.GetLastKnownLocation)
	rideGroup.GET("/history", h.trackingHTTP.GetLocationHistory)
	rideGroup.GET("/session", h.trackingHTTP.GetTrackingSession)
}
