package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/caretrip/caretrip/internal/pkg/models"
)

// alertEngine is the stateless rule set evaluated against every accepted
// location update. Rules are independent of each other; one update can
// raise several alerts, and a persisting condition re-fires on every update.
type alertEngine struct {
	cfg models.TrackingConfig
}

func newAlert(alertType models.AlertType, severity models.AlertSeverity, message string, at time.Time) models.Alert {
	return models.Alert{
		ID:        uuid.NewString(),
		Type:      alertType,
		Severity:  severity,
		Message:   message,
		Timestamp: at,
	}
}

// evaluate applies the safety threshold rules to one update.
func (e *alertEngine) evaluate(update *models.LocationUpdate) []models.Alert {
	var alerts []models.Alert

	if update.Speed != nil && *update.Speed > e.cfg.SpeedLimitMph {
		alerts = append(alerts, newAlert(
			models.AlertSpeedLimit,
			models.SeverityHigh,
			fmt.Sprintf("Driver is traveling at %.0f mph, above the %.0f mph limit", *update.Speed, e.cfg.SpeedLimitMph),
			update.Timestamp,
		))
	}

	if update.BatteryLevel != nil && *update.BatteryLevel < e.cfg.LowBatteryPct {
		severity := models.SeverityMedium
		if *update.BatteryLevel < e.cfg.CriticalBatteryPct {
			severity = models.SeverityCritical
		}
		alerts = append(alerts, newAlert(
			models.AlertLowBattery,
			severity,
			fmt.Sprintf("Driver's device battery is at %.0f%%", *update.BatteryLevel),
			update.Timestamp,
		))
	}

	if !update.LocationServicesEnabled {
		// The device itself reports that tracking is off.
		alerts = append(alerts, newAlert(
			models.AlertLocationTimeout,
			models.SeverityCritical,
			"Driver's device reports location services are disabled",
			update.Timestamp,
		))
	}

	return alerts
}
