package constants

// NATS Subjects
const (
	// Tracking events for external subscribers (dashboards, ops tooling)
	SubjectTrackingStarted  = "tracking.started"
	SubjectTrackingLocation = "tracking.location"
	SubjectTrackingStopped  = "tracking.stopped"

	// Notification dispatch
	SubjectNotifyTracking = "notify.tracking"
	SubjectNotifyAlert    = "notify.alert"
	SubjectNotifySMS      = "notify.sms"
)
