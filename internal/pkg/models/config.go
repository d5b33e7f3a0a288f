package models

import "time"

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Logger   LoggerConfig
	Tracking TrackingConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// LoggerConfig contains structured logging configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}

// TrackingConfig contains the thresholds and windows of the live tracking
// engine. Defaults are applied by the config loader.
type TrackingConfig struct {
	SpeedLimitMph      float64       // speed_limit alert above this
	LowBatteryPct      float64       // low_battery alert below this
	CriticalBatteryPct float64       // low_battery escalates to critical below this
	AccuracyWarnMeters float64       // accepted with a warning above this
	GeofenceRadius     float64       // meters, default radius for ride geofences
	HistoryLimit       int           // bounded per-session location history
	InactivityTimeout  time.Duration // per-session timer window
	SweepInterval      time.Duration // global health sweep cadence
	StaleAfter         time.Duration // sweep warns when last update is older
	MaxSessionAge      time.Duration // sweep warns when a session runs longer
}
