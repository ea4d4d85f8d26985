package config

import (
	"os"
)

// Config holds the application configuration
type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	Engine  EngineConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// EngineConfig holds the Astrometers scoring engine's configuration: where
// to find per-meter filter/ballast/percentile overrides, and where the
// Calibration Harness keeps its sample store.
type EngineConfig struct {
	// MetersConfigDir points at a directory of per-meter JSON files
	// overriding the embedded defaults. Empty means "use embedded only".
	MetersConfigDir string
	// CalibrationDBPath is the sqlite file backing internal/calibration.Store.
	CalibrationDBPath string
}

// Load loads configuration from environment variables and defaults
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
			Host: getEnvOrDefault("HOST", "localhost"),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "console"),
		},
		Engine: EngineConfig{
			MetersConfigDir:   getEnvOrDefault("METERS_CONFIG_DIR", ""),
			CalibrationDBPath: getEnvOrDefault("CALIBRATION_DB_PATH", "data/calibration.db"),
		},
	}
}

// getEnvOrDefault gets an environment variable or returns a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
