package config

import "time"

// Defaults for server configuration. Values are overridden by CLI flags and
// environment variables at startup.
const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	// DefaultTokenTTL bounds how long an issued access token stays valid.
	DefaultTokenTTL = 24 * time.Hour
)

// Config holds the runtime configuration of the server.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	LogLevel    string
}
