package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultPort       = ":8080"
	defaultSessionTTL = 24 * time.Hour
)

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return defaultPort
	}
	return port
}

// SessionTTL is how long an idle or finished game is kept in memory.
func SessionTTL() (time.Duration, error) {
	return durationEnv("SESSION_TTL", defaultSessionTTL)
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("unable to parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}
