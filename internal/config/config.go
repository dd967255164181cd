// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"wanderlist/pkg/nominatim"
	"wanderlist/pkg/openmeteo"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// BindAddr is the interface the HTTP server listens on. Defaults to
	// "127.0.0.1": the server is a local companion for the browser UI, not
	// a network service.
	BindAddr string

	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// StateDir is the directory holding the persisted wish-list files.
	// Defaults to "data"; created on startup if absent.
	StateDir string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// GeocoderURL is the base URL of the Nominatim instance used to resolve
	// place names. Defaults to the public OpenStreetMap instance.
	GeocoderURL string

	// GeocoderLimit caps how many candidates one place query may return.
	// Defaults to 5; must be at least 1.
	GeocoderLimit int

	// WeatherURL is the base URL of the Open-Meteo instance used for
	// weather snapshots. Defaults to the public instance.
	WeatherURL string

	// GatewayTimeout bounds every outbound geocoding and weather call.
	// Defaults to 10s; must be positive.
	GatewayTimeout time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// Every variable has a usable default; an error means a set variable could
// not be parsed or failed validation.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:    getEnv("BIND_ADDR", "127.0.0.1"),
		Port:        getEnv("PORT", "8080"),
		StateDir:    getEnv("STATE_DIR", "data"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		GeocoderURL: getEnv("GEOCODER_URL", nominatim.DefaultBaseURL),
		WeatherURL:  getEnv("WEATHER_URL", openmeteo.DefaultBaseURL),
	}

	var err error
	if cfg.GeocoderLimit, err = getEnvInt("GEOCODER_LIMIT", 5); err != nil {
		return Config{}, err
	}
	if cfg.GeocoderLimit < 1 {
		return Config{}, fmt.Errorf("GEOCODER_LIMIT must be at least 1, got %d", cfg.GeocoderLimit)
	}

	if cfg.GatewayTimeout, err = getEnvDuration("GATEWAY_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.GatewayTimeout <= 0 {
		return Config{}, fmt.Errorf("GATEWAY_TIMEOUT must be positive, got %s", cfg.GatewayTimeout)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt parses the named variable as an integer, or returns fallback when
// it is unset. A set-but-unparseable value is an error, never silently the
// fallback.
func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

// getEnvDuration parses the named variable as a Go duration ("10s", "1m30s"),
// or returns fallback when it is unset.
func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 10s, got %q", key, v)
	}
	return d, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
