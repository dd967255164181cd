package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wanderlist/internal/config"
)

// TestLoad_defaults verifies that every variable falls back to its default
// when nothing is set.
func TestLoad_defaults(t *testing.T) {
	for _, key := range []string{
		"BIND_ADDR", "PORT", "STATE_DIR", "LOG_LEVEL", "CORS_ORIGINS",
		"GEOCODER_URL", "GEOCODER_LIMIT", "WEATHER_URL", "GATEWAY_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.BindAddr)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "data", cfg.StateDir)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, "https://nominatim.openstreetmap.org", cfg.GeocoderURL)
	require.Equal(t, 5, cfg.GeocoderLimit)
	require.Equal(t, "https://api.open-meteo.com", cfg.WeatherURL)
	require.Equal(t, 10*time.Second, cfg.GatewayTimeout)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	t.Setenv("BIND_ADDR", "0.0.0.0")
	t.Setenv("PORT", "9090")
	t.Setenv("STATE_DIR", "/var/lib/wanderlist")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("GEOCODER_URL", "http://localhost:7070")
	t.Setenv("GEOCODER_LIMIT", "10")
	t.Setenv("WEATHER_URL", "http://localhost:7071")
	t.Setenv("GATEWAY_TIMEOUT", "3s")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.BindAddr)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "/var/lib/wanderlist", cfg.StateDir)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, "http://localhost:7070", cfg.GeocoderURL)
	require.Equal(t, 10, cfg.GeocoderLimit)
	require.Equal(t, "http://localhost:7071", cfg.WeatherURL)
	require.Equal(t, 3*time.Second, cfg.GatewayTimeout)
}

// TestLoad_badGeocoderLimit verifies that a set-but-unparseable or
// out-of-range limit is an error naming the variable, not a silent default.
func TestLoad_badGeocoderLimit(t *testing.T) {
	t.Setenv("GEOCODER_LIMIT", "many")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "GEOCODER_LIMIT")

	t.Setenv("GEOCODER_LIMIT", "0")

	_, err = config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "GEOCODER_LIMIT")
}

// TestLoad_badGatewayTimeout verifies the duration parse and positivity checks.
func TestLoad_badGatewayTimeout(t *testing.T) {
	t.Setenv("GATEWAY_TIMEOUT", "soon")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "GATEWAY_TIMEOUT")

	t.Setenv("GATEWAY_TIMEOUT", "-5s")

	_, err = config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "GATEWAY_TIMEOUT")
}
