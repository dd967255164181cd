package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderlist/internal/domain"
	"wanderlist/internal/gateway"
	"wanderlist/pkg/openmeteo"
)

func newWeather(t *testing.T, handler http.HandlerFunc) *gateway.Weather {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return gateway.NewWeather(openmeteo.NewClient(srv.URL, srv.Client()))
}

func TestWeatherCurrent_MapsSnapshot(t *testing.T) {
	w := newWeather(t, func(rw http.ResponseWriter, r *http.Request) {
		rw.Write([]byte(`{"current_weather": {"temperature": 21.5, "windspeed": 9.7, "weathercode": 2, "time": "2025-07-14T12:00"}}`))
	})

	got, err := w.Current(context.Background(), domain.Coordinates{Latitude: 38.7223, Longitude: -9.1393})

	require.NoError(t, err)
	assert.Equal(t, domain.WeatherOK, got.Status)
	assert.InDelta(t, 21.5, got.TemperatureC, 1e-9)
	assert.InDelta(t, 9.7, got.WindSpeedKmh, 1e-9)
	assert.Equal(t, "Partly cloudy", got.Description)
	assert.NotEmpty(t, got.Icon)
	assert.WithinDuration(t, time.Now().UTC(), got.FetchedAt, time.Minute)
}

func TestWeatherCurrent_UnknownCodeStillOK(t *testing.T) {
	w := newWeather(t, func(rw http.ResponseWriter, r *http.Request) {
		rw.Write([]byte(`{"current_weather": {"temperature": 1.0, "windspeed": 2.0, "weathercode": 42}}`))
	})

	got, err := w.Current(context.Background(), domain.Coordinates{})

	require.NoError(t, err)
	assert.Equal(t, domain.WeatherOK, got.Status)
	assert.Equal(t, "Unknown conditions", got.Description)
}

func TestWeatherCurrent_ServerErrorWrapsGatewayError(t *testing.T) {
	w := newWeather(t, func(rw http.ResponseWriter, r *http.Request) {
		http.Error(rw, "out of capacity", http.StatusServiceUnavailable)
	})

	_, err := w.Current(context.Background(), domain.Coordinates{})

	assert.ErrorIs(t, err, domain.ErrGateway)
}

func TestWeatherCurrent_MissingBlockWrapsGatewayError(t *testing.T) {
	w := newWeather(t, func(rw http.ResponseWriter, r *http.Request) {
		rw.Write([]byte(`{"latitude": 38.72}`))
	})

	_, err := w.Current(context.Background(), domain.Coordinates{})

	assert.ErrorIs(t, err, domain.ErrGateway)
}
