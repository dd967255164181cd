package gateway

import (
	"context"
	"fmt"
	"time"

	"wanderlist/internal/domain"
	"wanderlist/pkg/openmeteo"
)

// Weather fetches current conditions through an Open-Meteo instance.
type Weather struct {
	client *openmeteo.Client
}

// NewWeather wraps an Open-Meteo client.
func NewWeather(client *openmeteo.Client) *Weather {
	return &Weather{client: client}
}

// Current fetches the live snapshot for a point. Failures wrap
// domain.ErrGateway; the engine decides whether that degrades the entry or
// aborts the operation.
func (w *Weather) Current(ctx context.Context, at domain.Coordinates) (*domain.Weather, error) {
	cw, err := w.client.Current(ctx, at.Latitude, at.Longitude)
	if err != nil {
		return nil, fmt.Errorf("gateway.Weather.Current: %w: %v", domain.ErrGateway, err)
	}

	cond := openmeteo.Describe(cw.WeatherCode)
	return &domain.Weather{
		Status:       domain.WeatherOK,
		TemperatureC: cw.Temperature,
		Description:  cond.Description,
		Icon:         cond.Icon,
		WindSpeedKmh: cw.WindSpeed,
		FetchedAt:    time.Now().UTC(),
	}, nil
}
