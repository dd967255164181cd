// Package openmeteo is a minimal client for the Open-Meteo forecast API,
// limited to the current_weather block WanderList renders. The API is
// keyless; current weather units are degrees Celsius and km/h.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public Open-Meteo instance.
const DefaultBaseURL = "https://api.open-meteo.com"

const maxResponseSize = 1 << 20

// CurrentWeather mirrors the current_weather block of a forecast response.
type CurrentWeather struct {
	Temperature float64 `json:"temperature"` // °C
	WindSpeed   float64 `json:"windspeed"`   // km/h
	WeatherCode int     `json:"weathercode"` // WMO code; see Describe
	Time        string  `json:"time"`
}

type forecastResponse struct {
	CurrentWeather *CurrentWeather `json:"current_weather"`
}

// Client talks to one Open-Meteo instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the instance at baseURL (DefaultBaseURL
// for the public one). A nil httpClient gets a 10 second timeout client.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Current fetches the current weather at a point.
func (c *Client) Current(ctx context.Context, latitude, longitude float64) (CurrentWeather, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("current_weather", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+params.Encode(), nil)
	if err != nil {
		return CurrentWeather{}, fmt.Errorf("openmeteo: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CurrentWeather{}, fmt.Errorf("openmeteo: current weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return CurrentWeather{}, fmt.Errorf("openmeteo: current weather: status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	var fr forecastResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&fr); err != nil {
		return CurrentWeather{}, fmt.Errorf("openmeteo: decode response: %w", err)
	}
	if fr.CurrentWeather == nil {
		return CurrentWeather{}, fmt.Errorf("openmeteo: response missing current_weather block")
	}
	return *fr.CurrentWeather, nil
}
