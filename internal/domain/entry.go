// Package domain contains the core data types for the WanderList application.
// This package has zero dependencies beyond uuid and is imported by every
// other internal package (store, engine, gateway, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripEntry is one place on the wish list. The list is a single ordered
// slice of these composite records, so an entry's name, coordinates, visited
// flag, and weather can never drift out of alignment with each other.
type TripEntry struct {
	// ID identifies the entry for the lifetime of the process. It is assigned
	// when the entry is created or loaded and is never persisted. Positions
	// are the external handle; IDs exist so an in-flight weather refresh can
	// find its entry again after the list has been reordered underneath it.
	ID uuid.UUID `json:"id"`

	// Name is the text the user typed, not the geocoder's display name.
	// Set once at creation.
	Name string `json:"name"`

	// Coordinates is the resolved WGS84 position. Set once at creation.
	Coordinates Coordinates `json:"coordinates"`

	Visited bool `json:"visited"`

	// Weather is nil until the first fetch for this entry completes.
	Weather *Weather `json:"weather,omitempty"`
}

// Clone returns a copy of the entry whose weather snapshot is not shared
// with the original.
func (e TripEntry) Clone() TripEntry {
	if e.Weather != nil {
		w := *e.Weather
		e.Weather = &w
	}
	return e
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// WeatherStatus says whether a weather snapshot carries real data.
type WeatherStatus string

const (
	// WeatherOK marks a snapshot with live data from the weather gateway.
	WeatherOK WeatherStatus = "ok"

	// WeatherUnavailable marks a snapshot whose fetch failed. The data
	// fields are zero and must not be rendered as real values.
	WeatherUnavailable WeatherStatus = "unavailable"
)

// Weather is a point-in-time weather snapshot for an entry. Units follow the
// weather gateway: degrees Celsius and kilometres per hour.
type Weather struct {
	Status       WeatherStatus `json:"status"`
	TemperatureC float64       `json:"temperature_c"`
	Description  string        `json:"description"`
	Icon         string        `json:"icon"`
	WindSpeedKmh float64       `json:"wind_speed_kmh"`
	FetchedAt    time.Time     `json:"fetched_at"`
}

// UnavailableWeather returns the degraded snapshot recorded when a fetch
// fails.
func UnavailableWeather(at time.Time) *Weather {
	return &Weather{Status: WeatherUnavailable, FetchedAt: at}
}
