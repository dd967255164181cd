package handler

import (
	"fmt"
	"net/http"

	"wanderlist/internal/domain"
)

// geoJSONFeatureCollection is the root of a GeoJSON export. Only the subset
// of RFC 7946 needed for Point features is modeled.
type geoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

type geoJSONFeature struct {
	Type       string         `json:"type"`
	Geometry   geoJSONPoint   `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type geoJSONPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// exportList handles GET /api/list/export.
// Use ?format=geojson for a GeoJSON FeatureCollection that external map
// tools can load directly; the default is the plain JSON snapshot. Both are
// served as a download attachment.
func (s *Server) exportList(w http.ResponseWriter, r *http.Request) {
	entries := s.list.Snapshot()

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		w.Header().Set("Content-Disposition", `attachment; filename="wanderlist.json"`)
		writeJSON(w, http.StatusOK, listResponse{Entries: entries})
	case "geojson":
		w.Header().Set("Content-Disposition", `attachment; filename="wanderlist.geojson"`)
		writeJSON(w, http.StatusOK, buildGeoJSON(entries))
	default:
		requestError(w, fmt.Sprintf("unknown export format %q", format))
	}
}

// buildGeoJSON converts the snapshot into a FeatureCollection of Points.
// GeoJSON positions are [longitude, latitude], the reverse of the domain
// order. Weather properties are only attached when the snapshot holds real
// data.
func buildGeoJSON(entries []domain.TripEntry) geoJSONFeatureCollection {
	features := make([]geoJSONFeature, 0, len(entries))
	for i, entry := range entries {
		props := map[string]any{
			"name":     entry.Name,
			"visited":  entry.Visited,
			"position": i,
		}
		if entry.Weather != nil && entry.Weather.Status == domain.WeatherOK {
			props["temperature_c"] = entry.Weather.TemperatureC
			props["weather"] = entry.Weather.Description
		}
		features = append(features, geoJSONFeature{
			Type: "Feature",
			Geometry: geoJSONPoint{
				Type:        "Point",
				Coordinates: [2]float64{entry.Coordinates.Longitude, entry.Coordinates.Latitude},
			},
			Properties: props,
		})
	}
	return geoJSONFeatureCollection{Type: "FeatureCollection", Features: features}
}
