// Package gateway adapts the external geocoding and weather APIs to the
// domain types the engine works with. Every failure surfaces as
// domain.ErrGateway so the engine can treat the outside world uniformly.
package gateway

import (
	"context"
	"fmt"

	"wanderlist/internal/domain"
	"wanderlist/pkg/nominatim"
)

// Geocoder resolves free-text place queries through a Nominatim instance.
type Geocoder struct {
	client *nominatim.Client
	limit  int
}

// NewGeocoder wraps a Nominatim client. limit caps how many candidates one
// query may return; the disambiguation dialog shows them all.
func NewGeocoder(client *nominatim.Client, limit int) *Geocoder {
	return &Geocoder{client: client, limit: limit}
}

// Search geocodes a query into candidates. Zero candidates is a valid
// result (the place is unknown, not the service broken); transport failures
// and malformed payloads, including unparseable coordinates, wrap
// domain.ErrGateway.
func (g *Geocoder) Search(ctx context.Context, query string) ([]domain.Candidate, error) {
	places, err := g.client.Search(ctx, query, g.limit)
	if err != nil {
		return nil, fmt.Errorf("gateway.Geocoder.Search: %w: %v", domain.ErrGateway, err)
	}

	candidates := make([]domain.Candidate, 0, len(places))
	for _, p := range places {
		lat, lon, err := p.Coordinates()
		if err != nil {
			return nil, fmt.Errorf("gateway.Geocoder.Search: %w: %v", domain.ErrGateway, err)
		}
		candidates = append(candidates, domain.Candidate{
			DisplayName: p.DisplayName,
			Coordinates: domain.Coordinates{Latitude: lat, Longitude: lon},
			Class:       p.Class,
			Type:        p.Type,
		})
	}
	return candidates, nil
}
