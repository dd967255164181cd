// Package nominatim is a minimal client for the OpenStreetMap Nominatim
// search API, covering exactly what WanderList needs: free-text forward
// geocoding with a bounded number of results.
//
// Nominatim's usage policy asks every client to identify itself, so the
// client sends a User-Agent on each request.
package nominatim

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

// DefaultBaseURL is the public OpenStreetMap Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

const defaultUserAgent = "wanderlist/0.1"

// maxResponseSize caps how much of a response body is read. Search results
// for a handful of places are a few kilobytes; anything near this limit is
// not a response worth parsing.
const maxResponseSize = 1 << 20

// Place is one search result. Latitude and longitude arrive as JSON strings
// because the API quotes them; use Coordinates for numbers.
type Place struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Class       string `json:"class,omitempty"`
	Type        string `json:"type,omitempty"`
}

// Coordinates parses the quoted lat/lon pair.
func (p Place) Coordinates() (lat, lon float64, err error) {
	lat, err = strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("nominatim: bad latitude %q: %w", p.Lat, err)
	}
	lon, err = strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("nominatim: bad longitude %q: %w", p.Lon, err)
	}
	return lat, lon, nil
}

// Client talks to one Nominatim instance.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient returns a client for the instance at baseURL (DefaultBaseURL
// for the public one). An empty userAgent falls back to the package
// default; a nil httpClient gets a 10 second timeout client.
func NewClient(baseURL, userAgent string, httpClient *http.Client) *Client {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// Search runs a forward geocoding query and returns at most limit places.
// An empty result is not an error: the query simply matched nothing.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("nominatim: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim: search %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("nominatim: search %q: status %d: %s",
			query, resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	var places []Place
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&places); err != nil {
		return nil, fmt.Errorf("nominatim: decode response: %w", err)
	}
	return places, nil
}
