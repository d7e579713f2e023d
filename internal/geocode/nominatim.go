// Package geocode resolves free-text addresses to coordinates using the
// OpenStreetMap Nominatim service.
package geocode

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/evcatalyst/happenstance/internal/geo"
)

// Geocoder resolves an address to coordinates, with a fallback region
// appended for disambiguation. ok is false when no coordinates could be
// determined; lookups never surface errors to the caller.
type Geocoder interface {
	Geocode(address, region string) (geo.Coordinates, bool)
}

// Func adapts a plain function to the Geocoder interface.
type Func func(address, region string) (geo.Coordinates, bool)

func (f Func) Geocode(address, region string) (geo.Coordinates, bool) {
	return f(address, region)
}

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org/search"

	// Nominatim policy requires an identifying User-Agent.
	userAgent = "Happenstance/1.0 (github.com/evcatalyst/happenstance)"

	// Pause after every successful lookup to stay polite to the free
	// service. Applied once per network call, never on cache hits.
	courtesyPause = time.Second
)

// Client is a Nominatim-backed Geocoder. Empty input, zero candidates, and
// transport failures all collapse to ok=false so the pairing engine can
// proceed without coordinates.
type Client struct {
	baseURL string
	httpc   *http.Client
	pause   func(time.Duration)
}

// NewClient returns a Client with a fixed per-request timeout.
func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		pause:   time.Sleep,
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode looks up "{address}, {region}" and returns the best candidate.
func (c *Client) Geocode(address, region string) (geo.Coordinates, bool) {
	if address == "" {
		return geo.Coordinates{}, false
	}

	query := address + ", " + region

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return geo.Coordinates{}, false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("geocoding request failed")
		return geo.Coordinates{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("query", query).Msg("geocoding request rejected")
		return geo.Coordinates{}, false
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		log.Warn().Err(err).Str("query", query).Msg("geocoding response malformed")
		return geo.Coordinates{}, false
	}
	if len(results) == 0 {
		return geo.Coordinates{}, false
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return geo.Coordinates{}, false
	}

	c.pause(courtesyPause)
	return geo.Coordinates{Lat: lat, Lon: lon}, true
}
