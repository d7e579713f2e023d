package sources

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/evcatalyst/happenstance/internal/domain"
	"github.com/evcatalyst/happenstance/internal/geocode"
)

const (
	placesSearchTextAPI   = "https://places.googleapis.com/v1/places:searchText"
	placesSearchNearbyAPI = "https://places.googleapis.com/v1/places:searchNearby"

	// Radius for the per-event nearby search, roughly half a mile.
	nearbyRadiusMeters = 800.0

	placesFieldMask = "places.displayName,places.formattedAddress,places.types,places.rating,places.priceLevel,places.id"
)

// priceLevels maps the Places API enum to the 0-4 scale used in output.
var priceLevels = map[string]int{
	"PRICE_LEVEL_FREE":           0,
	"PRICE_LEVEL_INEXPENSIVE":    1,
	"PRICE_LEVEL_MODERATE":       2,
	"PRICE_LEVEL_EXPENSIVE":      3,
	"PRICE_LEVEL_VERY_EXPENSIVE": 4,
}

// cuisineTypes maps Places API type tags to display cuisines, checked in
// order so the more specific tags win.
var cuisineTypes = []struct {
	tag     string
	cuisine string
}{
	{"italian_restaurant", "Italian"},
	{"french_restaurant", "French"},
	{"mexican_restaurant", "Mexican"},
	{"chinese_restaurant", "Chinese"},
	{"japanese_restaurant", "Japanese"},
	{"sushi_restaurant", "Sushi"},
	{"thai_restaurant", "Thai"},
	{"indian_restaurant", "Indian"},
	{"mediterranean_restaurant", "Mediterranean"},
	{"barbecue_restaurant", "BBQ"},
	{"pizza_restaurant", "Pizza"},
	{"seafood_restaurant", "Seafood"},
	{"vegan_restaurant", "Vegan"},
	{"american_restaurant", "American"},
}

// PlacesClient talks to the Google Places API for both the restaurant
// roster (text search) and the per-event nearby lookup.
type PlacesClient struct {
	apiKey    string
	textURL   string
	nearbyURL string
	httpc     *http.Client
	geocoder  geocode.Geocoder
}

// NewPlaces creates a client from the GOOGLE_PLACES_API_KEY environment
// variable. The geocoder is used to resolve event locations before nearby
// searches.
func NewPlaces(geocoder geocode.Geocoder) (*PlacesClient, error) {
	apiKey := os.Getenv("GOOGLE_PLACES_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_PLACES_API_KEY environment variable not set")
	}
	return &PlacesClient{
		apiKey:    apiKey,
		textURL:   placesSearchTextAPI,
		nearbyURL: placesSearchNearbyAPI,
		httpc:     &http.Client{Timeout: 15 * time.Second},
		geocoder:  geocoder,
	}, nil
}

type place struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress string   `json:"formattedAddress"`
	Types            []string `json:"types"`
	Rating           *float64 `json:"rating"`
	PriceLevel       string   `json:"priceLevel"`
}

type placesResponse struct {
	Places []place `json:"places"`
}

// FetchRestaurants searches for restaurants in the given city. cuisines,
// when non-empty, become part of the text query, one search per cuisine.
func (c *PlacesClient) FetchRestaurants(city string, cuisines []string, count int) ([]domain.Restaurant, error) {
	queries := []string{"best restaurants in " + city}
	if len(cuisines) > 0 {
		queries = queries[:0]
		for _, cuisine := range cuisines {
			queries = append(queries, fmt.Sprintf("best %s restaurants in %s", cuisine, city))
		}
	}

	perQuery := count/len(queries) + 1
	restaurants := make([]domain.Restaurant, 0, count)
	for _, query := range queries {
		if len(restaurants) >= count {
			break
		}
		body := map[string]any{
			"textQuery":      query,
			"maxResultCount": min(perQuery, 20),
		}
		resp, err := c.search(c.textURL, body)
		if err != nil {
			return nil, fmt.Errorf("places text search %q: %w", query, err)
		}
		for _, p := range resp.Places {
			if len(restaurants) >= count {
				break
			}
			restaurants = append(restaurants, mapPlace(p, city, "Popular choice in "+city))
		}
	}
	return restaurants, nil
}

// FindNearby returns up to max restaurants around an event venue. Any
// failure, including an unresolvable location, degrades to an empty result.
func (c *PlacesClient) FindNearby(locationText, region string, max int) []domain.Restaurant {
	coords, ok := c.geocoder.Geocode(locationText, region)
	if !ok {
		return nil
	}

	body := map[string]any{
		"locationRestriction": map[string]any{
			"circle": map[string]any{
				"center": map[string]any{
					"latitude":  coords.Lat,
					"longitude": coords.Lon,
				},
				"radius": nearbyRadiusMeters,
			},
		},
		"includedTypes":  []string{"restaurant"},
		"maxResultCount": min(max, 20),
	}

	resp, err := c.search(c.nearbyURL, body)
	if err != nil {
		log.Warn().Err(err).Str("location", locationText).Msg("nearby restaurant search failed")
		return nil
	}

	restaurants := make([]domain.Restaurant, 0, max)
	for _, p := range resp.Places {
		if len(restaurants) >= max {
			break
		}
		r := mapPlace(p, locationText, "Near event location")
		if r.Address == "" {
			r.Address = locationText
		}
		restaurants = append(restaurants, r)
	}
	return restaurants
}

func (c *PlacesClient) search(endpoint string, body map[string]any) (*placesResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", placesFieldMask)

	httpResp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api error (status %d): %s", httpResp.StatusCode, string(respBody))
	}

	var resp placesResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &resp, nil
}

func mapPlace(p place, location, matchReason string) domain.Restaurant {
	name := p.DisplayName.Text
	if name == "" {
		name = "Unknown"
	}

	r := domain.Restaurant{
		Name:        name,
		Cuisine:     inferCuisine(p.Types),
		Address:     p.FormattedAddress,
		URL:         mapsURL(p.ID, name, location),
		MatchReason: matchReason,
		Rating:      p.Rating,
	}
	if level, ok := priceLevels[p.PriceLevel]; ok {
		r.PriceLevel = &level
	}
	return r
}

func inferCuisine(types []string) string {
	for _, mapping := range cuisineTypes {
		for _, t := range types {
			if t == mapping.tag {
				return mapping.cuisine
			}
		}
	}
	return "Restaurant"
}

// mapsURL builds a Google Maps link from the place id, falling back to a
// plain search URL.
func mapsURL(placeID, name, location string) string {
	if placeID != "" {
		return "https://www.google.com/maps/place/?q=place_id:" + placeID
	}
	return "https://www.google.com/search?q=" + url.QueryEscape(name) + "+" + url.QueryEscape(location)
}
