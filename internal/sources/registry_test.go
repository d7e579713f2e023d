package sources

import (
	"testing"

	"github.com/evcatalyst/happenstance/internal/config"
)

func TestFetchEventsDefaultsToFixtures(t *testing.T) {
	cfg := &config.Config{Region: "Capital Region", EventWindowDays: 30}

	events := FetchEvents(cfg)
	if len(events) != 4 {
		t.Errorf("got %d events, want 4 fixtures", len(events))
	}
}

func TestFetchEventsUnknownSourceFallsBack(t *testing.T) {
	cfg := &config.Config{Region: "Capital Region", EventWindowDays: 30}
	cfg.DataSources.Events = "carrier-pigeon"

	events := FetchEvents(cfg)
	if len(events) != 4 {
		t.Errorf("got %d events, want 4 fixtures for unknown source", len(events))
	}
}

func TestFetchEventsMissingKeyFallsBack(t *testing.T) {
	t.Setenv("TICKETMASTER_API_KEY", "")
	cfg := &config.Config{Region: "Capital Region", EventWindowDays: 30}
	cfg.DataSources.Events = "ticketmaster"

	events := FetchEvents(cfg)
	if len(events) != 4 {
		t.Errorf("got %d events, want 4 fixtures when no API key is set", len(events))
	}
}

func TestFetchRestaurantsCurated(t *testing.T) {
	t.Setenv(aiRestaurantsDataEnv, `[{"name":"Peck's Arcade","cuisine":"Contemporary","address":"217 Broadway, Troy, NY"}]`)
	cfg := &config.Config{Region: "Capital Region"}
	cfg.DataSources.Restaurants = "ai"

	restaurants := FetchRestaurants(cfg)
	if len(restaurants) != 1 || restaurants[0].Name != "Peck's Arcade" {
		t.Errorf("restaurants = %+v, want the curated entry", restaurants)
	}
}

func TestFetchRestaurantsMissingKeyFallsBack(t *testing.T) {
	t.Setenv("GOOGLE_PLACES_API_KEY", "")
	cfg := &config.Config{Region: "Capital Region"}
	cfg.DataSources.Restaurants = "google_places"

	restaurants := FetchRestaurants(cfg)
	if len(restaurants) != 4 {
		t.Errorf("got %d restaurants, want 4 fixtures when no API key is set", len(restaurants))
	}
}

func TestCityOrRegion(t *testing.T) {
	if got := cityOrRegion("Troy", "Capital Region"); got != "Troy" {
		t.Errorf("cityOrRegion = %q, want Troy", got)
	}
	if got := cityOrRegion("", "Capital Region"); got != "Capital Region" {
		t.Errorf("cityOrRegion = %q, want Capital Region", got)
	}
}
