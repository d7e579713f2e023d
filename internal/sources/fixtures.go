// Package sources fetches event and restaurant data from the configured
// providers: static fixtures, Ticketmaster, Eventbrite, Google Places, and
// AI-powered search. Every provider returns plain domain records; the
// pairing engine never knows which one populated them.
package sources

import (
	"time"

	"github.com/evcatalyst/happenstance/internal/domain"
)

// FixtureRestaurants returns a small built-in roster seeded with the
// region name. Used when no provider is configured or a provider fails.
func FixtureRestaurants(region string) []domain.Restaurant {
	return []domain.Restaurant{
		{
			Name:        "Blue Harbor Grill",
			Cuisine:     "Seafood",
			Address:     region + " Waterfront",
			URL:         "https://example.com/blue-harbor",
			MatchReason: "Great before a waterfront concert",
		},
		{
			Name:        "Sunset Pasta",
			Cuisine:     "Italian",
			Address:     region + " Arts District",
			URL:         "https://example.com/sunset-pasta",
			MatchReason: "Close to the gallery walk",
		},
		{
			Name:        "Midnight Sushi",
			Cuisine:     "Sushi",
			Address:     region + " Downtown",
			URL:         "https://example.com/midnight-sushi",
			MatchReason: "Open late after live music",
		},
		{
			Name:        "Firepit BBQ",
			Cuisine:     "BBQ",
			Address:     region + " Market",
			URL:         "https://example.com/firepit-bbq",
			MatchReason: "Perfect for families near the park",
		},
	}
}

// FixtureEvents returns a built-in slate of upcoming events spread over the
// next two weeks, all dated at noon UTC.
func FixtureEvents(region string) []domain.Event {
	noon := time.Now().UTC().Truncate(24 * time.Hour).Add(12 * time.Hour)
	return []domain.Event{
		{
			Title:    "Waterfront Jazz Night",
			Category: "live music",
			Date:     noon.AddDate(0, 0, 2).Format(time.RFC3339),
			Location: region + " Waterfront Stage",
			URL:      "https://example.com/jazz-night",
		},
		{
			Title:    "Gallery Walk",
			Category: "art",
			Date:     noon.AddDate(0, 0, 5).Format(time.RFC3339),
			Location: region + " Arts District",
			URL:      "https://example.com/gallery-walk",
		},
		{
			Title:    "Family Picnic at the Park",
			Category: "family",
			Date:     noon.AddDate(0, 0, 7).Format(time.RFC3339),
			Location: region + " Central Park",
			URL:      "https://example.com/family-picnic",
		},
		{
			Title:    "City Fun Run",
			Category: "sports",
			Date:     noon.AddDate(0, 0, 15).Format(time.RFC3339),
			Location: region + " River Trail",
			URL:      "https://example.com/city-fun-run",
		},
	}
}
