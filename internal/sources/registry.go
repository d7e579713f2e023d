package sources

import (
	"github.com/rs/zerolog/log"

	"github.com/evcatalyst/happenstance/internal/config"
	"github.com/evcatalyst/happenstance/internal/domain"
)

// FetchEvents returns events from the configured source. A provider that
// cannot be constructed or errors hard is logged and replaced by fixture
// data; aggregation always proceeds with something.
func FetchEvents(cfg *config.Config) []domain.Event {
	region := cfg.Region
	days := cfg.EventWindowDays

	switch cfg.DataSources.Events {
	case "", "fixtures":
		log.Info().Str("region", region).Msg("using fixture events")
		return FixtureEvents(region)

	case "ticketmaster":
		opts := cfg.Providers.Ticketmaster
		client, err := NewTicketmaster()
		if err != nil {
			return eventFallback(region, "ticketmaster", err)
		}
		events, err := client.FetchEvents(cityOrRegion(opts.City, region), cfg.TargetCategories, days, opts.Count)
		if err != nil {
			return eventFallback(region, "ticketmaster", err)
		}
		return events

	case "eventbrite":
		opts := cfg.Providers.Eventbrite
		client, err := NewEventbrite()
		if err != nil {
			return eventFallback(region, "eventbrite", err)
		}
		events, err := client.FetchEvents(cityOrRegion(opts.City, region), cfg.TargetCategories, days, opts.Count)
		if err != nil {
			return eventFallback(region, "eventbrite", err)
		}
		return events

	case "ai":
		if events, ok := CuratedEvents(); ok {
			log.Info().Int("count", len(events)).Msg("using curated AI event data")
			return events
		}
		opts := cfg.Providers.AI
		client, err := NewAI()
		if err != nil {
			return eventFallback(region, "ai", err)
		}
		events, err := client.FetchEvents(region, opts.City, cfg.TargetCategories, days, opts.EventCount)
		if err != nil {
			return eventFallback(region, "ai", err)
		}
		return events

	default:
		log.Warn().Str("source", cfg.DataSources.Events).Msg("unknown event source, using fixtures")
		return FixtureEvents(region)
	}
}

// FetchRestaurants returns the restaurant roster from the configured
// source, with the same fixture fallback as FetchEvents.
func FetchRestaurants(cfg *config.Config) []domain.Restaurant {
	region := cfg.Region

	switch cfg.DataSources.Restaurants {
	case "", "fixtures":
		log.Info().Str("region", region).Msg("using fixture restaurants")
		return FixtureRestaurants(region)

	case "google_places":
		opts := cfg.Providers.GooglePlaces
		client, err := NewPlaces(nil)
		if err != nil {
			return restaurantFallback(region, "google_places", err)
		}
		restaurants, err := client.FetchRestaurants(cityOrRegion(opts.City, region), cfg.TargetCuisines, opts.Count)
		if err != nil {
			return restaurantFallback(region, "google_places", err)
		}
		return restaurants

	case "ai":
		if restaurants, ok := CuratedRestaurants(); ok {
			log.Info().Int("count", len(restaurants)).Msg("using curated AI restaurant data")
			return restaurants
		}
		opts := cfg.Providers.AI
		client, err := NewAI()
		if err != nil {
			return restaurantFallback(region, "ai", err)
		}
		restaurants, err := client.FetchRestaurants(region, opts.City, cfg.TargetCuisines, opts.RestaurantCount)
		if err != nil {
			return restaurantFallback(region, "ai", err)
		}
		return restaurants

	default:
		log.Warn().Str("source", cfg.DataSources.Restaurants).Msg("unknown restaurant source, using fixtures")
		return FixtureRestaurants(region)
	}
}

func eventFallback(region, source string, err error) []domain.Event {
	log.Warn().Err(err).Str("source", source).Msg("event fetch failed, falling back to fixtures")
	return FixtureEvents(region)
}

func restaurantFallback(region, source string, err error) []domain.Restaurant {
	log.Warn().Err(err).Str("source", source).Msg("restaurant fetch failed, falling back to fixtures")
	return FixtureRestaurants(region)
}

func cityOrRegion(city, region string) string {
	if city != "" {
		return city
	}
	return region
}
