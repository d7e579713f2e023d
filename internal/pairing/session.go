package pairing

import (
	"math"

	"github.com/evcatalyst/happenstance/internal/domain"
	"github.com/evcatalyst/happenstance/internal/geo"
	"github.com/evcatalyst/happenstance/internal/geocode"
)

// NearbyFunc fetches restaurants around an event venue. Implementations
// must degrade to an empty result instead of failing.
type NearbyFunc func(locationText, region string, max int) []domain.Restaurant

// maxNearbyPerEvent caps both the nearby fetch and the per-pairing summary.
const maxNearbyPerEvent = 3

// Session holds the state for one pairing run: a geocode cache keyed by
// the raw location string and the per-restaurant use counts behind the
// variety penalty. Sessions are single-use and not safe for concurrent
// access; pairing is sequential by design.
type Session struct {
	region   string
	geocoder geocode.Geocoder
	nearby   NearbyFunc

	// coords caches geocode outcomes per raw string. A nil entry records
	// that the lookup was attempted and failed, so each unique string is
	// geocoded at most once per run.
	coords   map[string]*geo.Coordinates
	useCount map[string]int
}

// NewSession creates a run-scoped pairing session. nearby may be nil when
// no nearby-restaurant provider is available.
func NewSession(region string, geocoder geocode.Geocoder, nearby NearbyFunc) *Session {
	return &Session{
		region:   region,
		geocoder: geocoder,
		nearby:   nearby,
		coords:   make(map[string]*geo.Coordinates),
		useCount: make(map[string]int),
	}
}

// resolve geocodes a location at most once per unique raw string. The raw
// string is the cache key on purpose; normalizing it would change caching
// behavior.
func (s *Session) resolve(location string) *geo.Coordinates {
	if location == "" {
		return nil
	}
	if cached, ok := s.coords[location]; ok {
		return cached
	}
	var entry *geo.Coordinates
	if c, ok := s.geocoder.Geocode(location, s.region); ok {
		entry = &c
	}
	s.coords[location] = entry
	return entry
}

// BuildPairings selects the best restaurant for each event, in input
// order. An empty roster short-circuits to no pairings at all.
func (s *Session) BuildPairings(events []domain.Event, restaurants []domain.Restaurant) []domain.Pairing {
	if len(restaurants) == 0 {
		return nil
	}

	pairings := make([]domain.Pairing, 0, len(events))
	for _, event := range events {
		eventCoords := s.resolve(event.Location)

		var nearby []domain.Restaurant
		if s.nearby != nil {
			nearby = s.nearby(event.Location, s.region, maxNearbyPerEvent)
		}

		// Nearby finds come first so they win score ties.
		pool := make([]domain.Restaurant, 0, len(nearby)+len(restaurants))
		pool = append(pool, nearby...)
		pool = append(pool, restaurants...)

		candidates := filterByCity(event.Location, pool)

		bestScore := math.MinInt
		var best *domain.Restaurant
		var bestReasons []string
		var bestDistance *float64

		for i := range candidates {
			candidate := &candidates[i]

			var distance *float64
			if eventCoords != nil && candidate.Address != "" {
				if restaurantCoords := s.resolve(candidate.Address); restaurantCoords != nil {
					d := geo.Distance(*eventCoords, *restaurantCoords)
					distance = &d
				}
			}

			score, reasons := Score(event, *candidate, distance, s.useCount[candidate.Name])
			if score > bestScore {
				bestScore = score
				best = candidate
				bestReasons = reasons
				bestDistance = distance
			}
		}

		if best != nil {
			s.useCount[best.Name]++
		}

		pairings = append(pairings, buildPairing(event, best, bestReasons, bestDistance, nearby))
	}
	return pairings
}

// filterByCity partitions the pool into same-city, boundary-matching-city,
// and other groups, returning the highest-priority non-empty group. City
// correctness is a hard gate: lower groups are never consulted while a
// higher one has candidates, regardless of score.
func filterByCity(eventLocation string, pool []domain.Restaurant) []domain.Restaurant {
	eventCity := geo.ExtractCity(eventLocation)

	var sameCity, boundaryCity, other []domain.Restaurant
	for _, restaurant := range pool {
		restaurantCity := geo.ExtractCity(restaurant.Address)
		switch {
		case eventCity == "" || restaurantCity == "":
			other = append(other, restaurant)
		case eventCity == restaurantCity:
			sameCity = append(sameCity, restaurant)
		case geo.CitiesMatch(eventCity, restaurantCity):
			boundaryCity = append(boundaryCity, restaurant)
		default:
			other = append(other, restaurant)
		}
	}

	for _, tier := range [][]domain.Restaurant{sameCity, boundaryCity, other} {
		if len(tier) > 0 {
			return tier
		}
	}
	return nil
}

func buildPairing(event domain.Event, best *domain.Restaurant, reasons []string, distance *float64, nearby []domain.Restaurant) domain.Pairing {
	pairing := domain.Pairing{
		Event:         event.Title,
		EventURL:      event.URL,
		EventDate:     event.Date,
		EventLocation: event.Location,
	}

	if best != nil {
		pairing.Restaurant = best.Name
		pairing.MatchReason = joinReasons(reasons, best.MatchReason)
		restaurantURL := best.URL
		pairing.RestaurantURL = &restaurantURL
	}

	if distance != nil {
		rounded := math.Round(*distance*10) / 10
		pairing.DistanceMiles = &rounded
	}

	for i, r := range nearby {
		if i >= maxNearbyPerEvent {
			break
		}
		pairing.Nearby = append(pairing.Nearby, domain.NearbySpot{
			Name:    r.Name,
			Cuisine: r.Cuisine,
			URL:     r.URL,
			Rating:  r.Rating,
		})
	}

	return pairing
}
