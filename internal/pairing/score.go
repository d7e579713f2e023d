// Package pairing matches events with restaurants. A Session holds the
// run-scoped state (geocode cache, per-restaurant use counts) and drives
// the tiered candidate filtering and greedy best-score selection; Score is
// the pure compatibility function underneath it.
package pairing

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/evcatalyst/happenstance/internal/domain"
	"github.com/evcatalyst/happenstance/internal/geo"
)

const (
	// Events starting at or after this hour (24h) count as evening.
	eveningHour = 19

	// Points deducted per previous selection of the same restaurant.
	varietyPenaltyPerUse = 3

	// defaultReason is used when no scoring rule produced a reason and the
	// restaurant carries no stored one.
	defaultReason = "Quality dining option"
)

// Score computes the compatibility of an event and a restaurant. The
// distance is optional; useCount is how many times the restaurant was
// already selected this run. Rules are additive and evaluated
// independently; the returned reasons keep rule order.
func Score(event domain.Event, restaurant domain.Restaurant, distanceMiles *float64, useCount int) (int, []string) {
	score := 0
	var reasons []string

	category := strings.ToLower(event.Category)
	title := strings.ToLower(event.Title)
	cuisine := strings.ToLower(restaurant.Cuisine)

	eventCity := geo.ExtractCity(event.Location)
	restaurantCity := geo.ExtractCity(restaurant.Address)

	// City match outweighs everything else when distance is unavailable.
	if eventCity != "" && restaurantCity != "" {
		switch {
		case eventCity == restaurantCity:
			score += 10
			reasons = append(reasons, "Located in "+titleCase(eventCity))
		case strings.Contains(restaurantCity, eventCity) || strings.Contains(eventCity, restaurantCity):
			score += 5
			reasons = append(reasons, "Nearby in "+titleCase(eventCity)+" area")
		}
	}

	if distanceMiles != nil {
		switch d := *distanceMiles; {
		case d < 0.5:
			score += 8
			reasons = append(reasons, fmt.Sprintf("%.1f mi - walking distance", d))
		case d < 1.5:
			score += 5
			reasons = append(reasons, fmt.Sprintf("%.1f mi - very close", d))
		case d < 3.0:
			score += 2
			reasons = append(reasons, fmt.Sprintf("%.1f mi away", d))
		}
	}

	if useCount > 0 {
		score -= useCount * varietyPenaltyPerUse
	}

	if category != "" && cuisine != "" {
		if strings.Contains(category, "music") || strings.Contains(title, "concert") || strings.Contains(title, "orchestra") {
			if containsAny(cuisine, "american", "italian", "mediterranean", "sushi") {
				score += 2
				reasons = append(reasons, titleCase(cuisine)+" pairs well with live music")
			}
		}
		if strings.Contains(category, "art") || strings.Contains(title, "gallery") || strings.Contains(title, "museum") {
			if containsAny(cuisine, "italian", "french", "contemporary", "american") {
				score += 2
				reasons = append(reasons, "Upscale "+cuisine+" for art events")
			}
		}
		if strings.Contains(category, "sports") {
			if containsAny(cuisine, "american", "bbq", "pizza", "mexican") {
				score += 2
				reasons = append(reasons, titleCase(cuisine)+" is great sports event food")
			}
		}
	}

	if strings.Contains(title, "family") || strings.Contains(title, "kids") || strings.Contains(category, "family") {
		if containsAny(cuisine, "pizza", "american", "italian", "mexican") {
			score += 2
			reasons = append(reasons, "Family-friendly "+cuisine)
		}
	}

	// Evening events favor spots that stay open late. A malformed date
	// simply means the bonus does not apply.
	if event.Date != "" {
		if t, err := time.Parse(time.RFC3339, event.Date); err == nil && t.Hour() >= eveningHour {
			if strings.Contains(cuisine, "sushi") || strings.Contains(cuisine, "asian") {
				score++
				reasons = append(reasons, titleCase(cuisine)+" open for evening dining")
			}
		}
	}

	if restaurant.Rating != nil {
		switch rating := *restaurant.Rating; {
		case rating >= 4.7:
			score++
			reasons = append(reasons, fmt.Sprintf("%.1f star rating", rating))
		case rating >= 4.5:
			score++
		}
	}

	return score, reasons
}

// joinReasons renders the reason clauses for output, falling back to the
// restaurant's stored reason or the generic default when nothing fired.
func joinReasons(reasons []string, fallback string) string {
	if len(reasons) == 0 {
		if fallback == "" {
			return defaultReason
		}
		return fallback
	}
	return strings.Join(reasons, "; ")
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
