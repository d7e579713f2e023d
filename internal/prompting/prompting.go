// Package prompting builds the text blocks that drive AI-powered search and
// the editorial guidance embedded in the meta document.
package prompting

import (
	"fmt"
	"strings"

	"github.com/evcatalyst/happenstance/internal/config"
)

// EventSearchPrompt asks an AI search backend for upcoming events as a raw
// JSON array matching the Event shape.
func EventSearchPrompt(region, city string, categories []string, daysAhead, count int) string {
	var sb strings.Builder

	area := region
	if city != "" {
		area = city + ", " + region
	}

	fmt.Fprintf(&sb, "Find up to %d real upcoming events in %s over the next %d days. Return JSON only.\n\n", count, area, daysAhead)
	if len(categories) > 0 {
		sb.WriteString("Prefer these categories: " + strings.Join(categories, ", ") + ".\n\n")
	}
	sb.WriteString(`Return a JSON array with this structure:
[
  {"title": "Event Name", "category": "live music", "date": "2026-01-15T19:00:00+00:00", "location": "Venue, City, STATE", "url": "https://..."}
]

Rules:
- date must be an ISO-8601 timestamp
- location must end with "City, STATE" so the city can be extracted
- only include events you are confident actually exist

Return ONLY the JSON, no other text.`)

	return sb.String()
}

// RestaurantSearchPrompt asks an AI search backend for well-regarded
// restaurants as a raw JSON array matching the Restaurant shape.
func RestaurantSearchPrompt(region, city string, cuisines []string, count int) string {
	var sb strings.Builder

	area := region
	if city != "" {
		area = city + ", " + region
	}

	fmt.Fprintf(&sb, "Find up to %d well-regarded restaurants in %s. Return JSON only.\n\n", count, area)
	if len(cuisines) > 0 {
		sb.WriteString("Cover these cuisines where possible: " + strings.Join(cuisines, ", ") + ".\n\n")
	}
	sb.WriteString(`Return a JSON array with this structure:
[
  {"name": "Restaurant", "cuisine": "Italian", "address": "1 Main St, City, STATE", "url": "https://...", "match_reason": "Why it pairs well with a night out", "rating": 4.5, "price_level": 2}
]

Rules:
- address must end with "City, STATE" so the city can be extracted
- rating is 0-5, price_level is 0-4; omit either when unknown
- only include restaurants you are confident actually exist

Return ONLY the JSON, no other text.`)

	return sb.String()
}

// GapBullets turns cuisines and categories missing from the fetched data
// into editorial prompts for the next curation pass.
func GapBullets(missing []string) []string {
	bullets := make([]string, 0, len(missing))
	for _, m := range missing {
		if m == "" {
			continue
		}
		bullets = append(bullets, "- No current coverage for "+m+"; look for additions next run")
	}
	return bullets
}

// MonthSpreadGuidance is the standing editorial note carried in the meta
// document.
func MonthSpreadGuidance() string {
	return "Spread featured events across the coming month rather than clustering them in the first week, and rotate restaurant picks so no single spot dominates the feed."
}

// LiveSearchParams summarizes the configured search surface for consumers
// of the meta document.
func LiveSearchParams(cfg *config.Config) map[string]any {
	return map[string]any{
		"region":      cfg.Region,
		"cuisines":    cfg.TargetCuisines,
		"categories":  cfg.TargetCategories,
		"window_days": cfg.EventWindowDays,
	}
}
