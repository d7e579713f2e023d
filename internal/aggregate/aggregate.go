// Package aggregate wires sources, pairing, and persistence into a single
// run: fetch the region's events and restaurants, pair them, and publish
// the result as flat JSON documents.
package aggregate

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/evcatalyst/happenstance/internal/config"
	"github.com/evcatalyst/happenstance/internal/domain"
	"github.com/evcatalyst/happenstance/internal/geocode"
	"github.com/evcatalyst/happenstance/internal/pairing"
	"github.com/evcatalyst/happenstance/internal/prompting"
	"github.com/evcatalyst/happenstance/internal/sources"
	"github.com/evcatalyst/happenstance/internal/store"
)

// MetaPayload is the meta.json document: everything a feed front-end needs
// beyond the raw collections.
type MetaPayload struct {
	GeneratedAt  string            `json:"generated_at"`
	RunID        string            `json:"run_id"`
	Profile      string            `json:"profile"`
	Region       string            `json:"region"`
	Branding     map[string]string `json:"branding"`
	PairingRules []string          `json:"pairing_rules"`
	Search       map[string]any    `json:"search"`
	GapBullets   []string          `json:"gap_bullets"`
	Events       store.ItemsMeta   `json:"events"`
	Restaurants  store.ItemsMeta   `json:"restaurants"`
	Pairings     []domain.Pairing  `json:"pairings"`
	Guidance     string            `json:"guidance"`
}

// Result is what one aggregation run produced.
type Result struct {
	Events      []domain.Event      `json:"events"`
	Restaurants []domain.Restaurant `json:"restaurants"`
	Meta        MetaPayload         `json:"meta"`
}

// Run executes a full aggregation pass for the configured profile and
// persists the output documents.
func Run(cfg *config.Config) (*Result, error) {
	docs, err := store.NewDocs(cfg.DocsDir)
	if err != nil {
		return nil, err
	}

	restaurants := sources.FetchRestaurants(cfg)
	now := time.Now().UTC()
	events := sources.FilterEventsByWindow(sources.FetchEvents(cfg), cfg.EventWindowDays, now)

	log.Info().
		Int("events", len(events)).
		Int("restaurants", len(restaurants)).
		Str("region", cfg.Region).
		Msg("aggregating")

	gapBullets := prompting.GapBullets(findGaps(cfg, events, restaurants))

	var previous MetaPayload
	if _, err := docs.Read(store.MetaDoc, &previous); err != nil {
		log.Warn().Err(err).Msg("previous meta unreadable, treating all data as new")
	}

	eventsMeta := store.ComputeMeta(events, previous.Events, now)
	restaurantsMeta := store.ComputeMeta(restaurants, previous.Restaurants, now)

	geocoder := geocode.NewClient()
	var nearby pairing.NearbyFunc
	if places, err := sources.NewPlaces(geocoder); err == nil {
		nearby = places.FindNearby
	}
	session := pairing.NewSession(cfg.Region, geocoder, nearby)

	meta := MetaPayload{
		GeneratedAt:  now.Format(time.RFC3339),
		RunID:        uuid.New().String(),
		Profile:      cfg.Profile,
		Region:       cfg.Region,
		Branding:     cfg.Branding,
		PairingRules: cfg.PairingRules,
		Search:       prompting.LiveSearchParams(cfg),
		GapBullets:   gapBullets,
		Events:       eventsMeta,
		Restaurants:  restaurantsMeta,
		Pairings:     session.BuildPairings(events, restaurants),
		Guidance:     prompting.MonthSpreadGuidance(),
	}

	if err := persist(docs, cfg, events, eventsMeta, restaurants, restaurantsMeta, meta); err != nil {
		return nil, err
	}

	return &Result{Events: events, Restaurants: restaurants, Meta: meta}, nil
}

// findGaps lists target cuisines and categories absent from the fetched
// data, in config order.
func findGaps(cfg *config.Config, events []domain.Event, restaurants []domain.Restaurant) []string {
	haveCuisines := make(map[string]bool, len(restaurants))
	for _, r := range restaurants {
		haveCuisines[r.Cuisine] = true
	}
	haveCategories := make(map[string]bool, len(events))
	for _, e := range events {
		haveCategories[e.Category] = true
	}

	var missing []string
	for _, cuisine := range cfg.TargetCuisines {
		if !haveCuisines[cuisine] {
			missing = append(missing, cuisine)
		}
	}
	for _, category := range cfg.TargetCategories {
		if !haveCategories[category] {
			missing = append(missing, category)
		}
	}
	return missing
}

func persist(
	docs *store.Docs,
	cfg *config.Config,
	events []domain.Event,
	eventsMeta store.ItemsMeta,
	restaurants []domain.Restaurant,
	restaurantsMeta store.ItemsMeta,
	meta MetaPayload,
) error {
	if err := docs.Write(store.EventsDoc, store.Collection[domain.Event]{Items: events, Meta: eventsMeta}); err != nil {
		return err
	}
	if err := docs.Write(store.RestaurantsDoc, store.Collection[domain.Restaurant]{Items: restaurants, Meta: restaurantsMeta}); err != nil {
		return err
	}
	configDoc := map[string]any{
		"branding":      cfg.Branding,
		"pairing_rules": cfg.PairingRules,
	}
	if err := docs.Write(store.ConfigDoc, configDoc); err != nil {
		return err
	}
	if err := docs.Write(store.MetaDoc, meta); err != nil {
		return err
	}
	return nil
}

// Describe renders a one-line summary for CLI output.
func Describe(r *Result) string {
	return fmt.Sprintf("%d events, %d restaurants, %d pairings", len(r.Events), len(r.Restaurants), len(r.Meta.Pairings))
}
