package aggregate

import (
	"path/filepath"
	"testing"

	"github.com/evcatalyst/happenstance/internal/config"
	"github.com/evcatalyst/happenstance/internal/domain"
	"github.com/evcatalyst/happenstance/internal/store"
)

func TestFindGaps(t *testing.T) {
	cfg := &config.Config{
		TargetCuisines:   []string{"Italian", "Sushi", "BBQ"},
		TargetCategories: []string{"live music", "family"},
	}
	events := []domain.Event{{Title: "Jazz Night", Category: "live music"}}
	restaurants := []domain.Restaurant{
		{Name: "Sunset Pasta", Cuisine: "Italian"},
		{Name: "Firepit BBQ", Cuisine: "BBQ"},
	}

	got := findGaps(cfg, events, restaurants)
	want := []string{"Sushi", "family"}
	if len(got) != len(want) {
		t.Fatalf("findGaps = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("findGaps[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFindGapsNoTargets(t *testing.T) {
	cfg := &config.Config{}
	if got := findGaps(cfg, nil, nil); len(got) != 0 {
		t.Errorf("findGaps = %v, want none without targets", got)
	}
}

func TestPersistWritesAllDocuments(t *testing.T) {
	docs, err := store.NewDocs(filepath.Join(t.TempDir(), "docs"))
	if err != nil {
		t.Fatalf("NewDocs returned %v", err)
	}

	cfg := &config.Config{
		Branding:     map[string]string{"title": "Weekend Pairings"},
		PairingRules: []string{"Same-city restaurants are strongly preferred"},
	}
	events := []domain.Event{{Title: "Jazz Night"}}
	restaurants := []domain.Restaurant{{Name: "Sunset Pasta"}}
	meta := MetaPayload{RunID: "run-1", Region: "Capital Region, NY"}

	err = persist(docs, cfg, events, store.ItemsMeta{Count: 1}, restaurants, store.ItemsMeta{Count: 1}, meta)
	if err != nil {
		t.Fatalf("persist returned %v", err)
	}

	var eventsDoc store.Collection[domain.Event]
	if found, err := docs.Read(store.EventsDoc, &eventsDoc); err != nil || !found {
		t.Fatalf("events doc: found=%v err=%v", found, err)
	}
	if len(eventsDoc.Items) != 1 || eventsDoc.Items[0].Title != "Jazz Night" {
		t.Errorf("events doc items = %+v", eventsDoc.Items)
	}

	var restaurantsDoc store.Collection[domain.Restaurant]
	if found, err := docs.Read(store.RestaurantsDoc, &restaurantsDoc); err != nil || !found {
		t.Fatalf("restaurants doc: found=%v err=%v", found, err)
	}

	var configDoc map[string]any
	if found, err := docs.Read(store.ConfigDoc, &configDoc); err != nil || !found {
		t.Fatalf("config doc: found=%v err=%v", found, err)
	}
	branding, ok := configDoc["branding"].(map[string]any)
	if !ok || branding["title"] != "Weekend Pairings" {
		t.Errorf("config doc branding = %v", configDoc["branding"])
	}

	var metaDoc MetaPayload
	if found, err := docs.Read(store.MetaDoc, &metaDoc); err != nil || !found {
		t.Fatalf("meta doc: found=%v err=%v", found, err)
	}
	if metaDoc.RunID != "run-1" {
		t.Errorf("meta doc RunID = %q, want run-1", metaDoc.RunID)
	}
}

func TestDescribe(t *testing.T) {
	r := &Result{
		Events:      []domain.Event{{}, {}},
		Restaurants: []domain.Restaurant{{}},
		Meta:        MetaPayload{Pairings: []domain.Pairing{{}, {}}},
	}
	if got, want := Describe(r), "2 events, 1 restaurants, 2 pairings"; got != want {
		t.Errorf("Describe = %q, want %q", got, want)
	}
}
