package pairing

import (
	"strings"
	"testing"

	"github.com/evcatalyst/happenstance/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestScoreCityExactMatch(t *testing.T) {
	event := domain.Event{Title: "Show", Location: "Main St, Troy, NY"}
	restaurant := domain.Restaurant{Name: "Spot", Address: "River St, Troy, NY"}

	score, reasons := Score(event, restaurant, nil, 0)
	if score != 10 {
		t.Errorf("score = %d, want 10", score)
	}
	if len(reasons) != 1 || reasons[0] != "Located in Troy" {
		t.Errorf("reasons = %v, want [Located in Troy]", reasons)
	}
}

func TestScoreCitySubstringMatch(t *testing.T) {
	event := domain.Event{Title: "Show", Location: "Downtown Troy, NY"}
	restaurant := domain.Restaurant{Name: "Spot", Address: "River St, Troy, NY"}

	score, reasons := Score(event, restaurant, nil, 0)
	if score != 5 {
		t.Errorf("score = %d, want 5", score)
	}
	if len(reasons) != 1 || reasons[0] != "Nearby in Downtown Troy area" {
		t.Errorf("reasons = %v, want [Nearby in Downtown Troy area]", reasons)
	}
}

func TestScoreDistanceTiers(t *testing.T) {
	event := domain.Event{Title: "Show"}
	restaurant := domain.Restaurant{Name: "Spot"}

	tests := []struct {
		distance   float64
		want       int
		wantReason string
	}{
		{0.3, 8, "0.3 mi - walking distance"},
		{1.0, 5, "1.0 mi - very close"},
		{2.4, 2, "2.4 mi away"},
		{5.0, 0, ""},
	}
	for _, tt := range tests {
		score, reasons := Score(event, restaurant, ptr(tt.distance), 0)
		if score != tt.want {
			t.Errorf("Score(distance=%v) = %d, want %d", tt.distance, score, tt.want)
		}
		if tt.wantReason == "" {
			if len(reasons) != 0 {
				t.Errorf("Score(distance=%v) reasons = %v, want none", tt.distance, reasons)
			}
		} else if len(reasons) != 1 || reasons[0] != tt.wantReason {
			t.Errorf("Score(distance=%v) reasons = %v, want [%s]", tt.distance, reasons, tt.wantReason)
		}
	}
}

func TestScoreVarietyPenalty(t *testing.T) {
	event := domain.Event{Title: "Show", Location: "Main St, Troy, NY"}
	restaurant := domain.Restaurant{Name: "Spot", Address: "River St, Troy, NY"}

	fresh, _ := Score(event, restaurant, nil, 0)
	reused, _ := Score(event, restaurant, nil, 2)
	if fresh-reused != 6 {
		t.Errorf("penalty for useCount=2 is %d, want 6", fresh-reused)
	}
}

func TestScoreCategoryCuisineBonuses(t *testing.T) {
	tests := []struct {
		name     string
		category string
		title    string
		cuisine  string
		want     int
	}{
		{"music italian", "live music", "Jazz Night", "Italian", 2},
		{"art french", "art", "Gallery Walk", "French", 2},
		{"sports bbq", "sports", "Fun Run", "BBQ", 2},
		{"music thai no bonus", "live music", "Jazz Night", "Thai", 0},
		{"no category", "", "Jazz Night", "Italian", 0},
	}
	for _, tt := range tests {
		event := domain.Event{Title: tt.title, Category: tt.category}
		restaurant := domain.Restaurant{Name: "Spot", Cuisine: tt.cuisine}
		if score, _ := Score(event, restaurant, nil, 0); score != tt.want {
			t.Errorf("%s: score = %d, want %d", tt.name, score, tt.want)
		}
	}
}

func TestScoreFamilyBonus(t *testing.T) {
	event := domain.Event{Title: "Family Picnic at the Park"}
	restaurant := domain.Restaurant{Name: "Slice", Cuisine: "Pizza"}

	score, reasons := Score(event, restaurant, nil, 0)
	if score != 2 {
		t.Errorf("score = %d, want 2", score)
	}
	if len(reasons) != 1 || reasons[0] != "Family-friendly pizza" {
		t.Errorf("reasons = %v, want [Family-friendly pizza]", reasons)
	}
}

func TestScoreEveningBonus(t *testing.T) {
	restaurant := domain.Restaurant{Name: "Midnight Sushi", Cuisine: "Sushi"}

	evening := domain.Event{Title: "Dinner", Date: "2026-09-05T20:00:00Z"}
	if score, _ := Score(evening, restaurant, nil, 0); score != 1 {
		t.Errorf("evening score = %d, want 1", score)
	}

	afternoon := domain.Event{Title: "Dinner", Date: "2026-09-05T14:00:00Z"}
	if score, _ := Score(afternoon, restaurant, nil, 0); score != 0 {
		t.Errorf("afternoon score = %d, want 0", score)
	}
}

func TestScoreMalformedDateIgnored(t *testing.T) {
	event := domain.Event{Title: "Dinner", Date: "next tuesday-ish"}
	restaurant := domain.Restaurant{Name: "Midnight Sushi", Cuisine: "Sushi"}

	if score, _ := Score(event, restaurant, nil, 0); score != 0 {
		t.Errorf("score = %d, want 0 for unparseable date", score)
	}
}

func TestScoreRating(t *testing.T) {
	event := domain.Event{Title: "Show"}

	high := domain.Restaurant{Name: "Spot", Rating: ptr(4.8)}
	score, reasons := Score(event, high, nil, 0)
	if score != 1 {
		t.Errorf("rating 4.8: score = %d, want 1", score)
	}
	if len(reasons) != 1 || reasons[0] != "4.8 star rating" {
		t.Errorf("rating 4.8: reasons = %v, want [4.8 star rating]", reasons)
	}

	mid := domain.Restaurant{Name: "Spot", Rating: ptr(4.5)}
	score, reasons = Score(event, mid, nil, 0)
	if score != 1 {
		t.Errorf("rating 4.5: score = %d, want 1", score)
	}
	if len(reasons) != 0 {
		t.Errorf("rating 4.5: reasons = %v, want none", reasons)
	}

	low := domain.Restaurant{Name: "Spot", Rating: ptr(4.0)}
	if score, _ = Score(event, low, nil, 0); score != 0 {
		t.Errorf("rating 4.0: score = %d, want 0", score)
	}
}

func TestScoreReasonsKeepRuleOrder(t *testing.T) {
	event := domain.Event{
		Title:    "Symphony Concert",
		Category: "live music",
		Location: "Main St, Troy, NY",
	}
	restaurant := domain.Restaurant{
		Name:    "Trattoria",
		Cuisine: "Italian",
		Address: "River St, Troy, NY",
		Rating:  ptr(4.9),
	}

	score, reasons := Score(event, restaurant, ptr(0.4), 0)
	if want := 10 + 8 + 2 + 1; score != want {
		t.Errorf("score = %d, want %d", score, want)
	}
	joined := strings.Join(reasons, "; ")
	want := "Located in Troy; 0.4 mi - walking distance; Italian pairs well with live music; 4.9 star rating"
	if joined != want {
		t.Errorf("reasons = %q, want %q", joined, want)
	}
}

func TestJoinReasons(t *testing.T) {
	tests := []struct {
		reasons  []string
		fallback string
		want     string
	}{
		{[]string{"a", "b"}, "stored", "a; b"},
		{nil, "stored", "stored"},
		{nil, "", "Quality dining option"},
	}
	for _, tt := range tests {
		if got := joinReasons(tt.reasons, tt.fallback); got != tt.want {
			t.Errorf("joinReasons(%v, %q) = %q, want %q", tt.reasons, tt.fallback, got, tt.want)
		}
	}
}
