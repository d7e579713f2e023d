package sources

import (
	"testing"
	"time"

	"github.com/evcatalyst/happenstance/internal/domain"
)

func TestFilterEventsByWindow(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)
	events := []domain.Event{
		{Title: "Earlier Today", Date: "2026-08-29T10:00:00Z"},
		{Title: "Next Week", Date: "2026-09-04T19:00:00Z"},
		{Title: "Last Month", Date: "2026-07-20T19:00:00Z"},
		{Title: "Far Future", Date: "2026-12-25T19:00:00Z"},
		{Title: "No Date"},
		{Title: "Bad Date", Date: "sometime soon"},
	}

	kept := FilterEventsByWindow(events, 30, now)

	want := []string{"Earlier Today", "Next Week", "No Date", "Bad Date"}
	if len(kept) != len(want) {
		t.Fatalf("kept %d events, want %d", len(kept), len(want))
	}
	for i, title := range want {
		if kept[i].Title != title {
			t.Errorf("kept[%d] = %q, want %q", i, kept[i].Title, title)
		}
	}
}

func TestFilterEventsByWindowBoundary(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)
	events := []domain.Event{
		{Title: "Window Edge", Date: "2026-09-28T15:00:00Z"},
		{Title: "Past Edge", Date: "2026-09-28T15:00:01Z"},
	}

	kept := FilterEventsByWindow(events, 30, now)
	if len(kept) != 1 || kept[0].Title != "Window Edge" {
		t.Errorf("kept = %v, want only Window Edge", titles(kept))
	}
}

func titles(events []domain.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Title
	}
	return out
}
