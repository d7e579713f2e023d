package sources

import (
	"time"

	"github.com/evcatalyst/happenstance/internal/domain"
)

// FilterEventsByWindow keeps events dated between the start of today and
// now+days. Events whose date cannot be parsed pass through: fetching is
// best-effort and downstream scoring tolerates malformed dates.
func FilterEventsByWindow(events []domain.Event, days int, now time.Time) []domain.Event {
	start := now.UTC().Truncate(24 * time.Hour)
	end := now.UTC().AddDate(0, 0, days)

	kept := make([]domain.Event, 0, len(events))
	for _, event := range events {
		if event.Date == "" {
			kept = append(kept, event)
			continue
		}
		t, err := time.Parse(time.RFC3339, event.Date)
		if err != nil {
			kept = append(kept, event)
			continue
		}
		if t.Before(start) || t.After(end) {
			continue
		}
		kept = append(kept, event)
	}
	return kept
}
