package sources

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/evcatalyst/happenstance/internal/domain"
)

const eventbriteAPI = "https://www.eventbriteapi.com/v3/events/search/"

// EventbriteClient fetches events from the Eventbrite search API.
type EventbriteClient struct {
	token   string
	baseURL string
	httpc   *http.Client
}

// NewEventbrite creates a client from the EVENTBRITE_API_TOKEN environment
// variable.
func NewEventbrite() (*EventbriteClient, error) {
	token := os.Getenv("EVENTBRITE_API_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("EVENTBRITE_API_TOKEN environment variable not set")
	}
	return &EventbriteClient{
		token:   token,
		baseURL: eventbriteAPI,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type ebResponse struct {
	Events []ebEvent `json:"events"`
}

type ebEvent struct {
	Name struct {
		Text string `json:"text"`
	} `json:"name"`
	URL   string `json:"url"`
	Start struct {
		UTC string `json:"utc"`
	} `json:"start"`
	Category struct {
		Name string `json:"name"`
	} `json:"category"`
	Venue struct {
		Address struct {
			LocalizedAddressDisplay string `json:"localized_address_display"`
		} `json:"address"`
	} `json:"venue"`
}

// FetchEvents returns upcoming events near the given city within the next
// daysAhead days.
func (c *EventbriteClient) FetchEvents(city string, categories []string, daysAhead, count int) ([]domain.Event, error) {
	now := time.Now().UTC()

	params := url.Values{}
	params.Set("location.address", city)
	params.Set("start_date.range_start", now.Format("2006-01-02T15:04:05Z"))
	params.Set("start_date.range_end", now.AddDate(0, 0, daysAhead).Format("2006-01-02T15:04:05Z"))
	params.Set("expand", "venue,category")
	params.Set("sort_by", "date")
	if len(categories) > 0 {
		params.Set("q", strings.Join(categories, " "))
	}

	headers := map[string]string{"Authorization": "Bearer " + c.token}
	body, err := getJSON(c.httpc, c.baseURL+"?"+params.Encode(), headers)
	if err != nil {
		return nil, fmt.Errorf("eventbrite search: %w", err)
	}

	var resp ebResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal eventbrite response: %w", err)
	}

	events := make([]domain.Event, 0, len(resp.Events))
	for _, e := range resp.Events {
		if len(events) >= count {
			break
		}
		events = append(events, domain.Event{
			Title:    e.Name.Text,
			Category: strings.ToLower(e.Category.Name),
			Date:     e.Start.UTC,
			Location: e.Venue.Address.LocalizedAddressDisplay,
			URL:      e.URL,
		})
	}
	return events, nil
}
