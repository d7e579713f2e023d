package sources

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/evcatalyst/happenstance/internal/domain"
)

const ticketmasterAPI = "https://app.ticketmaster.com/discovery/v2/events.json"

// TicketmasterClient fetches events from the Ticketmaster Discovery API.
type TicketmasterClient struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// NewTicketmaster creates a client from the TICKETMASTER_API_KEY
// environment variable.
func NewTicketmaster() (*TicketmasterClient, error) {
	apiKey := os.Getenv("TICKETMASTER_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("TICKETMASTER_API_KEY environment variable not set")
	}
	return &TicketmasterClient{
		apiKey:  apiKey,
		baseURL: ticketmasterAPI,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type tmResponse struct {
	Embedded struct {
		Events []tmEvent `json:"events"`
	} `json:"_embedded"`
}

type tmEvent struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Dates struct {
		Start struct {
			DateTime string `json:"dateTime"`
		} `json:"start"`
	} `json:"dates"`
	Classifications []struct {
		Segment struct {
			Name string `json:"name"`
		} `json:"segment"`
	} `json:"classifications"`
	Embedded struct {
		Venues []struct {
			Name string `json:"name"`
			City struct {
				Name string `json:"name"`
			} `json:"city"`
			State struct {
				StateCode string `json:"stateCode"`
			} `json:"state"`
		} `json:"venues"`
	} `json:"_embedded"`
}

// FetchEvents returns upcoming events in the given city within the next
// daysAhead days. categories, when non-empty, narrow the search by
// classification name.
func (c *TicketmasterClient) FetchEvents(city string, categories []string, daysAhead, count int) ([]domain.Event, error) {
	now := time.Now().UTC()

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("city", city)
	params.Set("size", strconv.Itoa(count))
	params.Set("sort", "date,asc")
	params.Set("startDateTime", now.Format("2006-01-02T15:04:05Z"))
	params.Set("endDateTime", now.AddDate(0, 0, daysAhead).Format("2006-01-02T15:04:05Z"))
	if len(categories) > 0 {
		params.Set("classificationName", strings.Join(categories, ","))
	}

	body, err := getJSON(c.httpc, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("ticketmaster search: %w", err)
	}

	var resp tmResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal ticketmaster response: %w", err)
	}

	events := make([]domain.Event, 0, len(resp.Embedded.Events))
	for _, e := range resp.Embedded.Events {
		event := domain.Event{
			Title: e.Name,
			Date:  e.Dates.Start.DateTime,
			URL:   e.URL,
		}
		if len(e.Classifications) > 0 {
			event.Category = strings.ToLower(e.Classifications[0].Segment.Name)
		}
		if len(e.Embedded.Venues) > 0 {
			v := e.Embedded.Venues[0]
			event.Location = joinNonEmpty(", ", v.Name, v.City.Name, v.State.StateCode)
		}
		events = append(events, event)
	}
	return events, nil
}

// getJSON performs a GET with optional headers and returns the body, with
// non-2xx statuses reported as errors.
func getJSON(client *http.Client, rawURL string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
