package sources

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParsePayloadCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"bare", `[{"title":"Jazz Night"}]`},
		{"fenced", "```json\n[{\"title\":\"Jazz Night\"}]\n```"},
		{"plain fence", "```\n[{\"title\":\"Jazz Night\"}]\n```"},
		{"padded", "  [{\"title\":\"Jazz Night\"}]  "},
	}
	for _, tt := range tests {
		var events []struct {
			Title string `json:"title"`
		}
		if err := parsePayload(tt.in, &events); err != nil {
			t.Errorf("%s: parsePayload returned %v", tt.name, err)
			continue
		}
		if len(events) != 1 || events[0].Title != "Jazz Night" {
			t.Errorf("%s: parsed %+v, want one Jazz Night entry", tt.name, events)
		}
	}
}

func TestParsePayloadRejectsProse(t *testing.T) {
	var events []struct{}
	if err := parsePayload("Here are some events you might like:", &events); err == nil {
		t.Error("parsePayload accepted prose, want error")
	}
}

func TestCuratedEvents(t *testing.T) {
	t.Setenv(aiEventsDataEnv, `[{"title":"Troy Night Market","category":"market"}]`)

	events, ok := CuratedEvents()
	if !ok {
		t.Fatal("CuratedEvents returned ok=false with data set")
	}
	if len(events) != 1 || events[0].Title != "Troy Night Market" {
		t.Errorf("events = %+v, want the curated entry", events)
	}
}

func TestCuratedEventsUnset(t *testing.T) {
	t.Setenv(aiEventsDataEnv, "")

	if _, ok := CuratedEvents(); ok {
		t.Error("CuratedEvents returned ok=true with no data set")
	}
}

func TestCuratedEventsMalformed(t *testing.T) {
	t.Setenv(aiEventsDataEnv, "{not json")

	if _, ok := CuratedEvents(); ok {
		t.Error("CuratedEvents returned ok=true for malformed data")
	}
}

func TestAIFetchEvents(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q, want Bearer test-key", auth)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"` + "```json\\n" +
			`[{\"title\":\"Jazz Night\",\"category\":\"live music\"},{\"title\":\"Gallery Walk\",\"category\":\"art\"}]` +
			"\\n```" + `"}}]}`))
	}))
	defer ts.Close()

	c := &AIClient{
		apiKey:  "test-key",
		model:   "sonar",
		baseURL: ts.URL,
		httpc:   &http.Client{Timeout: time.Second},
	}

	events, err := c.FetchEvents("Capital Region", "Troy", []string{"music"}, 30, 1)
	if err != nil {
		t.Fatalf("FetchEvents returned %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 (capped at count)", len(events))
	}
	if events[0].Title != "Jazz Night" {
		t.Errorf("events[0].Title = %q, want Jazz Night", events[0].Title)
	}
}

func TestAIFetchEventsAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[],"error":{"message":"rate limited"}}`))
	}))
	defer ts.Close()

	c := &AIClient{
		apiKey:  "test-key",
		model:   "sonar",
		baseURL: ts.URL,
		httpc:   &http.Client{Timeout: time.Second},
	}

	if _, err := c.FetchEvents("Capital Region", "", nil, 30, 5); err == nil {
		t.Error("FetchEvents returned nil error for an API error payload")
	}
}
