package sources

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/evcatalyst/happenstance/internal/domain"
	"github.com/evcatalyst/happenstance/internal/prompting"
)

const perplexityAPI = "https://api.perplexity.ai/chat/completions"

// Environment variables holding curated JSON payloads. When set they take
// precedence over live AI search, which keeps CI and data-refresh scripts
// independent of the paid API.
const (
	aiEventsDataEnv      = "AI_EVENTS_DATA"
	aiRestaurantsDataEnv = "AI_RESTAURANTS_DATA"
)

// AIClient fetches events and restaurants via AI-powered web search.
type AIClient struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
}

// NewAI creates a client from the PERPLEXITY_API_KEY environment variable.
// Curated-data fallbacks still work without the key; the registry only
// constructs a client when a live search is actually needed.
func NewAI() (*AIClient, error) {
	apiKey := os.Getenv("PERPLEXITY_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("PERPLEXITY_API_KEY environment variable not set")
	}
	return &AIClient{
		apiKey:  apiKey,
		model:   "sonar",
		baseURL: perplexityAPI,
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// CuratedEvents returns the AI_EVENTS_DATA payload, when present.
func CuratedEvents() ([]domain.Event, bool) {
	raw := os.Getenv(aiEventsDataEnv)
	if raw == "" {
		return nil, false
	}
	var events []domain.Event
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		return nil, false
	}
	return events, true
}

// CuratedRestaurants returns the AI_RESTAURANTS_DATA payload, when present.
func CuratedRestaurants() ([]domain.Restaurant, bool) {
	raw := os.Getenv(aiRestaurantsDataEnv)
	if raw == "" {
		return nil, false
	}
	var restaurants []domain.Restaurant
	if err := json.Unmarshal([]byte(raw), &restaurants); err != nil {
		return nil, false
	}
	return restaurants, true
}

// FetchEvents runs an AI search for upcoming events in the region.
func (c *AIClient) FetchEvents(region, city string, categories []string, daysAhead, count int) ([]domain.Event, error) {
	prompt := prompting.EventSearchPrompt(region, city, categories, daysAhead, count)
	text, err := c.complete(prompt)
	if err != nil {
		return nil, fmt.Errorf("ai event search: %w", err)
	}

	var events []domain.Event
	if err := parsePayload(text, &events); err != nil {
		return nil, fmt.Errorf("ai event search: %w", err)
	}
	if len(events) > count {
		events = events[:count]
	}
	return events, nil
}

// FetchRestaurants runs an AI search for restaurants in the region.
func (c *AIClient) FetchRestaurants(region, city string, cuisines []string, count int) ([]domain.Restaurant, error) {
	prompt := prompting.RestaurantSearchPrompt(region, city, cuisines, count)
	text, err := c.complete(prompt)
	if err != nil {
		return nil, fmt.Errorf("ai restaurant search: %w", err)
	}

	var restaurants []domain.Restaurant
	if err := parsePayload(text, &restaurants); err != nil {
		return nil, fmt.Errorf("ai restaurant search: %w", err)
	}
	if len(restaurants) > count {
		restaurants = restaurants[:count]
	}
	return restaurants, nil
}

type aiRequest struct {
	Model    string      `json:"model"`
	Messages []aiMessage `json:"messages"`
}

type aiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type aiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *AIClient) complete(prompt string) (string, error) {
	reqBody := aiRequest{
		Model: c.model,
		Messages: []aiMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp aiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("api error: %s", apiResp.Error.Message)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("empty response")
	}

	return apiResp.Choices[0].Message.Content, nil
}

// parsePayload unmarshals a JSON payload from model output, tolerating
// markdown code fences around it.
func parsePayload(text string, out any) error {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	return nil
}
