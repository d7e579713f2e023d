package domain

// Event represents a local happening pulled from one of the event sources.
// Events are input data and are never mutated by the pairing engine.
type Event struct {
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
	Date     string `json:"date,omitempty"` // ISO-8601 timestamp
	Location string `json:"location,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Restaurant represents a dining option. Name doubles as the identity key
// for variety tracking across a pairing run.
type Restaurant struct {
	Name        string   `json:"name"`
	Cuisine     string   `json:"cuisine,omitempty"`
	Address     string   `json:"address,omitempty"`
	URL         string   `json:"url,omitempty"`
	MatchReason string   `json:"match_reason,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	PriceLevel  *int     `json:"price_level,omitempty"`
}

// NearbySpot summarizes a restaurant found around an event venue.
type NearbySpot struct {
	Name    string   `json:"name"`
	Cuisine string   `json:"cuisine"`
	URL     string   `json:"url"`
	Rating  *float64 `json:"rating"`
}

// Pairing associates one event with its best-matching restaurant plus
// metadata. A pairing copies values out of the event and restaurant it
// references and is never mutated after creation.
type Pairing struct {
	Event         string       `json:"event"`
	Restaurant    string       `json:"restaurant"`
	MatchReason   string       `json:"match_reason"`
	EventURL      string       `json:"event_url,omitempty"`
	RestaurantURL *string      `json:"restaurant_url"`
	EventDate     string       `json:"event_date,omitempty"`
	EventLocation string       `json:"event_location,omitempty"`
	DistanceMiles *float64     `json:"distance_miles,omitempty"`
	Nearby        []NearbySpot `json:"nearby_restaurants,omitempty"`
}
