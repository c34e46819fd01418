package places

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

const (
	RadiusSearchURL = "http://www.mapquestapi.com/search/v2/radius"
	Radius          = 10
	MaxMatches      = 10
)

// ErrNoResultList is returned when a payload lacks the searchResults array,
// as with an API error object.
var ErrNoResultList = errors.New("response has no searchResults")

// Sentinels shown in place of empty result fields.
const (
	NoCategory = "no category"
	NoAddress  = "no address"
	NoCity     = "no city"
)

// Getter returns the body for a URL, typically from the response cache.
type Getter interface {
	Get(url string) (string, error)
}

// Fields holds the per-result attributes returned by the API.
type Fields struct {
	Category string `json:"group_sic_code_name"`
	Address  string `json:"address"`
	City     string `json:"city"`
}

// Place is one search result.
type Place struct {
	Name   string `json:"name"`
	Fields Fields `json:"fields"`
}

// CategoryOrDefault returns the category, or NoCategory when empty.
func (p Place) CategoryOrDefault() string {
	return orDefault(p.Fields.Category, NoCategory)
}

// AddressOrDefault returns the street address, or NoAddress when empty.
func (p Place) AddressOrDefault() string {
	return orDefault(p.Fields.Address, NoAddress)
}

// CityOrDefault returns the city, or NoCity when empty.
func (p Place) CityOrDefault() string {
	return orDefault(p.Fields.City, NoCity)
}

// Line renders the place as "- <name> (<category>): <address>, <city>".
func (p Place) Line() string {
	return fmt.Sprintf("- %s (%s): %s, %s", p.Name, p.CategoryOrDefault(), p.AddressOrDefault(), p.CityOrDefault())
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// searchResponse is the subset of the radius search payload we read.
type searchResponse struct {
	SearchResults *[]Place `json:"searchResults"`
}

// Client queries the radius search API.
type Client struct {
	apiKey  string
	baseURL string
	getter  Getter
}

// NewClient creates a client that fetches through getter.
func NewClient(apiKey string, getter Getter) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: RadiusSearchURL,
		getter:  getter,
	}
}

// QueryURL builds the request URL for postalCode. Parameter order is fixed
// so the URL is a stable cache key.
func (c *Client) QueryURL(postalCode string) string {
	return fmt.Sprintf("%s?origin=%s&radius=%d&maxMatches=%d&ambiguities=ignore&outFormat=json&key=%s",
		c.baseURL, url.QueryEscape(postalCode), Radius, MaxMatches, url.QueryEscape(c.apiKey))
}

// FindNearby returns up to MaxMatches places within Radius miles of postalCode.
func (c *Client) FindNearby(postalCode string) ([]Place, error) {
	if postalCode == "" {
		return nil, errors.New("postal code is required")
	}

	body, err := c.getter.Get(c.QueryURL(postalCode))
	if err != nil {
		return nil, fmt.Errorf("searching places: %w", err)
	}

	var result searchResponse
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	if result.SearchResults == nil {
		return nil, ErrNoResultList
	}

	return *result.SearchResults, nil
}
