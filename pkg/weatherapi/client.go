// Package weatherapi wraps an open-meteo style current-weather endpoint.
// No API key is required; the base URL is injectable for tests.
package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.open-meteo.com"

// Current is one current-weather observation.
type Current struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
	Time        string  `json:"time"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithBaseURL points the client at a different endpoint, used by tests.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentWeather fetches the current conditions at the given coordinates.
func (c *Client) CurrentWeather(ctx context.Context, latitude, longitude float64) (*Current, error) {
	if latitude < -90 || latitude > 90 {
		return nil, fmt.Errorf("latitude %g out of range [-90, 90]", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return nil, fmt.Errorf("longitude %g out of range [-180, 180]", longitude)
	}

	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	query.Set("current_weather", "true")

	endpoint := c.baseURL + "/v1/forecast?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather service returned status %d", resp.StatusCode)
	}

	var body struct {
		CurrentWeather *Current `json:"current_weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if body.CurrentWeather == nil {
		return nil, fmt.Errorf("response missing current_weather")
	}
	return body.CurrentWeather, nil
}
