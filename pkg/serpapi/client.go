// Package serpapi is a minimal SerpApi Google Maps search client.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/anything-labs/leadgen-cli/internal/resilience"
)

const defaultBaseURL = "https://serpapi.com"

// Client performs SerpApi Google Maps searches.
type Client interface {
	MapsSearch(ctx context.Context, query, location string, limit int) (*MapsSearchResponse, error)
}

// MapsSearchResponse is the subset of the SerpApi response we consume.
type MapsSearchResponse struct {
	LocalResults []LocalResult `json:"local_results"`
}

// LocalResult is a single Google Maps business result.
type LocalResult struct {
	Title          string          `json:"title"`
	Address        string          `json:"address"`
	Phone          string          `json:"phone"`
	Website        string          `json:"website"`
	Rating         *float64        `json:"rating,omitempty"`
	Reviews        *int            `json:"reviews,omitempty"`
	Type           string          `json:"type"`
	PlaceID        string          `json:"place_id"`
	GPSCoordinates *GPSCoordinates `json:"gps_coordinates,omitempty"`
}

// GPSCoordinates holds a result's position.
type GPSCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) { c.baseURL = u }
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// New creates a SerpApi client.
func New(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MapsSearch runs a Google Maps engine search for the query near location.
func (c *httpClient) MapsSearch(ctx context.Context, query, location string, limit int) (*MapsSearchResponse, error) {
	params := url.Values{}
	params.Set("engine", "google_maps")
	params.Set("q", fmt.Sprintf("%s in %s", query, location))
	params.Set("api_key", c.apiKey)
	if limit > 0 {
		params.Set("num", strconv.Itoa(limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: execute request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: read response")
	}

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("serpapi: status %d: %s", resp.StatusCode, truncate(body, 200))
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	var out MapsSearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, eris.Wrap(err, "serpapi: decode response")
	}
	return &out, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
