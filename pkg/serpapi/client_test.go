package serpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anything-labs/leadgen-cli/internal/resilience"
)

func TestMapsSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "google_maps", q.Get("engine"))
		assert.Equal(t, "restaurants in Austin, TX", q.Get("q"))
		assert.Equal(t, "test-key", q.Get("api_key"))
		assert.Equal(t, "5", q.Get("num"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"local_results": [
				{
					"title": "Joe's Diner",
					"address": "123 Main St",
					"phone": "512-555-0100",
					"rating": 4.1,
					"reviews": 52,
					"type": "restaurant",
					"place_id": "p1",
					"gps_coordinates": {"latitude": 30.27, "longitude": -97.74}
				}
			]
		}`))
	}))
	defer srv.Close()

	c := New("test-key", WithBaseURL(srv.URL))
	resp, err := c.MapsSearch(context.Background(), "restaurants", "Austin, TX", 5)
	require.NoError(t, err)

	require.Len(t, resp.LocalResults, 1)
	lr := resp.LocalResults[0]
	assert.Equal(t, "Joe's Diner", lr.Title)
	require.NotNil(t, lr.Rating)
	assert.Equal(t, 4.1, *lr.Rating)
	require.NotNil(t, lr.Reviews)
	assert.Equal(t, 52, *lr.Reviews)
	require.NotNil(t, lr.GPSCoordinates)
	assert.Equal(t, 30.27, lr.GPSCoordinates.Latitude)
}

func TestMapsSearch_TransientStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New("test-key", WithBaseURL(srv.URL))
	_, err := c.MapsSearch(context.Background(), "x", "y", 0)
	require.Error(t, err)
	assert.True(t, resilience.IsTransient(err))
}

func TestMapsSearch_PermanentStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New("bad-key", WithBaseURL(srv.URL))
	_, err := c.MapsSearch(context.Background(), "x", "y", 0)
	require.Error(t, err)
	assert.False(t, resilience.IsTransient(err))
	assert.Contains(t, err.Error(), "status 401")
}

func TestMapsSearch_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := New("test-key", WithBaseURL(srv.URL))
	_, err := c.MapsSearch(context.Background(), "x", "y", 0)
	assert.ErrorContains(t, err, "decode response")
}
