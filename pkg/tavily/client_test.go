package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anything-labs/leadgen-cli/internal/resilience"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "test-key", payload["api_key"])
		assert.Equal(t, "plumbers in Denver", payload["query"])
		assert.Equal(t, "basic", payload["search_depth"])
		assert.Equal(t, float64(5), payload["max_results"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"results": [
				{"title": "Acme Plumbing | Denver", "url": "https://acme.example", "content": "...", "score": 0.93}
			]
		}`))
	}))
	defer srv.Close()

	c := New("test-key", WithBaseURL(srv.URL))
	resp, err := c.Search(context.Background(), "plumbers in Denver", 5)
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Acme Plumbing | Denver", resp.Results[0].Title)
	assert.Equal(t, "https://acme.example", resp.Results[0].URL)
	assert.Equal(t, 0.93, resp.Results[0].Score)
}

func TestSearch_TransientStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New("test-key", WithBaseURL(srv.URL))
	_, err := c.Search(context.Background(), "x", 0)
	require.Error(t, err)
	assert.True(t, resilience.IsTransient(err))
}

func TestSearch_PermanentStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := New("test-key", WithBaseURL(srv.URL))
	_, err := c.Search(context.Background(), "x", 0)
	require.Error(t, err)
	assert.False(t, resilience.IsTransient(err))
}
