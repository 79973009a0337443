package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDirections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/maps/api/directions/json", r.URL.Path)
		assert.Equal(t, "Madrid", r.URL.Query().Get("origin"))
		assert.Equal(t, "Sevilla", r.URL.Query().Get("destination"))
		assert.Equal(t, "k", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"routes": [{
				"legs": [{
					"start_address": "Madrid, Spain",
					"end_address": "Sevilla, Spain",
					"distance": {"text": "531 km"},
					"duration": {"text": "5 hours 2 mins"}
				}]
			}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", zap.NewNop())
	summary, err := client.Directions(context.Background(), "Madrid", "Sevilla")
	require.NoError(t, err)

	assert.Equal(t, "Madrid, Spain", summary.Origin)
	assert.Equal(t, "Sevilla, Spain", summary.Destination)
	assert.Equal(t, "531 km", summary.Distance)
	assert.Equal(t, "5 hours 2 mins", summary.Duration)
}

func TestDirections_NoRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"routes": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", zap.NewNop())
	_, err := client.Directions(context.Background(), "nowhere", "elsewhere")
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestDirections_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key", zap.NewNop())
	_, err := client.Directions(context.Background(), "a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestReverseGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		w.Write([]byte(`{"results": [{"formatted_address": "Gran Via 1, Madrid"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", zap.NewNop())
	address, err := client.ReverseGeocode(context.Background(), 40.42, -3.70)
	require.NoError(t, err)
	assert.Equal(t, "Gran Via 1, Madrid", address)
}

func TestReverseGeocode_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", zap.NewNop())
	_, err := client.ReverseGeocode(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrNoResults)
}
