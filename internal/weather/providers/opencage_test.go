package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weatherchat/weatherchat/internal/weather"
	"go.uber.org/zap/zaptest"
)

func TestOpenCageReturnsFirstResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Berlin", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Write([]byte(`{
			"results": [
				{"formatted": "Berlin, Germany", "geometry": {"lat": 52.517, "lng": 13.3889}},
				{"formatted": "Berlin, NH, United States", "geometry": {"lat": 44.47, "lng": -71.18}}
			]
		}`))
	}))
	defer server.Close()

	geo := NewOpenCage(testProviderConfig(server.URL), "oc-key", zaptest.NewLogger(t))

	loc, err := geo.Geocode(context.Background(), "Berlin")
	require.NoError(t, err)

	assert.Equal(t, "Berlin, Germany", loc.DisplayName)
	assert.InDelta(t, 52.517, loc.Latitude, 1e-9)
	assert.InDelta(t, 13.3889, loc.Longitude, 1e-9)
}

func TestOpenCageEmptyResultsIsLocationNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	geo := NewOpenCage(testProviderConfig(server.URL), "oc-key", zaptest.NewLogger(t))

	_, err := geo.Geocode(context.Background(), "Atlantis")

	var notFound *weather.LocationNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Atlantis", notFound.Query)
}

func TestOpenCageNonOKStatusIsProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer server.Close()

	geo := NewOpenCage(testProviderConfig(server.URL), "oc-key", zaptest.NewLogger(t))

	_, err := geo.Geocode(context.Background(), "Berlin")
	assert.ErrorIs(t, err, weather.ErrProviderUnavailable)
}

func TestOpenCageMissingKeyFailsBeforeRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("No request should be made without an API key")
	}))
	defer server.Close()

	geo := NewOpenCage(testProviderConfig(server.URL), "", zaptest.NewLogger(t))

	_, err := geo.Geocode(context.Background(), "Berlin")
	assert.ErrorIs(t, err, weather.ErrProviderUnavailable)
}
