package providers

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/weatherchat/weatherchat/internal/config"
	"github.com/weatherchat/weatherchat/internal/weather"
	"go.uber.org/zap/zaptest"
)

var testNow = time.Date(2024, 9, 23, 9, 0, 0, 0, time.UTC)

func testProviderConfig(baseURL string) config.ProvidersConfig {
	return config.ProvidersConfig{
		MeteoblueBaseURL:      baseURL,
		VisualCrossingBaseURL: baseURL,
		OpenCageBaseURL:       baseURL,
		Timeout:               5,
	}
}

// series7d builds a 7x24 hourly array where the hours of wantDay carry value
// and every other hour carries filler.
func series7d(wantDay int, value, filler float64) []float64 {
	out := make([]float64, 7*24)
	for i := range out {
		out[i] = filler
		if i >= wantDay*24 && i < (wantDay+1)*24 {
			out[i] = value
		}
	}
	return out
}

func TestMeteoblueAggregatesCorrectDaySlice(t *testing.T) {
	const day = 2

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") != "mb-key" {
			t.Errorf("Expected apikey query param, got %q", r.URL.Query().Get("apikey"))
		}
		payload := map[string]interface{}{
			"data_1h": map[string]interface{}{
				"temperature":      series7d(day, 10, 99),
				"windspeed":        series7d(day, 20, 99),
				"winddirection":    series7d(day, 180, 99),
				"precipitation":    series7d(day, 0.5, 99),
				"snowfall":         series7d(day, 0.25, 99),
				"relativehumidity": series7d(day, 80, 99),
				"pressure":         series7d(day, 1010, 99),
				"cloudcover":       series7d(day, 40, 99),
			},
		}
		json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	mb := NewMeteoblue(testProviderConfig(server.URL), "mb-key", zaptest.NewLogger(t))

	date := testNow.AddDate(0, 0, day)
	obs, err := mb.DailyForecast(context.Background(), weather.Location{Latitude: 52.52, Longitude: 13.40}, date, testNow)
	if err != nil {
		t.Fatalf("DailyForecast returned error: %v", err)
	}

	// Intensive fields average the 24-hour slice; the filler value outside
	// the slice must not leak in.
	if obs.TemperatureC != 10 {
		t.Errorf("Expected temperature 10, got %v", obs.TemperatureC)
	}
	if obs.WindSpeedKmh != 20 {
		t.Errorf("Expected wind 20, got %v", obs.WindSpeedKmh)
	}
	if obs.RelativeHumidityPct != 80 {
		t.Errorf("Expected humidity 80, got %v", obs.RelativeHumidityPct)
	}

	// Precipitation and snow are summed over the slice.
	if math.Abs(obs.PrecipitationMm-12) > 1e-9 {
		t.Errorf("Expected precipitation 12, got %v", obs.PrecipitationMm)
	}
	if math.Abs(obs.SnowMm-6) > 1e-9 {
		t.Errorf("Expected snow 6, got %v", obs.SnowMm)
	}
}

func TestMeteoblueMissingSeriesReadsAsZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]interface{}{
			"data_1h": map[string]interface{}{
				"temperature": series7d(0, 15, 15),
			},
		}
		json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	mb := NewMeteoblue(testProviderConfig(server.URL), "mb-key", zaptest.NewLogger(t))

	obs, err := mb.DailyForecast(context.Background(), weather.Location{}, testNow, testNow)
	if err != nil {
		t.Fatalf("DailyForecast returned error: %v", err)
	}

	if obs.TemperatureC != 15 {
		t.Errorf("Expected temperature 15, got %v", obs.TemperatureC)
	}
	if obs.PrecipitationMm != 0 || obs.SnowMm != 0 || obs.WindSpeedKmh != 0 {
		t.Errorf("Expected missing series to read as zero, got %+v", obs)
	}
}

func TestMeteoblueNoHourlyDataIsProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"metadata": map[string]interface{}{}})
	}))
	defer server.Close()

	mb := NewMeteoblue(testProviderConfig(server.URL), "mb-key", zaptest.NewLogger(t))

	_, err := mb.DailyForecast(context.Background(), weather.Location{}, testNow, testNow)
	if !errors.Is(err, weather.ErrProviderUnavailable) {
		t.Fatalf("Expected ErrProviderUnavailable, got %v", err)
	}
}

func TestMeteoblueNonOKStatusIsProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	mb := NewMeteoblue(testProviderConfig(server.URL), "mb-key", zaptest.NewLogger(t))

	_, err := mb.DailyForecast(context.Background(), weather.Location{}, testNow, testNow)
	if !errors.Is(err, weather.ErrProviderUnavailable) {
		t.Fatalf("Expected ErrProviderUnavailable, got %v", err)
	}
}

func TestMeteoblueMissingKeyFailsBeforeRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("No request should be made without an API key")
	}))
	defer server.Close()

	mb := NewMeteoblue(testProviderConfig(server.URL), "", zaptest.NewLogger(t))

	_, err := mb.DailyForecast(context.Background(), weather.Location{}, testNow, testNow)
	if !errors.Is(err, weather.ErrProviderUnavailable) {
		t.Fatalf("Expected ErrProviderUnavailable, got %v", err)
	}
}

func TestDaySlicePadsShortSeries(t *testing.T) {
	short := []float64{1, 1, 1} // covers three hours of day 0 only
	got := daySlice(short, 0)
	if len(got) != 24 {
		t.Fatalf("Expected 24 hours, got %d", len(got))
	}
	if daySum(short, 0) != 3 {
		t.Errorf("Expected padded sum 3, got %v", daySum(short, 0))
	}
	if daySum(short, 1) != 0 {
		t.Errorf("Expected day 1 of short series to be zero, got %v", daySum(short, 1))
	}
}
