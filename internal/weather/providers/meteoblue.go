package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/weatherchat/weatherchat/internal/config"
	"github.com/weatherchat/weatherchat/internal/dates"
	"github.com/weatherchat/weatherchat/internal/weather"
	"go.uber.org/zap"
)

const hoursPerDay = 24

// Meteoblue serves the forecast side of the router through the basic-1h
// package: hourly arrays covering seven days, which this adapter collapses
// into one day's aggregates.
//
// Day 0 of the returned series is assumed to start on the same calendar day
// as the caller's clock, in the same timezone. If the two disagree, the
// selected 24-hour slice can be off by one day; that constraint comes with
// the upstream API.
type Meteoblue struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

func NewMeteoblue(cfg config.ProvidersConfig, apiKey string, logger *zap.Logger) *Meteoblue {
	return &Meteoblue{
		baseURL: cfg.MeteoblueBaseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: logger,
	}
}

type basic1hResponse struct {
	Data1H *struct {
		Temperature      []float64 `json:"temperature"`
		WindSpeed        []float64 `json:"windspeed"`
		WindDirection    []float64 `json:"winddirection"`
		Precipitation    []float64 `json:"precipitation"`
		Snowfall         []float64 `json:"snowfall"`
		RelativeHumidity []float64 `json:"relativehumidity"`
		Pressure         []float64 `json:"pressure"`
		CloudCover       []float64 `json:"cloudcover"`
	} `json:"data_1h"`
}

func (m *Meteoblue) DailyForecast(ctx context.Context, loc weather.Location, date, now time.Time) (weather.Observation, error) {
	if m.apiKey == "" {
		return weather.Observation{}, fmt.Errorf("%w: meteoblue API key not configured", weather.ErrProviderUnavailable)
	}

	u, err := url.Parse(m.baseURL)
	if err != nil {
		return weather.Observation{}, fmt.Errorf("%w: invalid meteoblue base URL", weather.ErrProviderUnavailable)
	}

	q := u.Query()
	q.Set("apikey", m.apiKey)
	q.Set("lat", fmt.Sprintf("%f", loc.Latitude))
	q.Set("lon", fmt.Sprintf("%f", loc.Longitude))
	q.Set("asl", "0")
	q.Set("format", "json")
	q.Set("tz", "UTC")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return weather.Observation{}, fmt.Errorf("%w: %v", weather.ErrProviderUnavailable, err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return weather.Observation{}, fmt.Errorf("%w: %v", weather.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.logger.Warn("Meteoblue request failed",
			zap.Int("status", resp.StatusCode),
			zap.Float64("lat", loc.Latitude),
			zap.Float64("lon", loc.Longitude))
		return weather.Observation{}, fmt.Errorf("%w: meteoblue status %d", weather.ErrProviderUnavailable, resp.StatusCode)
	}

	var body basic1hResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return weather.Observation{}, fmt.Errorf("%w: %v", weather.ErrProviderUnavailable, err)
	}

	if body.Data1H == nil {
		return weather.Observation{}, fmt.Errorf("%w: meteoblue response has no hourly data", weather.ErrProviderUnavailable)
	}

	day := dates.DaysBetween(now, date)
	if day < 0 || day > weather.MaxForecastDays {
		return weather.Observation{}, fmt.Errorf("%w: day index %d outside forecast window", weather.ErrProviderUnavailable, day)
	}

	series := body.Data1H
	return weather.Observation{
		TemperatureC:        dayMean(series.Temperature, day),
		WindSpeedKmh:        dayMean(series.WindSpeed, day),
		WindDirectionDeg:    dayMean(series.WindDirection, day),
		PrecipitationMm:     daySum(series.Precipitation, day),
		SnowMm:              daySum(series.Snowfall, day),
		RelativeHumidityPct: dayMean(series.RelativeHumidity, day),
		PressureHPa:         dayMean(series.Pressure, day),
		CloudCoverPct:       dayMean(series.CloudCover, day),
	}, nil
}

// daySlice picks hours [day*24, day*24+24) of an hourly series. A missing or
// short series reads as zeros for the uncovered hours instead of failing the
// whole report.
func daySlice(series []float64, day int) []float64 {
	out := make([]float64, hoursPerDay)
	start := day * hoursPerDay
	for i := 0; i < hoursPerDay; i++ {
		if idx := start + i; idx < len(series) {
			out[i] = series[idx]
		}
	}
	return out
}

func daySum(series []float64, day int) float64 {
	var sum float64
	for _, v := range daySlice(series, day) {
		sum += v
	}
	return sum
}

func dayMean(series []float64, day int) float64 {
	return daySum(series, day) / hoursPerDay
}
