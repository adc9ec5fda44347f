package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/weatherchat/weatherchat/internal/config"
	"github.com/weatherchat/weatherchat/internal/weather"
	"go.uber.org/zap"
)

// VisualCrossing serves the historical side of the router through the
// timeline API, which already returns daily aggregates in metric units.
type VisualCrossing struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

func NewVisualCrossing(cfg config.ProvidersConfig, apiKey string, logger *zap.Logger) *VisualCrossing {
	return &VisualCrossing{
		baseURL: cfg.VisualCrossingBaseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: logger,
	}
}

type timelineResponse struct {
	Days []struct {
		Temp       float64 `json:"temp"`
		WindSpeed  float64 `json:"windspeed"`
		WindDir    float64 `json:"winddir"`
		Precip     float64 `json:"precip"`
		Snow       float64 `json:"snow"`
		Humidity   float64 `json:"humidity"`
		Pressure   float64 `json:"pressure"`
		CloudCover float64 `json:"cloudcover"`
	} `json:"days"`
}

func (v *VisualCrossing) DailyHistory(ctx context.Context, loc weather.Location, date time.Time) (weather.Observation, error) {
	if v.apiKey == "" {
		return weather.Observation{}, fmt.Errorf("%w: visualcrossing API key not configured", weather.ErrProviderUnavailable)
	}

	endpoint := fmt.Sprintf("%s/%f,%f/%s", v.baseURL, loc.Latitude, loc.Longitude, date.Format("2006-01-02"))
	u, err := url.Parse(endpoint)
	if err != nil {
		return weather.Observation{}, fmt.Errorf("%w: invalid visualcrossing URL", weather.ErrProviderUnavailable)
	}

	q := u.Query()
	q.Set("unitGroup", "metric")
	q.Set("key", v.apiKey)
	q.Set("contentType", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return weather.Observation{}, fmt.Errorf("%w: %v", weather.ErrProviderUnavailable, err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return weather.Observation{}, fmt.Errorf("%w: %v", weather.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.logger.Warn("VisualCrossing request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("date", date.Format("2006-01-02")))
		return weather.Observation{}, fmt.Errorf("%w: visualcrossing status %d", weather.ErrProviderUnavailable, resp.StatusCode)
	}

	var body timelineResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return weather.Observation{}, fmt.Errorf("%w: %v", weather.ErrProviderUnavailable, err)
	}

	if len(body.Days) == 0 {
		return weather.Observation{}, fmt.Errorf("%w: visualcrossing response has no days", weather.ErrProviderUnavailable)
	}

	day := body.Days[0]
	return weather.Observation{
		TemperatureC:        day.Temp,
		WindSpeedKmh:        day.WindSpeed,
		WindDirectionDeg:    day.WindDir,
		PrecipitationMm:     day.Precip,
		SnowMm:              day.Snow,
		RelativeHumidityPct: day.Humidity,
		PressureHPa:         day.Pressure,
		CloudCoverPct:       day.CloudCover,
	}, nil
}
