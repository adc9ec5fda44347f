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

// OpenCage resolves free-text place names through the OpenCage geocoding
// API, keeping only the first (best) match.
type OpenCage struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

func NewOpenCage(cfg config.ProvidersConfig, apiKey string, logger *zap.Logger) *OpenCage {
	return &OpenCage{
		baseURL: cfg.OpenCageBaseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: logger,
	}
}

type openCageResponse struct {
	Results []struct {
		Formatted string `json:"formatted"`
		Geometry  struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
}

func (g *OpenCage) Geocode(ctx context.Context, query string) (weather.Location, error) {
	if g.apiKey == "" {
		return weather.Location{}, fmt.Errorf("%w: opencage API key not configured", weather.ErrProviderUnavailable)
	}

	u, err := url.Parse(g.baseURL)
	if err != nil {
		return weather.Location{}, fmt.Errorf("%w: invalid opencage base URL", weather.ErrProviderUnavailable)
	}

	q := u.Query()
	q.Set("q", query)
	q.Set("key", g.apiKey)
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return weather.Location{}, fmt.Errorf("%w: %v", weather.ErrProviderUnavailable, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return weather.Location{}, fmt.Errorf("%w: %v", weather.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("Geocoding request failed",
			zap.String("query", query),
			zap.Int("status", resp.StatusCode))
		return weather.Location{}, fmt.Errorf("%w: geocoding status %d", weather.ErrProviderUnavailable, resp.StatusCode)
	}

	var body openCageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return weather.Location{}, fmt.Errorf("%w: %v", weather.ErrProviderUnavailable, err)
	}

	if len(body.Results) == 0 {
		return weather.Location{}, &weather.LocationNotFoundError{Query: query}
	}

	best := body.Results[0]
	return weather.Location{
		Latitude:    best.Geometry.Lat,
		Longitude:   best.Geometry.Lng,
		DisplayName: best.Formatted,
	}, nil
}
