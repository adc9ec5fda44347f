package weather

import (
	"context"
	"time"
)

// Location is a geocoded place. Produced once by the geocoder and consumed
// read-only by both weather providers.
type Location struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// Observation holds one day's weather, already aggregated: averages for the
// intensive quantities, sums for precipitation and snowfall. Providers must
// never hand raw hourly series past this boundary.
type Observation struct {
	TemperatureC        float64
	WindSpeedKmh        float64
	WindDirectionDeg    float64
	PrecipitationMm     float64
	SnowMm              float64
	RelativeHumidityPct float64
	PressureHPa         float64
	CloudCoverPct       float64
}

// Geocoder resolves a free-text place name to its single best match.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Location, error)
}

// ForecastProvider serves today and up to MaxForecastDays days ahead. The
// caller guarantees the date is inside that window before invoking it.
type ForecastProvider interface {
	DailyForecast(ctx context.Context, loc Location, date, now time.Time) (Observation, error)
}

// HistoryProvider serves any past date.
type HistoryProvider interface {
	DailyHistory(ctx context.Context, loc Location, date time.Time) (Observation, error)
}
