package weather

import (
	"context"
	"time"

	"github.com/weatherchat/weatherchat/internal/dates"
	"github.com/weatherchat/weatherchat/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Service runs one weather request end to end: range check, geocode, route,
// fetch, format. Each step is strictly sequential; a turn performs at most
// one geocode call and one provider call.
type Service struct {
	geocoder Geocoder
	forecast ForecastProvider
	history  HistoryProvider
	logger   *zap.Logger
	tele     *telemetry.Telemetry
	now      func() time.Time
}

func NewService(geocoder Geocoder, forecast ForecastProvider, history HistoryProvider, logger *zap.Logger, tele *telemetry.Telemetry) *Service {
	return &Service{
		geocoder: geocoder,
		forecast: forecast,
		history:  history,
		logger:   logger,
		tele:     tele,
		now:      time.Now,
	}
}

// Report produces the formatted weather report for a place name and a
// resolved calendar date. Failures come back as the package error taxonomy
// for the caller to phrase.
func (s *Service) Report(ctx context.Context, locationName string, date time.Time) (string, error) {
	tracer := s.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "weather.Report")
	defer span.End()

	now := s.now()
	choice := Route(date, now)

	span.SetAttributes(
		attribute.String("location", locationName),
		attribute.String("date", date.Format("2006-01-02")),
		attribute.String("route", choice.String()),
	)

	if choice == FutureOrToday {
		if err := CheckForecastRange(date, now); err != nil {
			s.logger.Info("Requested date beyond forecast window",
				zap.String("date", date.Format("2006-01-02")),
				zap.Int("days_ahead", dates.DaysBetween(now, date)))
			span.SetAttributes(attribute.Bool("success", false))
			return "", err
		}
	}

	loc, err := s.geocoder.Geocode(ctx, locationName)
	if err != nil {
		s.logger.Warn("Geocoding failed",
			zap.String("location", locationName),
			zap.Error(err))
		s.tele.RecordError(err, ctx, map[string]interface{}{"location": locationName})
		span.SetAttributes(attribute.Bool("success", false))
		return "", err
	}

	s.logger.Debug("Location resolved",
		zap.String("query", locationName),
		zap.String("display_name", loc.DisplayName),
		zap.Float64("lat", loc.Latitude),
		zap.Float64("lon", loc.Longitude))

	var obs Observation
	switch choice {
	case Historical:
		obs, err = s.history.DailyHistory(ctx, loc, date)
	default:
		obs, err = s.forecast.DailyForecast(ctx, loc, date, now)
	}
	if err != nil {
		s.logger.Warn("Weather fetch failed",
			zap.String("route", choice.String()),
			zap.String("location", loc.DisplayName),
			zap.Error(err))
		s.tele.RecordError(err, ctx, map[string]interface{}{"route": choice.String()})
		span.SetAttributes(attribute.Bool("success", false))
		return "", err
	}

	span.SetAttributes(attribute.Bool("success", true))

	s.logger.Info("Weather report produced",
		zap.String("location", loc.DisplayName),
		zap.String("date", date.Format("2006-01-02")),
		zap.String("route", choice.String()))

	return FormatReport(loc, date, obs, choice == Historical), nil
}
