package weather

import (
	"time"

	"github.com/weatherchat/weatherchat/internal/dates"
)

// MaxForecastDays is the forecast provider's hard window: today plus six
// days, day indices 0 through 6.
const MaxForecastDays = 6

// Choice selects which provider serves a request.
type Choice int

const (
	Historical Choice = iota
	FutureOrToday
)

func (c Choice) String() string {
	if c == Historical {
		return "historical"
	}
	return "future_or_today"
}

// Route picks the provider for a date. Strictly past dates are historical;
// today and anything later routes to the forecast provider. The forecast
// window itself is checked separately by CheckForecastRange.
func Route(date, now time.Time) Choice {
	if dates.Midnight(date).Before(dates.Midnight(now)) {
		return Historical
	}
	return FutureOrToday
}

// LatestForecastDate returns the furthest date the forecast provider covers.
func LatestForecastDate(now time.Time) time.Time {
	return dates.Midnight(now).AddDate(0, 0, MaxForecastDays)
}

// CheckForecastRange rejects future dates outside the provider window. It
// must run before any network call so an impossible request never costs a
// fetch.
func CheckForecastRange(date, now time.Time) error {
	if dates.DaysBetween(now, date) > MaxForecastDays {
		return &DateOutOfRangeError{
			Requested: dates.Midnight(date),
			Latest:    LatestForecastDate(now),
		}
	}
	return nil
}
