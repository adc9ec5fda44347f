package weather

import (
	"errors"
	"fmt"
	"time"
)

// ErrProviderUnavailable wraps any non-success response or transport failure
// from an upstream provider, including a missing API key.
var ErrProviderUnavailable = errors.New("weather provider unavailable")

// LocationNotFoundError reports a place name the geocoder could not resolve.
type LocationNotFoundError struct {
	Query string
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("location not found: %s", e.Query)
}

// DateOutOfRangeError reports a future date beyond the forecast window.
// Latest is the furthest date a forecast can be offered for instead.
type DateOutOfRangeError struct {
	Requested time.Time
	Latest    time.Time
}

func (e *DateOutOfRangeError) Error() string {
	return fmt.Sprintf("date %s is beyond the forecast window ending %s",
		e.Requested.Format("2006-01-02"), e.Latest.Format("2006-01-02"))
}
