package weather

import (
	"errors"
	"testing"
	"time"
)

var now = time.Date(2024, 9, 23, 11, 45, 0, 0, time.UTC)

func TestRoutePastDateIsHistorical(t *testing.T) {
	date := now.AddDate(0, 0, -1)
	if got := Route(date, now); got != Historical {
		t.Errorf("Expected Historical for yesterday, got %s", got)
	}

	longAgo := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := Route(longAgo, now); got != Historical {
		t.Errorf("Expected Historical for 2020-01-01, got %s", got)
	}
}

func TestRouteTodayIsFutureOrToday(t *testing.T) {
	// Boundary case: same calendar day, earlier clock time.
	earlier := time.Date(2024, 9, 23, 0, 0, 0, 0, time.UTC)
	if got := Route(earlier, now); got != FutureOrToday {
		t.Errorf("Expected FutureOrToday for today, got %s", got)
	}
}

func TestRouteFutureIsFutureOrToday(t *testing.T) {
	date := now.AddDate(0, 0, 3)
	if got := Route(date, now); got != FutureOrToday {
		t.Errorf("Expected FutureOrToday for +3 days, got %s", got)
	}
}

func TestCheckForecastRangeAcceptsWindow(t *testing.T) {
	for days := 0; days <= MaxForecastDays; days++ {
		date := now.AddDate(0, 0, days)
		if err := CheckForecastRange(date, now); err != nil {
			t.Errorf("Expected +%d days to be in range, got %v", days, err)
		}
	}
}

func TestCheckForecastRangeRejectsBeyondWindow(t *testing.T) {
	date := now.AddDate(0, 0, 7)
	err := CheckForecastRange(date, now)
	if err == nil {
		t.Fatal("Expected error for +7 days")
	}

	var outOfRange *DateOutOfRangeError
	if !errors.As(err, &outOfRange) {
		t.Fatalf("Expected *DateOutOfRangeError, got %T", err)
	}

	wantLatest := time.Date(2024, 9, 29, 0, 0, 0, 0, time.UTC)
	if !outOfRange.Latest.Equal(wantLatest) {
		t.Errorf("Expected latest forecast date %s, got %s",
			wantLatest.Format("2006-01-02"), outOfRange.Latest.Format("2006-01-02"))
	}
	if !outOfRange.Requested.Equal(time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected requested date 2024-09-30, got %s", outOfRange.Requested.Format("2006-01-02"))
	}
}

func TestLatestForecastDate(t *testing.T) {
	want := time.Date(2024, 9, 29, 0, 0, 0, 0, time.UTC)
	if got := LatestForecastDate(now); !got.Equal(want) {
		t.Errorf("Expected %s, got %s", want.Format("2006-01-02"), got.Format("2006-01-02"))
	}
}
