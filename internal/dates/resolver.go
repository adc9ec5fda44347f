package dates

import (
	"fmt"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// UnparsableDateError reports a date expression that could not be interpreted.
// It keeps the original text so the reply can echo it back to the user.
type UnparsableDateError struct {
	Text string
}

func (e *UnparsableDateError) Error() string {
	return fmt.Sprintf("unable to parse date: %s", e.Text)
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Midnight truncates t to its calendar date. Resolved dates carry no
// time-of-day component.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from a to b,
// negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours() / 24)
}

// Resolve turns a free-text date expression into a calendar date relative to
// now. Bare weekday names always mean the upcoming occurrence: asking for
// "monday" on a Monday yields next Monday, not today. Everything else goes
// through the natural-language parser with a future bias for ambiguous
// phrases.
func Resolve(text string, now time.Time) (time.Time, error) {
	name := strings.ToLower(strings.TrimSpace(text))
	if target, ok := weekdays[name]; ok {
		today := Midnight(now)
		ahead := (int(target) - int(today.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		return today.AddDate(0, 0, ahead), nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime:         now,
		PreferredDateSource: dateparser.Future,
	}
	dt, err := dateparser.Parse(cfg, text)
	if err != nil || dt.Time.IsZero() {
		return time.Time{}, &UnparsableDateError{Text: text}
	}
	return Midnight(dt.Time), nil
}
