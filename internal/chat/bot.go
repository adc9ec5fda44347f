package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/weatherchat/weatherchat/internal/dates"
	"github.com/weatherchat/weatherchat/internal/weather"
	"go.uber.org/zap"
)

// IntentDispatcher is the conversation capability boundary.
type IntentDispatcher interface {
	Dispatch(ctx context.Context, query string) (Intent, error)
}

// Reporter runs a weather request for a place name and a resolved date.
type Reporter interface {
	Report(ctx context.Context, location string, date time.Time) (string, error)
}

// Bot handles one conversation turn at a time. Turns are independent: the
// bot keeps no state between them beyond its collaborators.
type Bot struct {
	dispatcher IntentDispatcher
	weather    Reporter
	logger     *zap.Logger
	now        func() time.Time
}

func NewBot(dispatcher IntentDispatcher, reporter Reporter, logger *zap.Logger) *Bot {
	return &Bot{
		dispatcher: dispatcher,
		weather:    reporter,
		logger:     logger,
		now:        time.Now,
	}
}

// HandleTurn maps one user utterance to one reply. Every failure becomes a
// plain-text reply; a turn never returns an error to its caller.
func (b *Bot) HandleTurn(ctx context.Context, text string) string {
	intent, err := b.dispatcher.Dispatch(ctx, text)
	if err != nil {
		b.logger.Error("Dispatch failed", zap.Error(err))
		return fmt.Sprintf("I'm sorry, I encountered an error: %v", err)
	}

	switch intent.Kind {
	case IntentReply:
		return intent.Reply
	case IntentUnknown:
		b.logger.Warn("Unhandled intent", zap.String("function", intent.Function))
		return "I'm sorry, I don't know how to handle that request."
	}

	q := intent.Weather

	date, err := dates.Resolve(q.Date, b.now())
	if err != nil {
		var unparsable *dates.UnparsableDateError
		if errors.As(err, &unparsable) {
			return fmt.Sprintf("I am happy to tell you the weather, if you give me a date and location. And I'm sorry, I couldn't understand this date. %v", err)
		}
		b.logger.Error("Date resolution failed", zap.String("date", q.Date), zap.Error(err))
		return fmt.Sprintf("I'm sorry, I encountered an error: %v", err)
	}

	report, err := b.weather.Report(ctx, q.Location, date)
	if err != nil {
		return b.phraseFailure(q, date, err)
	}
	return report
}

// phraseFailure converts the weather error taxonomy into user-facing text.
func (b *Bot) phraseFailure(q WeatherArgs, date time.Time, err error) string {
	var notFound *weather.LocationNotFoundError
	var outOfRange *weather.DateOutOfRangeError

	switch {
	case errors.As(err, &notFound):
		return fmt.Sprintf("I'm sorry, but I don't have information for the location '%s'. Could you please check the spelling or try asking about a different city?", notFound.Query)

	case errors.As(err, &outOfRange):
		return fmt.Sprintf("I'm sorry, but I can only provide weather for the past, today and up to %d days in the future. "+
			"The date you asked about (%s) is too far in the future. "+
			"The latest date I can provide a forecast for is %s. "+
			"Would you like to know the weather for %s on that date instead?",
			weather.MaxForecastDays,
			outOfRange.Requested.Format("2006-01-02"),
			outOfRange.Latest.Format("2006-01-02"),
			q.Location)

	case errors.Is(err, weather.ErrProviderUnavailable):
		if weather.Route(date, b.now()) == weather.Historical {
			return "Sorry, I couldn't retrieve the historical weather information at this time."
		}
		return "Sorry, I couldn't retrieve the weather information at this time."

	default:
		b.logger.Error("Unclassified weather failure", zap.Error(err))
		return fmt.Sprintf("I'm sorry, I encountered an error: %v", err)
	}
}
