package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/weatherchat/weatherchat/internal/config"
	"github.com/weatherchat/weatherchat/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const weatherFunctionName = "get_weather"

var weatherFunctionParams = json.RawMessage(`{
	"type": "object",
	"properties": {
		"location": {
			"type": "string",
			"description": "The city or location for the weather forecast"
		},
		"date": {
			"type": "string",
			"description": "The date for the weather forecast (e.g., 'today', 'tomorrow', 'next Monday', 'September 26, 2024')"
		}
	},
	"required": ["location", "date"]
}`)

// completionClient is the slice of the OpenAI client the dispatcher needs,
// kept narrow so tests can stand in for the real API.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Dispatcher decides, per utterance, whether the user asked about weather
// and extracts the location/date slots. Single turn, stateless: no
// conversation memory is kept between calls.
type Dispatcher struct {
	client          completionClient
	model           string
	defaultLocation string
	defaultDate     string
	logger          *zap.Logger
	tele            *telemetry.Telemetry
}

func NewDispatcher(cfg config.ChatConfig, apiKey string, logger *zap.Logger, tele *telemetry.Telemetry) *Dispatcher {
	return &Dispatcher{
		client:          openai.NewClient(apiKey),
		model:           cfg.Model,
		defaultLocation: cfg.DefaultLocation,
		defaultDate:     cfg.DefaultDate,
		logger:          logger,
		tele:            tele,
	}
}

func (d *Dispatcher) systemPrompt() string {
	return fmt.Sprintf("You are a helpful assistant that can engage in general conversation and provide weather information when asked. "+
		"You can provide historical weather data for past dates, current weather, and forecasts for up to 6 days in the future. "+
		"If the user doesn't specify a location or date for weather, assume they're asking about %s for %s.",
		d.defaultLocation, d.defaultDate)
}

// Dispatch runs one completion call and maps the outcome to a typed intent.
func (d *Dispatcher) Dispatch(ctx context.Context, query string) (Intent, error) {
	tracer := d.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "chat.Dispatch")
	defer span.End()

	req := openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: d.systemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
		Tools: []openai.Tool{
			{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        weatherFunctionName,
					Description: "Get weather information for a specific location and date (past, present, or up to 6 days in the future)",
					Parameters:  weatherFunctionParams,
				},
			},
		},
	}

	resp, err := d.client.CreateChatCompletion(ctx, req)
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return Intent{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		span.SetAttributes(attribute.Bool("success", false))
		return Intent{}, errors.New("chat completion returned no choices")
	}

	msg := resp.Choices[0].Message

	if len(msg.ToolCalls) == 0 {
		span.SetAttributes(attribute.String("intent", "reply"))
		return Intent{Kind: IntentReply, Reply: msg.Content}, nil
	}

	call := msg.ToolCalls[0]
	if call.Function.Name != weatherFunctionName {
		d.logger.Warn("Model invoked undeclared function",
			zap.String("function", call.Function.Name))
		span.SetAttributes(attribute.String("intent", "unknown"))
		return Intent{Kind: IntentUnknown, Function: call.Function.Name}, nil
	}

	var args struct {
		Location string `json:"location"`
		Date     string `json:"date"`
	}
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return Intent{}, fmt.Errorf("decoding function arguments: %w", err)
	}

	if args.Location == "" {
		args.Location = d.defaultLocation
	}
	if args.Date == "" {
		args.Date = d.defaultDate
	}

	d.logger.Debug("Weather intent extracted",
		zap.String("location", args.Location),
		zap.String("date", args.Date))
	span.SetAttributes(
		attribute.String("intent", "weather"),
		attribute.String("weather.location", args.Location),
		attribute.String("weather.date", args.Date),
	)

	return Intent{
		Kind:    IntentWeather,
		Weather: WeatherArgs{Location: args.Location, Date: args.Date},
	}, nil
}
