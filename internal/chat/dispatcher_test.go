package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/weatherchat/weatherchat/pkg/telemetry"
	"go.uber.org/zap/zaptest"
)

type fakeCompletion struct {
	resp    openai.ChatCompletionResponse
	err     error
	lastReq openai.ChatCompletionRequest
}

func (f *fakeCompletion) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastReq = req
	return f.resp, f.err
}

func newTestDispatcher(t *testing.T, client completionClient) *Dispatcher {
	return &Dispatcher{
		client:          client,
		model:           "gpt-3.5-turbo",
		defaultLocation: "Berlin",
		defaultDate:     "today",
		logger:          zaptest.NewLogger(t),
		tele:            &telemetry.Telemetry{},
	}
}

func toolCallResponse(name, arguments string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{
				Message: openai.ChatCompletionMessage{
					ToolCalls: []openai.ToolCall{
						{
							Type:     openai.ToolTypeFunction,
							Function: openai.FunctionCall{Name: name, Arguments: arguments},
						},
					},
				},
			},
		},
	}
}

func TestDispatchPlainReply(t *testing.T) {
	client := &fakeCompletion{
		resp: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "The capital of France is Paris."}},
			},
		},
	}
	d := newTestDispatcher(t, client)

	intent, err := d.Dispatch(context.Background(), "What is the capital of France?")
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}

	if intent.Kind != IntentReply {
		t.Fatalf("Expected IntentReply, got %v", intent.Kind)
	}
	if intent.Reply != "The capital of France is Paris." {
		t.Errorf("Unexpected reply: %q", intent.Reply)
	}

	// The single declared function must be offered on every call.
	if len(client.lastReq.Tools) != 1 || client.lastReq.Tools[0].Function.Name != weatherFunctionName {
		t.Errorf("Expected the get_weather tool to be declared, got %+v", client.lastReq.Tools)
	}
}

func TestDispatchWeatherIntent(t *testing.T) {
	client := &fakeCompletion{
		resp: toolCallResponse(weatherFunctionName, `{"location": "Paris", "date": "tomorrow"}`),
	}
	d := newTestDispatcher(t, client)

	intent, err := d.Dispatch(context.Background(), "Weather in Paris tomorrow?")
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}

	if intent.Kind != IntentWeather {
		t.Fatalf("Expected IntentWeather, got %v", intent.Kind)
	}
	if intent.Weather.Location != "Paris" || intent.Weather.Date != "tomorrow" {
		t.Errorf("Unexpected slots: %+v", intent.Weather)
	}
}

func TestDispatchAppliesDefaults(t *testing.T) {
	client := &fakeCompletion{
		resp: toolCallResponse(weatherFunctionName, `{}`),
	}
	d := newTestDispatcher(t, client)

	intent, err := d.Dispatch(context.Background(), "What's the weather like?")
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}

	if intent.Weather.Location != "Berlin" {
		t.Errorf("Expected default location Berlin, got %q", intent.Weather.Location)
	}
	if intent.Weather.Date != "today" {
		t.Errorf("Expected default date today, got %q", intent.Weather.Date)
	}
}

func TestDispatchUnknownFunction(t *testing.T) {
	client := &fakeCompletion{
		resp: toolCallResponse("launch_rocket", `{}`),
	}
	d := newTestDispatcher(t, client)

	intent, err := d.Dispatch(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}

	if intent.Kind != IntentUnknown {
		t.Fatalf("Expected IntentUnknown, got %v", intent.Kind)
	}
	if intent.Function != "launch_rocket" {
		t.Errorf("Expected function name to be kept, got %q", intent.Function)
	}
}

func TestDispatchCompletionFailure(t *testing.T) {
	client := &fakeCompletion{err: errors.New("rate limited")}
	d := newTestDispatcher(t, client)

	if _, err := d.Dispatch(context.Background(), "hello"); err == nil {
		t.Fatal("Expected error from failed completion")
	}
}

func TestDispatchBadArguments(t *testing.T) {
	client := &fakeCompletion{
		resp: toolCallResponse(weatherFunctionName, `not json`),
	}
	d := newTestDispatcher(t, client)

	if _, err := d.Dispatch(context.Background(), "weather?"); err == nil {
		t.Fatal("Expected error for undecodable arguments")
	}
}
