package chat

// IntentKind tags the dispatcher's decision for one utterance.
type IntentKind int

const (
	// IntentReply carries a direct conversational answer; the utterance was
	// not a weather request.
	IntentReply IntentKind = iota
	// IntentWeather carries extracted weather slots.
	IntentWeather
	// IntentUnknown means the model invoked a function this program does not
	// declare. It should never happen with a single declared function, but
	// the turn must degrade gracefully when it does.
	IntentUnknown
)

// Intent is the typed result of one dispatcher call. It decouples the rest
// of the program from the model's function-call wire format.
type Intent struct {
	Kind     IntentKind
	Weather  WeatherArgs // set when Kind == IntentWeather
	Reply    string      // set when Kind == IntentReply
	Function string      // offending function name when Kind == IntentUnknown
}

// WeatherArgs are the raw extracted slots, still free text. Date resolution
// happens later so failures can be phrased with the original wording.
type WeatherArgs struct {
	Location string
	Date     string
}
