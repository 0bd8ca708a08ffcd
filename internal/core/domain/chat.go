package domain

// ChatIntent is the classified purpose of a chat message.
type ChatIntent string

const (
	IntentCount        ChatIntent = "count"
	IntentBusinessInfo ChatIntent = "business_info"
	IntentOutOfScope   ChatIntent = "out_of_scope"
)

// Message type tags surfaced on chat results. NotFound is a normal,
// successful outcome, not an error.
const (
	MessageTypeCount        = "count"
	MessageTypeBusinessInfo = "business_info"
	MessageTypeNotFound     = "not_found"
	MessageTypeOutOfScope   = "out_of_scope"
	MessageTypeError        = "error"
)

// ChatResult is the composed answer for one chat message. Every path
// produces a non-empty Response; provider failures degrade to fallback
// text instead of propagating.
type ChatResult struct {
	Success      bool      `json:"success"`
	Response     string    `json:"response"`
	MessageType  string    `json:"message_type"`
	Count        *int      `json:"count,omitempty"`
	BusinessData *Business `json:"business_data,omitempty"`
}

// Description is the outcome of the describe-from-coordinates flow.
type Description struct {
	Narrative   string
	Text        string
	Geocode     GeocodeDetail
	GeocodeFail bool
	Degraded    bool
}

// ChatMessage is one role-tagged entry of a generation prompt.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateOptions is the numeric option set passed to the text-generation
// provider.
type GenerateOptions struct {
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"top_p"`
	RepeatPenalty float64 `json:"repeat_penalty"`
}

// InteractionEvent is the analytics payload published after a chat turn.
// Nothing about the conversation itself is persisted by this system.
type InteractionEvent struct {
	Intent      string `json:"intent"`
	MessageType string `json:"message_type"`
	Success     bool   `json:"success"`
	Degraded    bool   `json:"degraded"`
}
