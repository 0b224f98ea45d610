package anthropic

import "github.com/strom-dev/strom/pkg/api"

// messagesRequest is the Messages API request body. System messages never
// appear in Messages; the first one rides in the top-level System field.
type messagesRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system,omitempty"`
	Messages  []api.Message `json:"messages"`
	Stream    bool          `json:"stream"`
}

// streamEvent is one SSE payload. The Type discriminator selects which of
// the optional members is meaningful.
//
// Lifecycle: message_start → content_block_start → content_block_delta(s) →
// content_block_stop → message_delta → message_stop.
type streamEvent struct {
	Type  string      `json:"type"`
	Delta *eventDelta `json:"delta"`
	Usage *eventUsage `json:"usage"`
}

type eventDelta struct {
	Text string `json:"text"`
}

type eventUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// modelsPage is one page of the cursor-paginated /v1/models listing.
type modelsPage struct {
	Data    []modelEntry `json:"data"`
	HasMore bool         `json:"has_more"`
	LastID  string       `json:"last_id"`
}

type modelEntry struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}
