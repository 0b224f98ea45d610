package openaicompat

import "github.com/strom-dev/strom/pkg/api"

// chatRequest is the Chat Completions request body. Messages go through
// verbatim; the normalized roles match the wire roles for this family.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []api.Message `json:"messages"`
	Stream   bool          `json:"stream"`
}

// chatChunk is one streamed Chat Completions SSE payload.
type chatChunk struct {
	Choices []chatChoice `json:"choices"`
	Usage   *chatUsage   `json:"usage"`
}

type chatChoice struct {
	Delta        chatDelta `json:"delta"`
	FinishReason *string   `json:"finish_reason"`
}

type chatDelta struct {
	Content string `json:"content"`
}

type chatUsage struct {
	TotalTokens int `json:"total_tokens"`
}

// modelsResponse is the /models listing shape.
type modelsResponse struct {
	Data []modelEntry `json:"data"`
}

type modelEntry struct {
	ID string `json:"id"`
}
