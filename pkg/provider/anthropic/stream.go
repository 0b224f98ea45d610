package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/debug"
	"github.com/strom-dev/strom/pkg/provider"
)

// parseStream reads typed Messages API SSE events from the body and sends
// normalized events on ch. The channel is NOT closed by this function.
//
// Token accounting: message_delta events carry usage; the running total is
// output_tokens + input_tokens (each defaulting to 0 when absent).
// message_stop ends the loop regardless of whether the underlying connection
// stays open. Unrecognized event types are ignored.
func parseStream(ctx context.Context, body io.Reader, ch chan<- api.StreamEvent) {
	scanner := provider.NewSSEScanner(body)
	totalTokens := 0

	for {
		if ctx.Err() != nil {
			return
		}

		payload, err := scanner.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			ch <- api.ErrorEvent(api.NewNetworkError(err))
			return
		}

		debug.Raw("stream", payload)

		var event streamEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			slog.Warn("skipping malformed Anthropic event",
				"error", err.Error(),
				"data", debug.Truncate(payload, 200),
			)
			continue
		}

		switch event.Type {
		case "content_block_delta":
			if event.Delta != nil && event.Delta.Text != "" {
				ch <- api.Delta(event.Delta.Text)
			}

		case "message_delta":
			if event.Usage != nil {
				totalTokens = event.Usage.OutputTokens + event.Usage.InputTokens
			}

		case "message_stop":
			ch <- api.Done(totalTokens)
			return
		}
	}

	// Stream ended without message_stop; terminate with what we have.
	ch <- api.Done(totalTokens)
}
