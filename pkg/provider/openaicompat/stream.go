package openaicompat

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/debug"
	"github.com/strom-dev/strom/pkg/provider"
)

// parseStream reads Chat Completions SSE chunks from the body and sends
// normalized events on ch. The channel is NOT closed by this function; the
// caller is responsible for closing it.
//
// Expected framing:
//
//	data: {"choices":[{"delta":{"content":"..."},"finish_reason":null}]}\n
//	\n
//	data: [DONE]\n
//	\n
//
// Malformed chunks are logged and skipped. The [DONE] sentinel and EOF both
// end the loop with a Done event carrying whatever usage total a
// finish_reason chunk reported. Context cancellation stops reading without a
// terminal event; the dispatcher synthesizes one.
func parseStream(ctx context.Context, body io.Reader, ch chan<- api.StreamEvent) {
	scanner := provider.NewSSEScanner(body)
	totalTokens := 0

	for {
		// Check for context cancellation between events.
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

		var chunk chatChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			slog.Warn("skipping malformed SSE chunk",
				"error", err.Error(),
				"data", debug.Truncate(payload, 200),
			)
			continue
		}

		for _, choice := range chunk.Choices {
			if choice.Delta.Content != "" {
				ch <- api.Delta(choice.Delta.Content)
			}
			// finish_reason marks the final chunk for this choice; usage,
			// when the backend reports it, rides on the same chunk.
			if choice.FinishReason != nil && chunk.Usage != nil {
				totalTokens = chunk.Usage.TotalTokens
			}
		}
	}

	ch <- api.Done(totalTokens)
}
