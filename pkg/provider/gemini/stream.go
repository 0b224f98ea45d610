package gemini

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/debug"
	"github.com/strom-dev/strom/pkg/provider"
)

// parseStream reads streamGenerateContent SSE chunks from the body and sends
// normalized events on ch. The channel is NOT closed by this function.
//
// Every non-empty part text is emitted as a Delta, flattening across
// candidates and parts in array order. Gemini reports no usable token usage
// on this endpoint, so the terminal Done always carries 0.
func parseStream(ctx context.Context, body io.Reader, ch chan<- api.StreamEvent) {
	scanner := provider.NewSSEScanner(body)

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

		var chunk generateChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			slog.Warn("skipping malformed Gemini chunk",
				"error", err.Error(),
				"data", debug.Truncate(payload, 200),
			)
			continue
		}

		for _, cand := range chunk.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, pt := range cand.Content.Parts {
				if pt.Text != "" {
					ch <- api.Delta(pt.Text)
				}
			}
		}
	}

	ch <- api.Done(0)
}
