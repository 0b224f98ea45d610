package ollama

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/debug"
)

// maxLine bounds a single NDJSON line.
const maxLine = 1024 * 1024

// parseStream reads newline-delimited JSON objects from the body and sends
// normalized events on ch. The channel is NOT closed by this function.
//
// bufio.Scanner owns the line splitting, so partial lines spanning network
// reads are buffered transparently regardless of chunk boundaries. done=true
// emits Done(0) and halts further reads; Ollama reports no token usage on
// this endpoint.
func parseStream(ctx context.Context, body io.Reader, ch chan<- api.StreamEvent) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		debug.Raw("stream", line)

		var entry chatLine
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			slog.Warn("skipping malformed NDJSON line",
				"error", err.Error(),
				"data", debug.Truncate(line, 200),
			)
			continue
		}

		if entry.Message != nil && entry.Message.Content != "" {
			ch <- api.Delta(entry.Message.Content)
		}

		if entry.Done {
			ch <- api.Done(0)
			return
		}
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return
		}
		ch <- api.ErrorEvent(api.NewNetworkError(err))
		return
	}

	// Connection closed without a done line; terminate cleanly anyway.
	ch <- api.Done(0)
}
