package engine

import (
	"context"
	"time"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/debug"
	"github.com/strom-dev/strom/pkg/observability"
	"github.com/strom-dev/strom/pkg/provider"
)

// Stream runs one chat call against the configured provider, delivering
// normalized events to onEvent synchronously and in order. The callback sees
// a Started event first, then zero or more Deltas, then exactly one terminal
// event. Nothing is delivered after the terminal.
//
// The returned error mirrors the terminal: nil after a Done event, the
// terminal's error after an Error event. Pre-flight adapter failures are
// delivered as an Error event too, so onEvent always observes a complete
// stream.
func Stream(ctx context.Context, cfg provider.Config, messages []api.Message, onEvent func(api.StreamEvent)) error {
	adapter, err := newAdapter(cfg)
	if err != nil {
		return err
	}
	defer adapter.Close()

	messageID := api.NewMessageID()
	onEvent(api.Started(messageID))

	label := string(cfg.Kind)
	observability.StreamsActive.Inc()
	defer observability.StreamsActive.Dec()
	start := time.Now()
	defer func() {
		observability.StreamDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	}()

	debug.Log("stream", "stream starting", "provider", label, "model", cfg.Model, "messages", len(messages))

	ch, err := adapter.StreamChat(ctx, messages)
	if err != nil {
		observability.StreamRequestsTotal.WithLabelValues(label, "error").Inc()
		onEvent(api.ErrorEvent(err))
		return err
	}

	terminal := pump(ctx, label, ch, onEvent)
	onEvent(terminal)

	if terminal.Type == api.EventError {
		observability.StreamRequestsTotal.WithLabelValues(label, "error").Inc()
		return terminal.Err
	}
	observability.StreamRequestsTotal.WithLabelValues(label, "done").Inc()
	observability.StreamTokensTotal.WithLabelValues(label).Add(float64(terminal.TotalTokens))
	debug.Log("stream", "stream finished", "provider", label, "tokens", terminal.TotalTokens)
	return nil
}

// pump forwards Delta events from the adapter channel to onEvent and returns
// the stream's terminal event. After the first terminal arrives the channel
// is drained without forwarding, so the adapter goroutine always finishes.
// A channel that closes without a terminal yields a synthesized one: the
// context's error when cancelled, otherwise a clean Done.
func pump(ctx context.Context, label string, ch <-chan api.StreamEvent, onEvent func(api.StreamEvent)) api.StreamEvent {
	for ev := range ch {
		if ev.Terminal() {
			for range ch {
			}
			return ev
		}
		if ev.Type == api.EventDelta {
			observability.StreamDeltasTotal.WithLabelValues(label).Inc()
			onEvent(ev)
		}
	}

	if err := ctx.Err(); err != nil {
		return api.ErrorEvent(api.NewNetworkError(err))
	}
	return api.Done(0)
}
