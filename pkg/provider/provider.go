package provider

import (
	"context"

	"github.com/strom-dev/strom/pkg/api"
)

// Adapter abstracts one upstream chat backend. Each implementation handles
// its own wire protocol (SSE framing, NDJSON, auth headers, pagination)
// internally and exposes only normalized types.
//
// Implementations are cheap to construct; the engine builds a fresh instance
// per call, so adapters hold no shared mutable state.
type Adapter interface {
	// Kind returns the provider variant this adapter serves.
	Kind() Kind

	// StreamChat sends the conversation to the upstream and returns a
	// channel of normalized events. The channel carries zero or more Delta
	// events followed by exactly one terminal event, and is closed by the
	// adapter when the stream ends.
	//
	// Pre-flight failures (missing credential, dial error, non-2xx status)
	// are returned as an error without opening the channel; the dispatcher
	// converts them into a terminal Error event.
	StreamChat(ctx context.Context, messages []api.Message) (<-chan api.StreamEvent, error)

	// ListModels fetches the provider's model catalog, deduplicated and
	// sorted ascending by model id.
	ListModels(ctx context.Context) ([]api.ModelInfo, error)

	// Close releases adapter resources (idle HTTP connections).
	Close() error
}
