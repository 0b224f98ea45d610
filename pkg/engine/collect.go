package engine

import (
	"context"
	"strings"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/provider"
)

// Result is a fully collected chat reply.
type Result struct {
	MessageID   string
	Content     string
	TotalTokens int
}

// Collect runs a chat call to completion and returns the concatenated reply.
func Collect(ctx context.Context, cfg provider.Config, messages []api.Message) (*Result, error) {
	var (
		sb     strings.Builder
		result Result
	)
	err := Stream(ctx, cfg, messages, func(ev api.StreamEvent) {
		switch ev.Type {
		case api.EventStarted:
			result.MessageID = ev.MessageID
		case api.EventDelta:
			sb.WriteString(ev.Content)
		case api.EventDone:
			result.TotalTokens = ev.TotalTokens
		}
	})
	if err != nil {
		return nil, err
	}
	result.Content = sb.String()
	return &result, nil
}

// Probe sends a minimal prompt and reports whether the provider produced
// any content before terminating cleanly. An empty-but-clean stream is a
// failure: a provider that answers nothing is not usable.
func Probe(ctx context.Context, cfg provider.Config) error {
	res, err := Collect(ctx, cfg, []api.Message{{Role: api.RoleUser, Content: "Hello"}})
	if err != nil {
		return err
	}
	if res.Content == "" {
		return api.NewProtocolError(string(cfg.Kind) + ": probe stream carried no content")
	}
	return nil
}
