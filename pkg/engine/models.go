package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/debug"
	"github.com/strom-dev/strom/pkg/observability"
	"github.com/strom-dev/strom/pkg/provider"
)

// maxConcurrentListings bounds the parallel catalog fetches in ListAllModels.
const maxConcurrentListings = 4

// ListModels fetches the model catalog for one provider.
func ListModels(ctx context.Context, cfg provider.Config) ([]api.ModelInfo, error) {
	adapter, err := newAdapter(cfg)
	if err != nil {
		return nil, err
	}
	defer adapter.Close()

	label := string(cfg.Kind)
	models, err := adapter.ListModels(ctx)
	if err != nil {
		observability.ModelListRequestsTotal.WithLabelValues(label, "error").Inc()
		return nil, err
	}

	observability.ModelListRequestsTotal.WithLabelValues(label, "done").Inc()
	debug.Log("models", "catalog fetched", "provider", label, "count", len(models))
	return models, nil
}

// ProviderModels is one provider's slot in an aggregated catalog. Either
// Models or Err is set.
type ProviderModels struct {
	Kind   provider.Kind
	Models []api.ModelInfo
	Err    error
}

// ListAllModels fetches every configured provider's catalog concurrently.
// The result has one entry per config in input order; a provider that fails
// carries its error in its own slot and never hides the others.
func ListAllModels(ctx context.Context, configs []provider.Config) []ProviderModels {
	results := make([]ProviderModels, len(configs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentListings)
	for i, cfg := range configs {
		i, cfg := i, cfg
		g.Go(func() error {
			models, err := ListModels(ctx, cfg)
			results[i] = ProviderModels{Kind: cfg.Kind, Models: models, Err: err}
			return nil
		})
	}
	// Goroutines never return an error; failures live in their result slot.
	_ = g.Wait()

	return results
}
