// Package openrouter implements the provider adapter for OpenRouter. Chat
// streaming is wire-identical to OpenAI Chat Completions and delegates to
// the openaicompat client; the model catalog has its own shape with declared
// output modalities.
package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/debug"
	"github.com/strom-dev/strom/pkg/provider"
	"github.com/strom-dev/strom/pkg/provider/openaicompat"
)

const maxErrorBody = 8192

// Provider implements provider.Adapter for OpenRouter.
type Provider struct {
	cfg        provider.Config
	chat       *openaicompat.Client
	httpClient *http.Client
}

// Ensure Provider implements provider.Adapter at compile time.
var _ provider.Adapter = (*Provider)(nil)

// New creates an OpenRouter adapter from the given configuration.
func New(cfg provider.Config) (*Provider, error) {
	if cfg.Kind != provider.KindOpenRouter {
		return nil, fmt.Errorf("openrouter: kind %q is not openrouter", cfg.Kind)
	}
	return &Provider{
		cfg:        cfg,
		chat:       openaicompat.NewClient(provider.KindOpenRouter, cfg.BaseURL, cfg.APIKey, cfg.Model),
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// Kind returns the provider variant this adapter serves.
func (p *Provider) Kind() provider.Kind {
	return provider.KindOpenRouter
}

// StreamChat delegates to the OpenAI-compatible client.
func (p *Provider) StreamChat(ctx context.Context, messages []api.Message) (<-chan api.StreamEvent, error) {
	return p.chat.StreamChat(ctx, messages)
}

// ListModels fetches the OpenRouter catalog. Auth is optional for listing.
// Entries are kept when their declared output modalities include text;
// entries declaring no modalities at all are treated as text-capable.
func (p *Provider) ListModels(ctx context.Context) ([]api.ModelInfo, error) {
	url := provider.ModelsURL(provider.KindOpenRouter, p.cfg.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, api.NewNetworkError(err)
	}
	if p.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	}

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, api.NewNetworkError(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, maxErrorBody))
		return nil, api.NewUpstreamError(httpResp.StatusCode, string(body))
	}

	var listing modelsResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&listing); err != nil {
		return nil, api.NewProtocolError("openrouter: parsing models response: " + err.Error())
	}

	var models []api.ModelInfo
	for _, m := range listing.Data {
		if m.ID == "" || !textCapable(m) {
			continue
		}
		info := api.ModelInfo{ID: m.ID, DisplayName: m.Name}
		if m.ContextLength > 0 {
			info.ContextWindow = m.ContextLength
		}
		models = append(models, info)
	}

	debug.Log("models", "openrouter catalog fetched", "count", len(models))
	return api.SortModels(models), nil
}

// Close releases adapter resources.
func (p *Provider) Close() error {
	p.httpClient.CloseIdleConnections()
	return p.chat.Close()
}

// textCapable reports whether the entry declares text output, defaulting to
// true when no modalities are declared at all.
func textCapable(m modelEntry) bool {
	if m.Architecture == nil || len(m.Architecture.OutputModalities) == 0 {
		return true
	}
	return slices.Contains(m.Architecture.OutputModalities, "text")
}

// modelsResponse is the OpenRouter /models listing shape.
type modelsResponse struct {
	Data []modelEntry `json:"data"`
}

type modelEntry struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	ContextLength int           `json:"context_length"`
	Architecture  *architecture `json:"architecture"`
}

type architecture struct {
	OutputModalities []string `json:"output_modalities"`
}
