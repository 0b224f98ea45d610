package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/debug"
	"github.com/strom-dev/strom/pkg/provider"
)

const maxErrorBody = 8192

// Provider implements provider.Adapter for a local Ollama server.
type Provider struct {
	cfg        provider.Config
	httpClient *http.Client
}

// Ensure Provider implements provider.Adapter at compile time.
var _ provider.Adapter = (*Provider)(nil)

// New creates an Ollama adapter from the given configuration.
func New(cfg provider.Config) (*Provider, error) {
	if cfg.Kind != provider.KindOllama {
		return nil, fmt.Errorf("ollama: kind %q is not ollama", cfg.Kind)
	}
	return &Provider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// Kind returns the provider variant this adapter serves.
func (p *Provider) Kind() provider.Kind {
	return provider.KindOllama
}

// StreamChat posts the conversation to /api/chat and parses the NDJSON
// response into normalized events. Ollama needs no credential, so there is
// no config pre-flight.
func (p *Provider) StreamChat(ctx context.Context, messages []api.Message) (<-chan api.StreamEvent, error) {
	body, err := json.Marshal(chatRequest{
		Model:    p.cfg.Model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return nil, api.NewProtocolError("marshaling request: " + err.Error())
	}

	url := provider.ChatURL(provider.KindOllama, p.cfg.BaseURL, p.cfg.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, api.NewNetworkError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	// No timeout for streaming; the context controls the request lifetime.
	streamClient := &http.Client{Transport: p.httpClient.Transport}

	httpResp, err := streamClient.Do(httpReq)
	if err != nil {
		return nil, api.NewNetworkError(err)
	}

	// A non-2xx body is plain error text, never NDJSON; report it whole.
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		defer httpResp.Body.Close()
		return nil, api.NewUpstreamError(httpResp.StatusCode, readErrorBody(httpResp.Body))
	}

	ch := make(chan api.StreamEvent, 16)

	go func() {
		defer close(ch)
		defer httpResp.Body.Close()
		parseStream(ctx, httpResp.Body, ch)
	}()

	return ch, nil
}

// ListModels fetches /api/tags. Entries may key the model id under either
// "model" or "name" depending on the server version.
func (p *Provider) ListModels(ctx context.Context) ([]api.ModelInfo, error) {
	url := provider.ModelsURL(provider.KindOllama, p.cfg.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, api.NewNetworkError(err)
	}

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, api.NewNetworkError(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, api.NewUpstreamError(httpResp.StatusCode, readErrorBody(httpResp.Body))
	}

	var tags tagsResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&tags); err != nil {
		return nil, api.NewProtocolError("ollama: parsing tags response: " + err.Error())
	}

	var models []api.ModelInfo
	for _, e := range tags.Models {
		id := e.id()
		if id == "" {
			continue
		}
		models = append(models, api.ModelInfo{ID: id, DisplayName: id})
	}

	debug.Log("models", "ollama catalog fetched", "count", len(models))
	return api.SortModels(models), nil
}

// Close releases adapter resources.
func (p *Provider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}

func readErrorBody(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return ""
	}
	return string(data)
}
