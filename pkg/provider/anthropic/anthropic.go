package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/provider"
)

const (
	// versionHeader is required on every Messages API call.
	versionHeader = "2023-06-01"

	// maxTokens is the fixed output ceiling sent with every request.
	maxTokens = 4096

	maxErrorBody = 8192
)

// Provider implements provider.Adapter for the Anthropic Messages API.
type Provider struct {
	cfg        provider.Config
	httpClient *http.Client
}

// Ensure Provider implements provider.Adapter at compile time.
var _ provider.Adapter = (*Provider)(nil)

// New creates an Anthropic adapter from the given configuration.
func New(cfg provider.Config) (*Provider, error) {
	if cfg.Kind != provider.KindAnthropic {
		return nil, fmt.Errorf("anthropic: kind %q is not anthropic", cfg.Kind)
	}
	return &Provider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// Kind returns the provider variant this adapter serves.
func (p *Provider) Kind() provider.Kind {
	return provider.KindAnthropic
}

// StreamChat sends the conversation to the Messages API and parses the typed
// SSE event stream into normalized events.
func (p *Provider) StreamChat(ctx context.Context, messages []api.Message) (<-chan api.StreamEvent, error) {
	if p.cfg.APIKey == "" {
		return nil, api.NewConfigError("anthropic: API key is required")
	}

	system, rest := partitionSystem(messages)

	body, err := json.Marshal(messagesRequest{
		Model:     p.cfg.Model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  rest,
		Stream:    true,
	})
	if err != nil {
		return nil, api.NewProtocolError("marshaling request: " + err.Error())
	}

	url := provider.ChatURL(provider.KindAnthropic, p.cfg.BaseURL, p.cfg.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, api.NewNetworkError(err)
	}
	setHeaders(httpReq, p.cfg.APIKey)
	httpReq.Header.Set("Accept", "text/event-stream")

	// No timeout for streaming; the context controls the request lifetime.
	streamClient := &http.Client{Transport: p.httpClient.Transport}

	httpResp, err := streamClient.Do(httpReq)
	if err != nil {
		return nil, api.NewNetworkError(err)
	}

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

// Close releases adapter resources.
func (p *Provider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}

// partitionSystem removes all system-role messages from the slice and
// returns the first one's content as the dedicated system prompt. Additional
// system messages are dropped; the Messages API accepts only a single
// top-level system field.
func partitionSystem(messages []api.Message) (string, []api.Message) {
	var system string
	rest := make([]api.Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == api.RoleSystem {
			if system == "" {
				system = m.Content
			}
			continue
		}
		rest = append(rest, m)
	}
	return system, rest
}

// setHeaders applies the Anthropic auth scheme: x-api-key plus a version
// header, never Authorization: Bearer.
func setHeaders(req *http.Request, apiKey string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", versionHeader)
}

func readErrorBody(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return ""
	}
	return string(data)
}
