package openaicompat

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

// maxErrorBody bounds how much of an upstream error body is carried in the
// returned error.
const maxErrorBody = 8192

// Client is the adapter for OpenAI-compatible Chat Completions backends.
//
// The openrouter and copilot adapters embed a Client and delegate their chat
// streaming to it, injecting their own base URL and extra headers.
type Client struct {
	kind       provider.Kind
	httpClient *http.Client
	chatURL    string
	modelsURL  string
	apiKey     string
	model      string

	// ExtraHeaders are added to every request. Used by wrapping adapters
	// (Copilot integration headers).
	ExtraHeaders map[string]string
}

// Ensure Client implements provider.Adapter at compile time.
var _ provider.Adapter = (*Client)(nil)

// New creates a Client for one of the kinds this package serves directly.
func New(cfg provider.Config) (*Client, error) {
	switch cfg.Kind {
	case provider.KindOpenAI, provider.KindMistral, provider.KindGroq,
		provider.KindDeepSeek, provider.KindXAI, provider.KindGeneric:
		return NewClient(cfg.Kind, cfg.BaseURL, cfg.APIKey, cfg.Model), nil
	}
	return nil, fmt.Errorf("openaicompat: kind %q is not OpenAI-compatible", cfg.Kind)
}

// NewClient creates a Client with an explicit kind and base URL override.
// Wrapping adapters use this to point the client at an exchanged or
// alternative base.
func NewClient(kind provider.Kind, baseURL, apiKey, model string) *Client {
	return &Client{
		kind:       kind,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		chatURL:    provider.ChatURL(kind, baseURL, model),
		modelsURL:  provider.ModelsURL(kind, baseURL),
		apiKey:     apiKey,
		model:      model,
	}
}

// Kind returns the provider variant this client serves.
func (c *Client) Kind() provider.Kind {
	return c.kind
}

// StreamChat sends the conversation with stream enabled and parses the SSE
// response into normalized events.
//
// The HTTP client timeout is not applied for streaming requests because a
// stream can legitimately last longer than any fixed timeout. Lifecycle
// control relies on context cancellation instead.
func (c *Client) StreamChat(ctx context.Context, messages []api.Message) (<-chan api.StreamEvent, error) {
	// A missing key is a configuration error, never a network call.
	if c.apiKey == "" {
		return nil, api.NewConfigError(fmt.Sprintf("%s: API key is required", c.kind))
	}

	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return nil, api.NewProtocolError("marshaling request: " + err.Error())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL, bytes.NewReader(body))
	if err != nil {
		return nil, api.NewNetworkError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	for k, v := range c.ExtraHeaders {
		httpReq.Header.Set(k, v)
	}

	// Use a client without timeout for streaming. The context controls
	// the request lifetime instead.
	streamClient := &http.Client{Transport: c.httpClient.Transport}

	httpResp, err := streamClient.Do(httpReq)
	if err != nil {
		return nil, api.NewNetworkError(err)
	}

	// Check for error status codes before starting the stream.
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		defer httpResp.Body.Close()
		return nil, api.NewUpstreamError(httpResp.StatusCode, readErrorBody(httpResp.Body))
	}

	// Create the event channel and spawn a goroutine to parse the stream.
	ch := make(chan api.StreamEvent, 16)

	go func() {
		defer close(ch)
		defer httpResp.Body.Close()
		parseStream(ctx, httpResp.Body, ch)
	}()

	return ch, nil
}

// ListModels queries the /models endpoint and filters out non-chat entries
// through the per-kind denylist.
func (c *Client) ListModels(ctx context.Context) ([]api.ModelInfo, error) {
	if c.apiKey == "" {
		return nil, api.NewConfigError(fmt.Sprintf("%s: API key is required", c.kind))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.modelsURL, nil)
	if err != nil {
		return nil, api.NewNetworkError(err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	for k, v := range c.ExtraHeaders {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, api.NewNetworkError(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, api.NewUpstreamError(httpResp.StatusCode, readErrorBody(httpResp.Body))
	}

	var listing modelsResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&listing); err != nil {
		return nil, api.NewProtocolError(fmt.Sprintf("%s: parsing models response: %s", c.kind, err.Error()))
	}

	var models []api.ModelInfo
	for _, m := range listing.Data {
		if m.ID == "" || denylisted(c.kind, m.ID) {
			continue
		}
		models = append(models, api.ModelInfo{ID: m.ID, DisplayName: m.ID})
	}
	return api.SortModels(models), nil
}

// Close releases client resources.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// readErrorBody drains an error response body for inclusion in an
// upstream error.
func readErrorBody(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return ""
	}
	return string(data)
}
