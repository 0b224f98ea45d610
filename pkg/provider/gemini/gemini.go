package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/provider"
)

const maxErrorBody = 8192

// Provider implements provider.Adapter for the Gemini generateContent API.
type Provider struct {
	cfg        provider.Config
	httpClient *http.Client
}

// Ensure Provider implements provider.Adapter at compile time.
var _ provider.Adapter = (*Provider)(nil)

// New creates a Gemini adapter from the given configuration.
func New(cfg provider.Config) (*Provider, error) {
	if cfg.Kind != provider.KindGemini {
		return nil, fmt.Errorf("gemini: kind %q is not gemini", cfg.Kind)
	}
	return &Provider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// Kind returns the provider variant this adapter serves.
func (p *Provider) Kind() provider.Kind {
	return provider.KindGemini
}

// StreamChat sends the conversation to streamGenerateContent and parses the
// SSE response into normalized events.
//
// The API key travels as a key= query parameter, never as a header. System
// messages are excluded from contents entirely; this adapter has no system
// prompt support.
func (p *Provider) StreamChat(ctx context.Context, messages []api.Message) (<-chan api.StreamEvent, error) {
	if p.cfg.APIKey == "" {
		return nil, api.NewConfigError("gemini: API key is required")
	}

	body, err := json.Marshal(generateRequest{Contents: toContents(messages)})
	if err != nil {
		return nil, api.NewProtocolError("marshaling request: " + err.Error())
	}

	// ChatURL already carries ?alt=sse; the key is appended to it.
	endpoint := provider.ChatURL(provider.KindGemini, p.cfg.BaseURL, p.cfg.Model) +
		"&key=" + url.QueryEscape(p.cfg.APIKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, api.NewNetworkError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
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

// toContents maps normalized messages to Gemini turns: assistant becomes
// "model", everything else becomes "user", and system messages are dropped.
func toContents(messages []api.Message) []content {
	contents := make([]content, 0, len(messages))
	for _, m := range messages {
		if m.Role == api.RoleSystem {
			continue
		}
		role := "user"
		if m.Role == api.RoleAssistant {
			role = "model"
		}
		contents = append(contents, content{
			Role:  role,
			Parts: []part{{Text: m.Content}},
		})
	}
	return contents
}

func readErrorBody(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return ""
	}
	return string(data)
}
