package copilot

import (
	"context"
	"fmt"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/provider"
	"github.com/strom-dev/strom/pkg/provider/openaicompat"
)

// defaultAPIBase is used when the token exchange response names no API
// endpoint.
const defaultAPIBase = "https://api.individual.githubcopilot.com"

// Headers the Copilot API requires on every chat and listing call.
const (
	integrationIDHeader = "vscode-chat"
	editorVersionHeader = "Strom/1.0"
)

// Provider implements provider.Adapter for GitHub Copilot. Config.APIKey
// carries the long-lived GitHub OAuth token; the short-lived API token is
// exchanged (or served from cache) per call.
type Provider struct {
	cfg   provider.Config
	oauth *OAuthClient
}

// Ensure Provider implements provider.Adapter at compile time.
var _ provider.Adapter = (*Provider)(nil)

// New creates a Copilot adapter from the given configuration.
func New(cfg provider.Config) (*Provider, error) {
	if cfg.Kind != provider.KindGitHubCopilot {
		return nil, fmt.Errorf("copilot: kind %q is not github_copilot", cfg.Kind)
	}
	return &Provider{
		cfg:   cfg,
		oauth: NewOAuthClient(""),
	}, nil
}

// Kind returns the provider variant this adapter serves.
func (p *Provider) Kind() provider.Kind {
	return provider.KindGitHubCopilot
}

// StreamChat exchanges for an API token (cache permitting) and delegates
// the stream to the OpenAI-compatible client with the Copilot headers set.
func (p *Provider) StreamChat(ctx context.Context, messages []api.Message) (<-chan api.StreamEvent, error) {
	client, err := p.apiClient(ctx)
	if err != nil {
		return nil, err
	}
	return client.StreamChat(ctx, messages)
}

// Close releases adapter resources.
func (p *Provider) Close() error {
	return nil
}

// apiClient builds an OpenAI-compatible client backed by a valid short-lived
// API token.
func (p *Provider) apiClient(ctx context.Context) (*openaicompat.Client, error) {
	tok, err := p.apiToken(ctx)
	if err != nil {
		return nil, err
	}

	// An explicit base URL override beats the exchange-provided endpoint.
	base := tok.BaseURL
	if p.cfg.BaseURL != "" {
		base = p.cfg.BaseURL
	}

	client := openaicompat.NewClient(provider.KindGitHubCopilot, base, tok.Token, p.cfg.Model)
	client.ExtraHeaders = map[string]string{
		"Copilot-Integration-Id": integrationIDHeader,
		"Editor-Version":         editorVersionHeader,
	}
	return client, nil
}

// apiToken returns a valid short-lived token, exchanging a fresh one when
// the cache misses or the cached entry is near expiry.
func (p *Provider) apiToken(ctx context.Context) (*APIToken, error) {
	if p.cfg.APIKey == "" {
		return nil, api.NewConfigError("github_copilot: GitHub token is required; run the device flow login first")
	}

	if tok, ok := cachedToken(p.cfg.APIKey); ok {
		return tok, nil
	}

	tok, err := p.oauth.ExchangeToken(ctx, p.cfg.APIKey)
	if err != nil {
		return nil, err
	}
	storeToken(p.cfg.APIKey, tok)
	return tok, nil
}
