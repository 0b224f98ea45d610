package config

import (
	"fmt"

	"github.com/strom-dev/strom/pkg/provider"
)

// Resolve turns a named providers entry into a provider.Config. An empty
// name selects the default provider. Copilot entries with no api_key of
// their own inherit the copilot.github_token value.
func (c *Config) Resolve(name string) (provider.Config, error) {
	if name == "" {
		name = c.DefaultProvider
	}
	if name == "" {
		return provider.Config{}, fmt.Errorf("no provider named and no default_provider set")
	}

	entry := c.entry(name)
	if entry == nil {
		return provider.Config{}, fmt.Errorf("provider %q has no providers entry", name)
	}

	kind, err := provider.ParseKind(entry.Kind)
	if err != nil {
		return provider.Config{}, fmt.Errorf("provider %q: %w", name, err)
	}

	cfg := provider.Config{
		Kind:    kind,
		APIKey:  entry.APIKey,
		BaseURL: entry.BaseURL,
		Model:   entry.Model,
	}
	if kind == provider.KindGitHubCopilot && cfg.APIKey == "" {
		cfg.APIKey = c.Copilot.GitHubToken
	}
	return cfg, nil
}

// ResolveAll turns every providers entry into a provider.Config, in
// declaration order.
func (c *Config) ResolveAll() ([]provider.Config, error) {
	configs := make([]provider.Config, 0, len(c.Providers))
	for _, p := range c.Providers {
		cfg, err := c.Resolve(p.Name)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}
