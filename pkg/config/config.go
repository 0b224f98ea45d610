// Package config provides unified configuration for the strom CLI and
// library callers.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (STROM_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

// Config holds all configuration for strom.
type Config struct {
	// DefaultProvider names the providers entry used when no --provider
	// flag is given.
	DefaultProvider string `yaml:"default_provider"`

	Providers []ProviderEntry `yaml:"providers"`

	Copilot CopilotConfig `yaml:"copilot"`

	Debug DebugConfig `yaml:"debug"`

	Metrics MetricsConfig `yaml:"metrics"`
}

// ProviderEntry describes one configured upstream provider.
type ProviderEntry struct {
	Name       string `yaml:"name"`         // unique handle used by the CLI
	Kind       string `yaml:"kind"`         // one of the provider.Kind strings
	APIKey     string `yaml:"api_key"`      // optional for ollama
	APIKeyFile string `yaml:"api_key_file"` // _file variant for api_key
	BaseURL    string `yaml:"base_url"`     // optional override
	Model      string `yaml:"model"`        // default model for chat
}

// CopilotConfig holds the GitHub Copilot OAuth settings.
type CopilotConfig struct {
	ClientID        string `yaml:"client_id"` // optional; published default applies
	GitHubToken     string `yaml:"github_token"`
	GitHubTokenFile string `yaml:"github_token_file"` // _file variant for github_token
}

// DebugConfig holds category debug logging settings.
type DebugConfig struct {
	Categories string `yaml:"categories"` // e.g. "stream,oauth"
	Level      string `yaml:"level"`      // ERROR|WARN|INFO|DEBUG|TRACE
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // e.g. ":9090"; empty disables the endpoint
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{}
}
