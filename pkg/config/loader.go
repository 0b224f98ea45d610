package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, STROM_CONFIG env, ./strom.yaml, ~/.config/strom/strom.yaml)
//  3. Environment variable overrides (STROM_ prefix)
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
//  1. Explicit configPath argument
//  2. STROM_CONFIG environment variable
//  3. ./strom.yaml in the current directory
//  4. ~/.config/strom/strom.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("STROM_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{"strom.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "strom", "strom.yaml"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps STROM_* environment variables to config fields.
// STROM_MODEL, STROM_API_KEY and STROM_BASE_URL apply to the default
// provider's entry, so a single-provider setup needs no config file at all.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STROM_PROVIDER"); v != "" {
		cfg.DefaultProvider = v
		// An env-only setup may have no providers block; synthesize an
		// entry whose kind matches its name.
		if cfg.entry(v) == nil {
			cfg.Providers = append(cfg.Providers, ProviderEntry{Name: v, Kind: v})
		}
	}

	if entry := cfg.entry(cfg.DefaultProvider); entry != nil {
		if v := os.Getenv("STROM_MODEL"); v != "" {
			entry.Model = v
		}
		if v := os.Getenv("STROM_API_KEY"); v != "" {
			entry.APIKey = v
		}
		if v := os.Getenv("STROM_BASE_URL"); v != "" {
			entry.BaseURL = v
		}
	}

	if v := os.Getenv("STROM_GITHUB_CLIENT_ID"); v != "" {
		cfg.Copilot.ClientID = v
	}
	if v := os.Getenv("STROM_DEBUG"); v != "" {
		cfg.Debug.Categories = v
	}
	if v := os.Getenv("STROM_LOG_LEVEL"); v != "" {
		cfg.Debug.Level = v
	}
}

// entry returns a pointer into Providers for the named entry, or nil.
func (c *Config) entry(name string) *ProviderEntry {
	for i := range c.Providers {
		if c.Providers[i].Name == name {
			return &c.Providers[i]
		}
	}
	return nil
}

// resolveFileReferences reads _file fields and populates the corresponding
// value fields. The value field wins when both are set.
func resolveFileReferences(cfg *Config) error {
	for i := range cfg.Providers {
		p := &cfg.Providers[i]
		if p.APIKeyFile != "" && p.APIKey == "" {
			val, err := readSecretFile(p.APIKeyFile)
			if err != nil {
				return fmt.Errorf("providers[%d].api_key_file: %w", i, err)
			}
			p.APIKey = val
		}
	}

	if cfg.Copilot.GitHubTokenFile != "" && cfg.Copilot.GitHubToken == "" {
		val, err := readSecretFile(cfg.Copilot.GitHubTokenFile)
		if err != nil {
			return fmt.Errorf("copilot.github_token_file: %w", err)
		}
		cfg.Copilot.GitHubToken = val
	}

	return nil
}

// readSecretFile reads a file and returns its content with surrounding
// whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
