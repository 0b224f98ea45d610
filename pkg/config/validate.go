package config

import (
	"errors"
	"fmt"

	"github.com/strom-dev/strom/pkg/provider"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(c.Providers))
	for i, p := range c.Providers {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("providers[%d].name is required", i))
			continue
		}
		if seen[p.Name] {
			errs = append(errs, fmt.Errorf("providers[%d].name %q is duplicated", i, p.Name))
		}
		seen[p.Name] = true

		if _, err := provider.ParseKind(p.Kind); err != nil {
			errs = append(errs, fmt.Errorf("providers[%d] (%s): %w", i, p.Name, err))
		}
	}

	if c.DefaultProvider != "" && !seen[c.DefaultProvider] {
		errs = append(errs, fmt.Errorf("default_provider %q has no providers entry", c.DefaultProvider))
	}

	return errors.Join(errs...)
}
