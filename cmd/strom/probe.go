package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strom-dev/strom/pkg/engine"
)

func newProbeCmd(state *rootState) *cobra.Command {
	var providerName string

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Send a minimal prompt to verify a provider configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := state.cfg.Resolve(providerName)
			if err != nil {
				return err
			}
			if cfg.Model == "" {
				return fmt.Errorf("no model configured; set providers[].model")
			}

			if err := engine.Probe(cmd.Context(), cfg); err != nil {
				return fmt.Errorf("probe failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", cfg.Kind)
			return nil
		},
	}

	cmd.Flags().StringVar(&providerName, "provider", "", "configured provider name (default: default_provider)")
	return cmd
}
