package main

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/engine"
)

func newModelsCmd(state *rootState) *cobra.Command {
	var (
		providerName string
		all          bool
	)

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List available models",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if all {
				configs, err := state.cfg.ResolveAll()
				if err != nil {
					return err
				}
				if len(configs) == 0 {
					return fmt.Errorf("no providers configured")
				}

				results := engine.ListAllModels(cmd.Context(), configs)
				for i, res := range results {
					name := state.cfg.Providers[i].Name
					if res.Err != nil {
						fmt.Fprintf(out, "%s (%s): %v\n\n", name, res.Kind, res.Err)
						continue
					}
					fmt.Fprintf(out, "%s (%s):\n", name, res.Kind)
					fmt.Fprintln(out, modelTable(res.Models))
					fmt.Fprintln(out)
				}
				return nil
			}

			cfg, err := state.cfg.Resolve(providerName)
			if err != nil {
				return err
			}
			models, err := engine.ListModels(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, modelTable(models))
			return nil
		},
	}

	cmd.Flags().StringVar(&providerName, "provider", "", "configured provider name (default: default_provider)")
	cmd.Flags().BoolVar(&all, "all", false, "list every configured provider's catalog")
	return cmd
}

func modelTable(models []api.ModelInfo) *uitable.Table {
	table := uitable.New()
	table.AddRow("ID", "DISPLAY NAME", "CONTEXT")
	for _, m := range models {
		ctx := ""
		if m.ContextWindow > 0 {
			ctx = fmt.Sprintf("%d", m.ContextWindow)
		}
		table.AddRow(m.ID, m.DisplayName, ctx)
	}
	return table
}
