package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/strom-dev/strom/pkg/config"
	"github.com/strom-dev/strom/pkg/debug"
	"github.com/strom-dev/strom/pkg/observability"
)

// rootState carries the loaded configuration to subcommands.
type rootState struct {
	configPath  string
	metricsAddr string
	debugCats   string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	state := &rootState{}

	root := &cobra.Command{
		Use:           "strom",
		Short:         "Stream chat completions from OpenAI, Anthropic, Gemini, Ollama, Copilot and friends",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A .env next to the binary is a dev convenience; missing is fine.
			_ = godotenv.Load()

			cfg, err := config.Load(state.configPath)
			if err != nil {
				return err
			}
			state.cfg = cfg

			cats := cfg.Debug.Categories
			if state.debugCats != "" {
				cats = state.debugCats
			}
			debug.Init(cats, cfg.Debug.Level)

			addr := cfg.Metrics.Addr
			if state.metricsAddr != "" {
				addr = state.metricsAddr
			}
			if addr != "" {
				observability.Serve(addr)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&state.configPath, "config", "", "path to strom.yaml")
	root.PersistentFlags().StringVar(&state.metricsAddr, "metrics-addr", "", "serve Prometheus /metrics on this address while running")
	root.PersistentFlags().StringVar(&state.debugCats, "debug", "", "debug categories (stream,models,oauth,config,all)")

	root.AddCommand(
		newChatCmd(state),
		newModelsCmd(state),
		newLoginCmd(state),
		newProbeCmd(state),
	)
	return root
}
