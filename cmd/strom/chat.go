package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strom-dev/strom/pkg/api"
	"github.com/strom-dev/strom/pkg/engine"
)

func newChatCmd(state *rootState) *cobra.Command {
	var (
		providerName string
		model        string
		system       string
	)

	cmd := &cobra.Command{
		Use:   "chat [prompt...]",
		Short: "Send a prompt and stream the reply to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := state.cfg.Resolve(providerName)
			if err != nil {
				return err
			}
			if model != "" {
				cfg.Model = model
			}
			if cfg.Model == "" {
				return fmt.Errorf("no model configured; set providers[].model or pass --model")
			}

			prompt := strings.Join(args, " ")
			if prompt == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading prompt from stdin: %w", err)
				}
				prompt = strings.TrimSpace(string(data))
			}
			if prompt == "" {
				return fmt.Errorf("no prompt given")
			}

			var messages []api.Message
			if system != "" {
				messages = append(messages, api.Message{Role: api.RoleSystem, Content: system})
			}
			messages = append(messages, api.Message{Role: api.RoleUser, Content: prompt})

			out := cmd.OutOrStdout()
			var tokens int
			err = engine.Stream(cmd.Context(), cfg, messages, func(ev api.StreamEvent) {
				switch ev.Type {
				case api.EventDelta:
					fmt.Fprint(out, ev.Content)
				case api.EventDone:
					tokens = ev.TotalTokens
				}
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(out)
			if tokens > 0 {
				fmt.Fprintf(os.Stderr, "(%d tokens)\n", tokens)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&providerName, "provider", "", "configured provider name (default: default_provider)")
	cmd.Flags().StringVar(&model, "model", "", "model override")
	cmd.Flags().StringVar(&system, "system", "", "system message to prepend")
	return cmd
}
