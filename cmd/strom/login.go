package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/strom-dev/strom/pkg/provider/copilot"
)

func newLoginCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against a provider",
	}
	cmd.AddCommand(newLoginCopilotCmd(state))
	return cmd
}

func newLoginCopilotCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "copilot",
		Short: "Run the GitHub device flow and print the resulting token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			oauth := copilot.NewOAuthClient(state.cfg.Copilot.ClientID)
			flow, err := oauth.StartDeviceFlow(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Open %s and enter the code: %s\n", flow.VerificationURI, flow.UserCode)
			fmt.Fprintln(out, "Waiting for authorization...")

			interval := time.Duration(flow.Interval) * time.Second
			if interval <= 0 {
				interval = 5 * time.Second
			}
			deadline := time.Now().Add(time.Duration(flow.ExpiresIn) * time.Second)

			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(interval):
				}
				if time.Now().After(deadline) {
					return fmt.Errorf("device code expired before authorization")
				}

				token, err := oauth.PollToken(ctx, flow.DeviceCode)
				if err != nil {
					var oauthErr *copilot.OAuthError
					if errors.As(err, &oauthErr) {
						if oauthErr.Pending() {
							continue
						}
						if oauthErr.SlowDown() {
							interval += 5 * time.Second
							continue
						}
					}
					return err
				}

				fmt.Fprintln(out, "Authorized.")
				fmt.Fprintf(out, "Add this to your strom.yaml:\n\ncopilot:\n  github_token: %s\n", token)
				return nil
			}
		},
	}
}
