// Command claude-confirm-ui is the terminal presentation adapter launched by
// claude-confirm for each confirmation. It prints exactly one JSON answer on
// stdout; diagnostics go to stderr.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zoonderkins/claude-confirm/bridge"
	"github.com/zoonderkins/claude-confirm/ui"
	"github.com/zoonderkins/claude-confirm/version"
)

func newRootCmd() *cobra.Command {
	var requestPath string

	cmd := &cobra.Command{
		Use:           "claude-confirm-ui",
		Short:         "Terminal confirmation prompt for claude-confirm",
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if requestPath == "" {
				return fmt.Errorf("%s <path> is required", bridge.RequestFlag)
			}

			req, err := ui.LoadRequest(requestPath)
			if err != nil {
				return err
			}

			tty, err := ui.OpenTerminal()
			if err != nil {
				return err
			}
			defer tty.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			prompt := &ui.TerminalConfirmation{In: tty, Out: tty}
			resp, err := prompt.RequestConfirmation(ctx, req)
			if err != nil {
				return err
			}

			return ui.WriteResponse(cmd.OutOrStdout(), resp)
		},
	}

	// the bridge passes --mcp-request, which maps to this flag name
	cmd.Flags().StringVar(&requestPath, bridge.RequestFlag[2:], "", "Path to the request file written by claude-confirm")

	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "claude-confirm-ui: %v\n", err)
		os.Exit(1)
	}
}
