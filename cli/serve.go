package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zoonderkins/claude-confirm/setup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the confirm tool over MCP stdio",
	Long: `Serve speaks the Model Context Protocol on stdin/stdout until stdin is
closed or the process is interrupted. Diagnostics are written to stderr.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	stderr := cmd.ErrOrStderr()
	cfg := loadConfig(cmd, stderr)
	logger := setup.NewLogger(cfg, stderr)

	// Bootstrap the server
	bootstrap, err := setup.Initialize(cfg, logger)
	if err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}
	defer bootstrap.Cleanup()

	return bootstrap.Server.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
}
