package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zoonderkins/claude-confirm/config"
	"github.com/zoonderkins/claude-confirm/version"
)

var rootCmd = &cobra.Command{
	Use:   "claude-confirm",
	Short: "MCP server that asks the user to confirm an agent's work",
	Long: `claude-confirm is a Model Context Protocol server exposing a single
"confirm" tool. Each call shows the agent's summary and optional follow-up
tasks in the claude-confirm-ui presentation adapter and returns the user's
decision to the agent.

Running 'claude-confirm' without a subcommand is equivalent to 'claude-confirm serve'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the 'serve' command
		return serveCmd.RunE(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "claude-confirm %s\n", version.Version)
		return err
	},
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(versionCmd)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config.yaml (default: $"+config.ConfigEnvVar+" or ~/.claude-confirm/config.yaml)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the file named by --config, falling back to defaults
// when it cannot be read
func loadConfig(cmd *cobra.Command, warn io.Writer) *config.Config {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(warn, "Warning: failed to load config, using defaults: %v\n", err)
		return config.Get()
	}
	return cfg
}
