package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoonderkins/claude-confirm/core/audit"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent confirm invocations from the audit log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		loadConfig(cmd, cmd.ErrOrStderr())

		logs, err := audit.GetRecentAuditLogs(limit)
		if err != nil {
			return err
		}
		if len(logs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Audit log is empty.")
			return nil
		}

		out := cmd.OutOrStdout()
		for _, entry := range logs {
			status := "confirmed"
			switch {
			case entry.ErrorKind != "":
				status = "error:" + entry.ErrorKind
			case entry.UserCancelled:
				status = "cancelled"
			}
			fmt.Fprintf(out, "%s  %-22s %6dms  %s\n",
				dimStyle.Render(entry.Timestamp.Local().Format("2006-01-02 15:04:05")),
				status,
				entry.DurationMS,
				firstLine(entry.Message, 60))
		}
		return nil
	},
}

func init() {
	auditCmd.Flags().IntP("limit", "n", 20, "Number of most recent entries (0 for all)")
}
