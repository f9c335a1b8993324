package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zoonderkins/claude-confirm/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past confirmations",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent confirmations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		return withHistory(cmd, func(store *history.Store) error {
			entries, err := store.List(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No confirmations recorded yet.")
				return nil
			}
			printEntries(cmd.OutOrStdout(), entries)
			return nil
		})
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <request-id>",
	Short: "Show one confirmation as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(store *history.Store) error {
			entry, err := store.Get(args[0])
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(entry, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal entry: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		})
	},
}

var historySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over messages and user input",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		return withHistory(cmd, func(store *history.Store) error {
			results, err := store.Search(strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
				return nil
			}
			entries := make([]history.Entry, len(results))
			for i, r := range results {
				entries[i] = r.Entry
			}
			printEntries(cmd.OutOrStdout(), entries)
			return nil
		})
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Maximum number of entries (0 for all)")
	historySearchCmd.Flags().IntP("limit", "n", 10, "Maximum number of matches")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historySearchCmd)
}

func withHistory(cmd *cobra.Command, fn func(store *history.Store) error) error {
	cfg := loadConfig(cmd, cmd.ErrOrStderr())

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	return fn(store)
}

var (
	outcomeStyles = map[string]lipgloss.Style{
		history.OutcomeCancelled: lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		history.OutcomeConfirmed: lipgloss.NewStyle().Foreground(lipgloss.Color("72")),
		history.OutcomeSelected:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func printEntries(w io.Writer, entries []history.Entry) {
	for _, e := range entries {
		outcome := e.Outcome()
		label := outcomeStyles[outcome].Render(fmt.Sprintf("%-9s", outcome))
		fmt.Fprintf(w, "%s  %s  %s\n",
			dimStyle.Render(e.CreatedAt.Local().Format("2006-01-02 15:04")),
			label,
			firstLine(e.Message, 70))

		details := fmt.Sprintf("           id=%s", e.RequestID)
		if e.ProjectName != "" {
			details += " project=" + e.ProjectName
		}
		if len(e.Selected) > 0 {
			details += fmt.Sprintf(" selected=%v", e.Selected)
		}
		fmt.Fprintln(w, dimStyle.Render(details))
	}
}

func firstLine(s string, limit int) string {
	line := strings.SplitN(strings.TrimSpace(s), "\n", 2)[0]
	if len([]rune(line)) > limit {
		return string([]rune(line)[:limit]) + "..."
	}
	return line
}
