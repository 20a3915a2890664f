package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

var (
	historySession string
	historyJSON    bool
)

var historyCmd = &cobra.Command{
	Use:   "history [doc-id]",
	Short: "Show the questions and answers of a session",
	Long:  `Prints the history the backend stored for a session, oldest first.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historySession, "session", "s", "", "session id (required)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output history as JSON")
	_ = historyCmd.MarkFlagRequired("session")
	rootCmd.AddCommand(historyCmd)
}

// historyRow is the JSON form of one exchange.
type historyRow struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Timestamp string `json:"timestamp,omitempty"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := requireWorkspace(); err != nil {
		return err
	}
	if historySession == "" {
		return errors.New("--session is required")
	}

	if err := navigationService.OpenDocument(args[0]); err != nil {
		return err
	}
	if err := navigationService.SwitchTo(historySession); err != nil {
		return err
	}
	if err := workspaceService.EnterSession(commandContext(cmd)); err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	entries := workspaceService.Entries()
	if historyJSON {
		return outputHistoryJSON(cmd, entries)
	}
	return outputHistoryText(cmd, entries)
}

func outputHistoryJSON(cmd *cobra.Command, entries []domain.DisplayEntry) error {
	rows := make([]historyRow, len(entries))
	for i := range entries {
		rows[i] = historyRow{Question: entries[i].Question, Answer: entries[i].Answer}
		if entries[i].Persisted {
			rows[i].Timestamp = entries[i].Timestamp.Format(domain.TimestampLayout)
		}
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputHistoryText(cmd *cobra.Command, entries []domain.DisplayEntry) error {
	if len(entries) == 0 {
		cmd.Println("No questions asked in this session yet.")
		return nil
	}

	for i := range entries {
		if entries[i].Persisted {
			cmd.Printf("[%s]\n", entries[i].Timestamp.Format(domain.TimestampLayout))
		}
		cmd.Printf("Q: %s\n", entries[i].Question)
		cmd.Printf("A: %s\n", entries[i].Answer)
		cmd.Println()
	}
	return nil
}
