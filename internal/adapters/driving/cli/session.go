package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

var sessionCmd = &cobra.Command{
	Use:     "sessions",
	Aliases: []string{"session"},
	Short:   "Manage question sessions",
	Long:    `List, create, or delete the question sessions of a document.`,
}

var sessionListCmd = &cobra.Command{
	Use:   "list [doc-id]",
	Short: "List sessions of a document, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionList,
}

var sessionNewCmd = &cobra.Command{
	Use:   "new [doc-id]",
	Short: "Create a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionNew,
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id] [session-id]",
	Short: "Delete a session and its history",
	Args:  cobra.ExactArgs(2),
	RunE:  runSessionDelete,
}

func init() {
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionNewCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	rootCmd.AddCommand(sessionCmd)
}

// requireWorkspace checks the services the session commands need.
func requireWorkspace() error {
	if navigationService == nil || workspaceService == nil {
		return errors.New("workspace service not configured")
	}
	return nil
}

func runSessionList(cmd *cobra.Command, args []string) error {
	if err := requireWorkspace(); err != nil {
		return err
	}
	if err := navigationService.OpenDocument(args[0]); err != nil {
		return err
	}

	entries, err := workspaceService.Sessions(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(entries) == 0 {
		cmd.Printf("No sessions for document: %s\n", args[0])
		return nil
	}

	cmd.Printf("Sessions for document %s:\n\n", args[0])
	for i := range entries {
		cmd.Printf("  %s  created %s\n", entries[i].ID, entries[i].CreatedAt.Format(domain.TimestampLayout))
	}
	return nil
}

func runSessionNew(cmd *cobra.Command, args []string) error {
	if err := requireWorkspace(); err != nil {
		return err
	}
	if err := navigationService.OpenDocument(args[0]); err != nil {
		return err
	}

	session, err := workspaceService.CreateSession(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	cmd.Println(session.ID)
	return nil
}

func runSessionDelete(cmd *cobra.Command, args []string) error {
	if err := requireWorkspace(); err != nil {
		return err
	}
	if err := navigationService.OpenDocument(args[0]); err != nil {
		return err
	}

	if _, err := workspaceService.DeleteSession(commandContext(cmd), args[1]); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	cmd.Printf("Deleted session: %s\n", args[1])
	return nil
}
