package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for docchat.

Browse your documents, open one, and ask questions in sessions. Answers are
rendered as markdown and the session history is kept by the backend.

Controls:
  ↑/k, ↓/j  - Navigate
  Enter     - Select / Ask
  Esc       - Back / Cancel the pending question
  Ctrl+N    - New session
  Tab       - Focus the session list
  ?         - Help
  Ctrl+C    - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if workspaceService == nil || navigationService == nil || documentService == nil {
		return errors.New("workspace service not configured")
	}

	ports := tui.NewPorts(documentService, workspaceService, navigationService, settingsService)

	// Notices go to the status bar while the TUI owns the screen.
	notifier := tui.NewNotifier()
	defer notifier.Close()
	if noticeRouter != nil {
		prev := noticeRouter.SetSink(notifier)
		defer noticeRouter.SetSink(prev)
	}

	// Console logs would corrupt the alternate screen.
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	app, err := tui.NewApp(ports, notifier)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(commandContext(cmd))

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
