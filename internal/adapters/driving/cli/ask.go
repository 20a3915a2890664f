package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

var (
	askSession    string
	askNewSession bool
	askPlain      bool
)

var askCmd = &cobra.Command{
	Use:   "ask [doc-id] [question]",
	Short: "Ask a question about a document",
	Long: `Asks a question in a session of a document and prints the answer.

Pass --session to continue a session or --new-session to start one.
Press Ctrl-C while waiting to cancel the question.

Answers are rendered as markdown when printing to a terminal.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askSession, "session", "s", "", "session id to ask in")
	askCmd.Flags().BoolVarP(&askNewSession, "new-session", "n", false, "create a new session first")
	askCmd.Flags().BoolVar(&askPlain, "plain", false, "print answers without markdown rendering")
	askCmd.MarkFlagsMutuallyExclusive("session", "new-session")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := requireWorkspace(); err != nil {
		return err
	}
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if askSession == "" && !askNewSession {
		return errors.New("specify --session or --new-session")
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	documentID := args[0]
	question := strings.Join(args[1:], " ")

	if err := documentService.Open(ctx, documentID); err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}

	if askNewSession {
		session, err := workspaceService.CreateSession(ctx)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Session: %s\n", session.ID)
	} else if err := workspaceService.SwitchSession(askSession); err != nil {
		return err
	}

	flight, err := workspaceService.Submit(ctx, question)
	if err != nil {
		return err
	}

	var outcome domain.Outcome
	if flight != nil {
		done := make(chan domain.Completion, 1)
		go func() { done <- flight.Await() }()

		select {
		case completion := <-done:
			outcome = workspaceService.Complete(completion)
		case <-ctx.Done():
			logger.Debug("Interrupted, cancelling question")
			workspaceService.Cancel()
			// The stale completion arrives once the request unwinds.
			workspaceService.Complete(<-done)
		}
	}

	if outcome.Fatal {
		return fmt.Errorf("question failed: %w", outcome.Err)
	}

	entries := workspaceService.Entries()
	if len(entries) == 0 {
		return errors.New("no answer recorded")
	}
	return printAnswer(cmd.OutOrStdout(), entries[len(entries)-1].Answer, !askPlain)
}

// printAnswer renders answer as markdown when w is a terminal and markdown is wanted.
func printAnswer(w io.Writer, answer string, markdown bool) error {
	if markdown {
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			width, _, err := term.GetSize(int(f.Fd()))
			if err != nil || width <= 0 {
				width = 80
			}
			rendered, err := renderMarkdown(answer, width)
			if err == nil {
				_, err = io.WriteString(w, rendered)
				return err
			}
			logger.Debug("Markdown rendering failed: %v", err)
		}
	}

	_, err := fmt.Fprintln(w, answer)
	return err
}

func renderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
