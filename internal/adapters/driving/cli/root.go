// Package cli provides the cobra command tree for docchat.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// version is set at build time.
var version = "dev"

// NoticeRouter swaps the sink that core notices are delivered to.
type NoticeRouter interface {
	SetSink(sink driven.Notifier) driven.Notifier
}

// Services holds the core services the commands drive.
type Services struct {
	Documents  driving.DocumentService
	Workspace  driving.WorkspaceService
	Navigation driving.NavigationService
	Settings   driving.SettingsService

	// Notices is optional; the TUI routes notices to its status bar through it.
	Notices NoticeRouter
}

// Options are the global flags passed to the bootstrap function.
type Options struct {
	Verbose    bool
	BackendURL string
}

// BootstrapFunc builds the services once global flags are parsed.
type BootstrapFunc func(opts Options) (Services, error)

var (
	documentService   driving.DocumentService
	workspaceService  driving.WorkspaceService
	navigationService driving.NavigationService
	settingsService   driving.SettingsService
	noticeRouter      NoticeRouter

	bootstrap BootstrapFunc
)

// Global flags.
var (
	verboseFlag bool
	backendFlag string
)

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Ask questions about your documents",
	Long: `docchat is a terminal client for a document question-answering backend.

Upload PDFs, open a document, and ask questions in sessions whose history
the backend keeps. Run 'docchat tui' for the interactive interface.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "backend base URL (overrides backend.base_url)")
}

// SetServices sets the services used by all commands.
func SetServices(s Services) {
	documentService = s.Documents
	workspaceService = s.Workspace
	navigationService = s.Navigation
	settingsService = s.Settings
	noticeRouter = s.Notices
}

// SetBootstrap registers fn to build the services before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runBootstrap(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)
	if bootstrap == nil {
		return nil
	}

	services, err := bootstrap(Options{Verbose: verboseFlag, BackendURL: backendFlag})
	if err != nil {
		return fmt.Errorf("starting docchat: %w", err)
	}
	SetServices(services)
	return nil
}

// commandContext returns the command's context, or a background context.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
