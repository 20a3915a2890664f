package cli

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/mcp"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

var (
	mcpPort int
	mcpHost string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose documents to AI assistants",
	Long:  `Serve documents, sessions and questions over the Model Context Protocol (MCP).`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default the server speaks JSON-RPC over stdio, as MCP clients such as
desktop assistants expect. Notices are written to the log while serving.

Tools: list_documents, list_sessions, ask_question.
Resources: docchat://documents and
docchat://documents/{documentId}/sessions/{sessionId}/history.

Pass --port to serve streamable HTTP instead:

  docchat mcp serve
  docchat mcp serve --port 8080 --host 0.0.0.0`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "localhost", "HTTP listen host")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if documentService == nil || workspaceService == nil || navigationService == nil {
		return errors.New("workspace service not configured")
	}

	ports := &mcp.Ports{
		Documents:  documentService,
		Workspace:  workspaceService,
		Navigation: navigationService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if noticeRouter != nil {
		prev := noticeRouter.SetSink(driven.NotifierFunc(logNotice))
		defer noticeRouter.SetSink(prev)
	}

	ctx := commandContext(cmd)
	if mcpPort > 0 {
		addr := net.JoinHostPort(mcpHost, strconv.Itoa(mcpPort))
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

// logNotice records a notice raised while no terminal is attached.
func logNotice(n domain.Notice) {
	if n.Level == domain.NoticeError {
		logger.Warn("%s", n.Message)
		return
	}
	logger.Info("%s", n.Message)
}
