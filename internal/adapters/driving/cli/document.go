package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"document", "docs"},
	Short:   "Manage uploaded documents",
	Long:    `List, upload, import, initialise, or delete documents on the backend.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var documentUploadCmd = &cobra.Command{
	Use:   "upload [path]",
	Short: "Upload a local PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentUpload,
}

var documentImportCmd = &cobra.Command{
	Use:   "import [url]",
	Short: "Import a PDF from a download link",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentImport,
}

var documentInitCmd = &cobra.Command{
	Use:   "init [doc-id]",
	Short: "Prepare a document for questions",
	Long:  `Asks the backend to initialise a document. Opening a document in the TUI does this automatically.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentInit,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentUploadCmd)
	documentCmd.AddCommand(documentImportCmd)
	documentCmd.AddCommand(documentInitCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents uploaded.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Name: %s\n", docs[i].BaseName())
		if ext := docs[i].Extension(); ext != "" {
			cmd.Printf("    Type: %s\n", ext)
		}
		cmd.Printf("    Uploaded: %s\n", docs[i].CreatedAt.Format(domain.TimestampLayout))
	}

	cmd.Printf("\nTotal: %d documents\n", len(docs))
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document: %s\n", args[0])
	return nil
}

func runDocumentUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	detail, err := documentService.Upload(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to upload document: %w", err)
	}

	cmd.Println(detail)
	return nil
}

func runDocumentImport(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	detail, err := documentService.Import(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to import document: %w", err)
	}

	cmd.Println(detail)
	return nil
}

func runDocumentInit(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Open(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to initialise document: %w", err)
	}

	cmd.Printf("Document %s is ready for questions.\n", args[0])
	return nil
}
