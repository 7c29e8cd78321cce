package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage the tenant's documents",
	Long:  `List or delete a tenant's uploaded policy documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tenant's documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document, its chunks and its stored file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if tenantID == "" {
		return errors.New("a tenant is required: pass --tenant or set POLICYQA_TENANT")
	}
	if err := ensureServices(); err != nil {
		return err
	}

	docs, err := ingestService.ListDocuments(context.Background(), tenantID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Printf("No documents found for tenant: %s\n", tenantID)
		return nil
	}

	cmd.Printf("Documents for tenant %s:\n\n", tenantID)
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Title:    %s\n", docs[i].Title)
		cmd.Printf("    Uploaded: %s\n", docs[i].UploadedAt.Format("2006-01-02 15:04:05"))
		if docs[i].UploadedBy != "" {
			cmd.Printf("    By:       %s\n", docs[i].UploadedBy)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if tenantID == "" {
		return errors.New("a tenant is required: pass --tenant or set POLICYQA_TENANT")
	}
	if err := ensureServices(); err != nil {
		return err
	}

	docID := args[0]
	if err := ingestService.Delete(context.Background(), tenantID, docID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Document %s deleted.\n", docID)
	return nil
}
