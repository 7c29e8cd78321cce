package cli

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/helioshr/policyqa/internal/core/ports/driving"
)

var (
	ingestMIMEType   string
	ingestUploadedBy string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Upload and index a policy document",
	Long: `Stores the file, extracts its text, splits it into chunks and
indexes them for the tenant given via --tenant.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestMIMEType, "mime", "", "media type (default: guessed from the extension)")
	ingestCmd.Flags().StringVar(&ingestUploadedBy, "uploaded-by", "", "identity of the uploader")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if tenantID == "" {
		return errors.New("a tenant is required: pass --tenant or set POLICYQA_TENANT")
	}
	if err := ensureServices(); err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	mimeType := ingestMIMEType
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(path))
	}

	result, err := ingestService.Ingest(context.Background(), driving.IngestRequest{
		TenantID:   tenantID,
		Filename:   filepath.Base(path),
		MIMEType:   mimeType,
		Data:       data,
		UploadedBy: ingestUploadedBy,
	})
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %s as document %s\n", filepath.Base(path), result.DocumentID)
	cmd.Printf("  Chunks:  %d\n", result.ChunkCount)
	cmd.Printf("  Indexed: %d\n", result.Indexed)

	if len(result.Failures) > 0 {
		cmd.Printf("\nWarning: %d chunk(s) could not be indexed; the document is only partially searchable.\n", len(result.Failures))
		for _, f := range result.Failures {
			cmd.Printf("  chunk %d: %v\n", f.Position, f.Err)
		}
	}
	return nil
}
