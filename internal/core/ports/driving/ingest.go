package driving

import (
	"context"

	"github.com/helioshr/policyqa/internal/core/domain"
)

// IngestRequest describes one uploaded file.
type IngestRequest struct {
	// TenantID is the owning tenant. Required.
	TenantID string

	// Filename is the original file name; it becomes the document title.
	Filename string

	// MIMEType is the declared content type.
	MIMEType string

	// Data is the raw file bytes.
	Data []byte

	// UploadedBy identifies the uploading user. Optional.
	UploadedBy string
}

// ChunkFailure records a single chunk that could not be indexed.
type ChunkFailure struct {
	// Position is the chunk's ordinal position within the document.
	Position int

	// Err is the embedding or storage error for that chunk.
	Err error
}

// IngestResult reports what happened to an upload. Indexing is
// best-effort: callers compare Indexed against ChunkCount to decide
// whether to warn the user about a partially searchable document.
type IngestResult struct {
	// DocumentID is the id of the created document.
	DocumentID string

	// ChunkCount is how many chunks the text split into.
	ChunkCount int

	// Indexed is how many chunks were embedded and stored.
	Indexed int

	// Failures lists the chunks that were skipped.
	Failures []ChunkFailure
}

// IngestService coordinates upload, extraction, chunking and indexing.
type IngestService interface {
	// Ingest stores the raw bytes, extracts text, chunks it and indexes
	// the chunks. Extraction producing no text is not an error: the
	// document is uploaded with zero searchable chunks.
	Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error)

	// Delete removes a document, its chunks and its raw bytes. Chunks go
	// strictly before the document row. Deleting an unknown document is
	// a no-op.
	Delete(ctx context.Context, tenantID, documentID string) error

	// ListDocuments returns the tenant's documents.
	ListDocuments(ctx context.Context, tenantID string) ([]domain.Document, error)
}
