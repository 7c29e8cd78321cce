package driven

import (
	"context"

	"github.com/helioshr/policyqa/internal/core/domain"
)

// DocumentStore persists documents and their embedded chunks.
// Backed by SQLite; an in-memory implementation exists for tests.
//
// All retrieval entry points are tenant-scoped and must filter inside the
// store, never client-side after an unscoped fetch.
type DocumentStore interface {
	// SaveDocument stores a document row.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SaveChunks stores chunks for a document. Chunk rows are append-only.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunks retrieves all chunks for a document, ordered by position.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// ListDocuments returns all documents belonging to a tenant.
	ListDocuments(ctx context.Context, tenantID string) ([]domain.Document, error)

	// SearchChunks returns the k chunks of the given tenant most similar
	// to the query vector, ordered by descending cosine similarity.
	// Exact ties keep the underlying storage order. An empty result is
	// valid and means "no relevant content".
	SearchChunks(ctx context.Context, tenantID string, query []float32, k int) ([]domain.ScoredChunk, error)

	// DeleteChunksForDocument removes all chunks of a document.
	// Removing chunks of an unknown document is a no-op.
	DeleteChunksForDocument(ctx context.Context, documentID string) error

	// DeleteDocument removes a document row. Callers must delete the
	// document's chunks first; see services.IngestService.Delete.
	DeleteDocument(ctx context.Context, id string) error
}
