package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/helioshr/policyqa/internal/chunker"
	"github.com/helioshr/policyqa/internal/core/domain"
	"github.com/helioshr/policyqa/internal/core/ports/driven"
	"github.com/helioshr/policyqa/internal/core/ports/driving"
	"github.com/helioshr/policyqa/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultEmbedsPerSecond limits how fast indexing calls the embedding
// backend. Conservative enough to stay clear of API quotas.
const DefaultEmbedsPerSecond = 5

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// IngestConfig tunes the ingestion pipeline.
type IngestConfig struct {
	// EmbedsPerSecond is the sustained embedding request rate. Zero uses
	// the default; a negative value disables limiting.
	EmbedsPerSecond float64
}

// IngestService coordinates upload, extraction, chunking and indexing,
// and owns document deletion. It is the only writer of chunk rows and
// the only component allowed to delete documents and chunks together.
type IngestService struct {
	store    driven.DocumentStore
	blobs    driven.BlobStore
	registry driven.ExtractorRegistry
	embedder driven.EmbeddingService
	splitter *chunker.Chunker
	limiter  *rate.Limiter
}

// NewIngestService creates an ingest service.
func NewIngestService(
	store driven.DocumentStore,
	blobs driven.BlobStore,
	registry driven.ExtractorRegistry,
	embedder driven.EmbeddingService,
	splitter *chunker.Chunker,
	cfg IngestConfig,
) *IngestService {
	limit := rate.Limit(cfg.EmbedsPerSecond)
	if cfg.EmbedsPerSecond == 0 {
		limit = DefaultEmbedsPerSecond
	} else if cfg.EmbedsPerSecond < 0 {
		limit = rate.Inf
	}
	if splitter == nil {
		splitter = chunker.New()
	}
	return &IngestService{
		store:    store,
		blobs:    blobs,
		registry: registry,
		embedder: embedder,
		splitter: splitter,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Ingest stores the raw file, extracts its text, chunks it and indexes
// the chunks. Extraction yielding no text still counts as a successful
// upload: the document exists, it just has nothing searchable.
func (s *IngestService) Ingest(ctx context.Context, req driving.IngestRequest) (*driving.IngestResult, error) {
	tenantID := strings.TrimSpace(req.TenantID)
	if tenantID == "" {
		return nil, fmt.Errorf("%w: ingest requires a tenant id", domain.ErrTenantScope)
	}
	if len(req.Data) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}
	if s.embedder == nil {
		return nil, fmt.Errorf("%w: no embedding service", domain.ErrNotConfigured)
	}

	logger.Section("Ingest")
	logger.Info("Ingesting %q for tenant %s (%d bytes, %s)", req.Filename, tenantID, len(req.Data), req.MIMEType)

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Title:       req.Filename,
		StoragePath: storagePath(tenantID, req.Filename, now),
		MIMEType:    req.MIMEType,
		UploadedBy:  req.UploadedBy,
		UploadedAt:  now,
	}

	if err := s.blobs.Put(ctx, doc.StoragePath, req.Data); err != nil {
		return nil, fmt.Errorf("store raw bytes: %w", err)
	}
	if err := s.store.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	text, err := s.registry.Extract(ctx, req.Data, req.MIMEType)
	if err != nil {
		// Extraction failures degrade to an empty document rather than
		// blocking the upload.
		logger.Warn("Extraction failed for %s: %v", doc.ID, err)
		text = ""
	}

	chunks := s.splitter.Split(text)
	logger.Debug("Document %s split into %d chunks", doc.ID, len(chunks))

	result := &driving.IngestResult{
		DocumentID: doc.ID,
		ChunkCount: len(chunks),
	}

	indexErr := s.index(ctx, doc, chunks, result)
	if result.Indexed < result.ChunkCount {
		logger.Warn("Document %s indexed %d of %d chunks", doc.ID, result.Indexed, result.ChunkCount)
	}
	return result, indexErr
}

// index embeds and stores each chunk in order. Best-effort per chunk: an
// embedding or storage failure is logged, recorded and skipped, so one
// bad chunk cannot leave a document with zero searchable content. The
// only error returned is context cancellation, with the partial result
// already filled in; nothing persisted is rolled back.
func (s *IngestService) index(
	ctx context.Context,
	doc *domain.Document,
	chunks []string,
	result *driving.IngestResult,
) error {
	for i, content := range chunks {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("indexing aborted: %w", err)
		}

		vec, err := s.embedder.Embed(ctx, content)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("indexing aborted: %w", ctx.Err())
			}
			logger.Warn("Embedding chunk %d of document %s failed: %v", i, doc.ID, err)
			result.Failures = append(result.Failures, driving.ChunkFailure{
				Position: i,
				Err:      fmt.Errorf("%w: %w", domain.ErrEmbedding, err),
			})
			continue
		}

		chunk := domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			TenantID:   doc.TenantID,
			Content:    content,
			Position:   i,
			Embedding:  vec,
			CreatedAt:  time.Now().UTC(),
		}

		if err := s.store.SaveChunks(ctx, []domain.Chunk{chunk}); err != nil {
			logger.Warn("Storing chunk %d of document %s failed: %v", i, doc.ID, err)
			result.Failures = append(result.Failures, driving.ChunkFailure{
				Position: i,
				Err:      fmt.Errorf("save chunk: %w", err),
			})
			continue
		}

		result.Indexed++
	}

	return nil
}

// Delete removes a document's chunks, then the document row, then the
// raw bytes. Chunk removal failing aborts the rest, preserving the
// chunk-to-document existence invariant. Deleting an unknown document is
// a no-op, so repeated deletes are safe.
func (s *IngestService) Delete(ctx context.Context, tenantID, documentID string) error {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return fmt.Errorf("%w: delete requires a tenant id", domain.ErrTenantScope)
	}

	doc, err := s.store.GetDocument(ctx, documentID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}
	if doc.TenantID != tenantID {
		return fmt.Errorf("%w: document %s belongs to another tenant", domain.ErrTenantScope, documentID)
	}

	if err := s.store.DeleteChunksForDocument(ctx, documentID); err != nil {
		return fmt.Errorf("delete chunks: %w", err)
	}
	if err := s.store.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if err := s.blobs.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete raw bytes: %w", err)
	}

	logger.Info("Deleted document %s for tenant %s", documentID, tenantID)
	return nil
}

// ListDocuments returns the tenant's documents.
func (s *IngestService) ListDocuments(ctx context.Context, tenantID string) ([]domain.Document, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, fmt.Errorf("%w: listing requires a tenant id", domain.ErrTenantScope)
	}
	return s.store.ListDocuments(ctx, tenantID)
}

// storagePath builds the blob location: tenant directory, upload
// timestamp, sanitised original name.
func storagePath(tenantID, filename string, now time.Time) string {
	safe := unsafeFilenameChars.ReplaceAllString(filename, "_")
	if safe == "" {
		safe = "upload"
	}
	return fmt.Sprintf("%s/%d-%s", tenantID, now.UnixMilli(), safe)
}
