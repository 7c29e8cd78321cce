// Package memory provides an in-memory DocumentStore for tests and
// small corpora. Retrieval semantics match the SQLite store: tenant
// filtering inside the store, cosine scores, stable insertion-order
// ties.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/helioshr/policyqa/internal/core/domain"
	"github.com/helioshr/policyqa/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store keeps documents and chunks in process memory.
type Store struct {
	mu     sync.RWMutex
	docs   map[string]domain.Document
	chunks []domain.Chunk
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		docs: make(map[string]domain.Document),
	}
}

// SaveDocument stores a document row.
func (s *Store) SaveDocument(_ context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = *doc
	return nil
}

// SaveChunks appends chunk rows, preserving insertion order.
func (s *Store) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range chunks {
		// Store a copy of the embedding; callers may reuse the slice.
		embedding := make([]float32, len(c.Embedding))
		copy(embedding, c.Embedding)
		c.Embedding = embedding
		s.chunks = append(s.chunks, c)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetChunks retrieves all chunks for a document, ordered by position.
func (s *Store) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var chunks []domain.Chunk
	for _, c := range s.chunks {
		if c.DocumentID == documentID {
			chunks = append(chunks, c)
		}
	}
	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].Position < chunks[j].Position
	})
	return chunks, nil
}

// ListDocuments returns all documents belonging to a tenant.
func (s *Store) ListDocuments(_ context.Context, tenantID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []domain.Document
	for _, d := range s.docs {
		if d.TenantID == tenantID {
			docs = append(docs, d)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].UploadedAt.Equal(docs[j].UploadedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].UploadedAt.Before(docs[j].UploadedAt)
	})
	return docs, nil
}

// SearchChunks scores every chunk of the tenant against the query vector
// and returns the k best, descending. Exact ties keep insertion order.
func (s *Store) SearchChunks(_ context.Context, tenantID string, query []float32, k int) ([]domain.ScoredChunk, error) {
	if tenantID == "" {
		return nil, domain.ErrTenantScope
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var hits []domain.ScoredChunk
	for _, c := range s.chunks {
		if c.TenantID != tenantID {
			continue
		}
		hits = append(hits, domain.ScoredChunk{
			ChunkID:    c.ID,
			DocumentID: c.DocumentID,
			Content:    c.Content,
			Score:      cosine(query, c.Embedding),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// DeleteChunksForDocument removes all chunks of a document.
func (s *Store) DeleteChunksForDocument(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.chunks[:0]
	for _, c := range s.chunks {
		if c.DocumentID != documentID {
			kept = append(kept, c)
		}
	}
	s.chunks = kept
	return nil
}

// DeleteDocument removes a document row. Unknown ids are a no-op.
func (s *Store) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

// cosine computes cosine similarity between two vectors. Mismatched or
// zero-magnitude vectors score zero rather than erroring.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
