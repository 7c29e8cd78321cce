package domain

import "time"

// Document represents an uploaded file owned by a single tenant.
// The raw bytes live in the blob store under StoragePath; Document rows
// only carry metadata.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// TenantID is the isolation boundary this document belongs to.
	// Every chunk derived from the document carries the same tenant id.
	TenantID string

	// Title is the human-readable name, usually the original filename.
	Title string

	// StoragePath is the blob store location of the raw bytes.
	StoragePath string

	// MIMEType is the declared content type (e.g. "application/pdf").
	MIMEType string

	// UploadedBy identifies the user that uploaded the file.
	UploadedBy string

	// UploadedAt is when the document was ingested.
	UploadedAt time.Time
}

// Chunk is a bounded passage of document text stored with its embedding.
// Chunks are immutable once written: re-ingesting a document creates new
// rows, it never edits chunks in place.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// TenantID mirrors the owning document's tenant id. A chunk whose
	// tenant differs from its document's is a correctness violation.
	TenantID string

	// Content is the chunk text.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Embedding is the vector representation for similarity search.
	Embedding []float32

	// CreatedAt is when the chunk was indexed.
	CreatedAt time.Time
}

// ScoredChunk is an ephemeral retrieval hit: a chunk's text with its
// similarity to the query. Results are ordered by descending score and
// are always restricted to one tenant.
type ScoredChunk struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// DocumentID links to the chunk's document.
	DocumentID string

	// Content is the chunk text.
	Content string

	// Score is the cosine similarity to the query, roughly in [-1, 1].
	Score float64
}

// Answer is the outcome of asking a question against a tenant's documents.
type Answer struct {
	// Text is the normalised model reply.
	Text string

	// Matches are the retained retrieval hits the answer was built from,
	// in descending score order.
	Matches []ScoredChunk
}
