package driven

import "context"

// BlobStore persists raw uploaded file bytes.
// Paths are opaque to callers; the ingest service decides the layout.
type BlobStore interface {
	// Put stores bytes under the given path, creating parents as needed.
	Put(ctx context.Context, path string, data []byte) error

	// Get returns the bytes stored under path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Delete removes the bytes under path. Deleting a missing path is a
	// no-op.
	Delete(ctx context.Context, path string) error
}
