// Package blob provides a filesystem-backed BlobStore for original
// uploads. Files live under a root directory; the ingest service's
// storage paths become relative paths beneath it.
package blob

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/helioshr/policyqa/internal/core/domain"
	"github.com/helioshr/policyqa/internal/core/ports/driven"
)

// Ensure FSStore implements the interface.
var _ driven.BlobStore = (*FSStore)(nil)

// FSStore stores blobs as plain files under a root directory.
type FSStore struct {
	root string
}

// NewFSStore creates a filesystem blob store rooted at dir.
// If dir is empty, defaults to ~/.policyqa/uploads.
func NewFSStore(dir string) (*FSStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".policyqa", "uploads")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	return &FSStore{root: dir}, nil
}

// Root returns the store's base directory.
func (s *FSStore) Root() string {
	return s.root
}

// Put stores data under path, creating parent directories as needed.
func (s *FSStore) Put(_ context.Context, path string, data []byte) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0700); err != nil {
		return fmt.Errorf("creating blob directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0600); err != nil {
		return fmt.Errorf("writing blob: %w", err)
	}
	return nil
}

// Get returns the bytes stored under path.
func (s *FSStore) Get(_ context.Context, path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading blob: %w", err)
	}
	return data, nil
}

// Delete removes the blob under path. Missing paths are a no-op.
func (s *FSStore) Delete(_ context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting blob: %w", err)
	}
	return nil
}

// resolve maps a storage path onto the root, rejecting anything that
// would escape it.
func (s *FSStore) resolve(path string) (string, error) {
	if path == "" {
		return "", domain.ErrInvalidInput
	}
	cleaned := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path escapes storage root: %s", domain.ErrInvalidInput, path)
	}
	return filepath.Join(s.root, cleaned), nil
}
