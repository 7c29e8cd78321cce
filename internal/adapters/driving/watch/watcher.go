// Package watch ingests files dropped into a directory. Each tenant
// gets a drop directory; files appearing there are uploaded through the
// ingest service and moved out of the way of repeat events.
package watch

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/helioshr/policyqa/internal/core/ports/driving"
	"github.com/helioshr/policyqa/internal/logger"
)

// DefaultSettle is how long a file must stay quiet after its last write
// before it is picked up. Editors and downloads write in bursts.
const DefaultSettle = 500 * time.Millisecond

// Config tunes the watcher.
type Config struct {
	// TenantID owns everything dropped into the directory. Required.
	TenantID string

	// Dir is the drop directory. Required.
	Dir string

	// Settle overrides DefaultSettle.
	Settle time.Duration

	// UploadedBy is recorded on each ingested document.
	UploadedBy string
}

// Watcher ingests files dropped into a directory.
type Watcher struct {
	ingest  driving.IngestService
	cfg     Config
	fs      *fsnotify.Watcher
	pending map[string]time.Time
}

// New creates a watcher over cfg.Dir.
func New(ingest driving.IngestService, cfg Config) (*Watcher, error) {
	if cfg.TenantID == "" {
		return nil, fmt.Errorf("watch: tenant id is required")
	}
	if cfg.Dir == "" {
		return nil, fmt.Errorf("watch: directory is required")
	}
	if cfg.Settle <= 0 {
		cfg.Settle = DefaultSettle
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(cfg.Dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", cfg.Dir, err)
	}

	return &Watcher{
		ingest:  ingest,
		cfg:     cfg,
		fs:      fs,
		pending: make(map[string]time.Time),
	}, nil
}

// Run processes events until the context is cancelled. Files already in
// the directory at startup are ingested first.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	if err := w.sweepExisting(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(w.cfg.Settle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !ingestable(event.Name) {
				continue
			}
			// Restart the settle clock on every write.
			w.pending[event.Name] = time.Now()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-ticker.C:
			w.flushSettled(ctx)
		}
	}
}

// sweepExisting ingests files already present in the drop directory.
func (w *Watcher) sweepExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.cfg.Dir)
	if err != nil {
		return fmt.Errorf("read drop directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.cfg.Dir, entry.Name())
		if !ingestable(path) {
			continue
		}
		w.ingestFile(ctx, path)
	}
	return nil
}

// flushSettled ingests pending files whose last write is old enough.
func (w *Watcher) flushSettled(ctx context.Context) {
	cutoff := time.Now().Add(-w.cfg.Settle)
	for path, last := range w.pending {
		if last.After(cutoff) {
			continue
		}
		delete(w.pending, path)
		w.ingestFile(ctx, path)
	}
}

// ingestFile uploads one file and renames it so it is not picked up
// again. Failures leave the file in place for a retry on restart.
func (w *Watcher) ingestFile(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Skipping %s: %v", path, err)
		return
	}

	result, err := w.ingest.Ingest(ctx, driving.IngestRequest{
		TenantID:   w.cfg.TenantID,
		Filename:   filepath.Base(path),
		MIMEType:   mime.TypeByExtension(filepath.Ext(path)),
		Data:       data,
		UploadedBy: w.cfg.UploadedBy,
	})
	if err != nil {
		logger.Warn("Ingest of %s failed: %v", path, err)
		return
	}

	logger.Info("Ingested %s as %s (%d/%d chunks indexed)",
		filepath.Base(path), result.DocumentID, result.Indexed, result.ChunkCount)

	if err := os.Rename(path, path+".ingested"); err != nil {
		logger.Warn("Could not rename %s after ingest: %v", path, err)
	}
}

// ingestable filters out hidden files and already-processed ones.
func ingestable(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.HasSuffix(name, ".ingested")
}
