package docbridge

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/docbridge/docbridge/pkg/docbridge/fetch"
	"github.com/docbridge/docbridge/pkg/docbridge/storage"
)

// Saver commits a saved document to durable storage: it downloads the
// document from the editor and writes it to the object store, or to a local
// directory when no store is configured. Exactly one write is attempted per
// save event; a failed write after a successful fetch leaves nothing behind
// and surfaces the error to the caller.
type Saver struct {
	fetcher  *fetch.Fetcher
	store    storage.Gateway
	localDir string
	logger   *slog.Logger
}

// NewSaver creates a Saver. localDir is the fallback directory used when the
// store gateway is disabled; it is created on first use.
func NewSaver(fetcher *fetch.Fetcher, store storage.Gateway, localDir string, logger *slog.Logger) *Saver {
	return &Saver{
		fetcher:  fetcher,
		store:    store,
		localDir: localDir,
		logger:   logger.With(slog.String("component", "saver")),
	}
}

// Save downloads the document at downloadURL and persists it under a key
// derived from fileID's base name. It returns the stored location: an object
// URL for the store, a filesystem path for the local fallback.
func (s *Saver) Save(ctx context.Context, downloadURL, fileID string) (string, error) {
	if downloadURL == "" {
		return "", ErrMissingDownloadURL
	}

	key := objectKey(fileID)

	data, err := s.fetcher.Fetch(ctx, downloadURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch document: %w", err)
	}

	if s.store.Enabled() {
		location, err := s.store.Put(ctx, key, bytes.NewReader(data), contentTypeFor(key))
		if err != nil {
			return "", fmt.Errorf("failed to store document %s: %w", key, err)
		}
		s.logger.Info("document stored",
			slog.String("key", key),
			slog.Int("bytes", len(data)),
		)
		return location, nil
	}

	return s.saveLocal(key, data)
}

// saveLocal writes the document to the configured fallback directory.
func (s *Saver) saveLocal(key string, data []byte) (string, error) {
	if err := os.MkdirAll(s.localDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	target := filepath.Join(s.localDir, key)
	if err := os.WriteFile(target, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Info("document saved locally",
		slog.String("path", target),
		slog.Int("bytes", len(data)),
	)
	return target, nil
}

// objectKey derives the storage key from the file id's base name, falling
// back to a timestamped name when the id carries none.
func objectKey(fileID string) string {
	base := path.Base(fileID)
	if base == "" || base == "." || base == "/" {
		return fmt.Sprintf("document-%d", time.Now().Unix())
	}
	return base
}

// contentTypeFor maps the key's extension to a MIME type.
func contentTypeFor(key string) string {
	if t := mime.TypeByExtension(path.Ext(key)); t != "" {
		return t
	}
	return "application/octet-stream"
}
