// Package memory provides an in-memory storage.Gateway for tests and local
// development. Presigned URLs are simulated; they carry the expiry but no
// real signature.
package memory

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/docbridge/docbridge/pkg/docbridge/storage"
)

// Gateway is an in-memory implementation of storage.Gateway
type Gateway struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

// New creates an in-memory gateway. URLs are rooted at baseURL; pass empty
// for a placeholder origin.
func New(baseURL string) *Gateway {
	if baseURL == "" {
		baseURL = "http://memory.local/store"
	}
	return &Gateway{
		objects: make(map[string][]byte),
		baseURL: baseURL,
	}
}

// Put stores the object in memory and returns its direct URL.
func (g *Gateway) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", &storage.StorageError{Op: "put", Key: key, Err: err}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.objects[key] = data

	return g.DirectURL(key), nil
}

// Exists reports whether the key is stored.
func (g *Gateway) Exists(ctx context.Context, key string) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.objects[key]
	return ok, nil
}

// PresignedURL returns a fake signed URL; the key must exist.
func (g *Gateway) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.objects[key]; !ok {
		return "", &storage.StorageError{Op: "presign", Key: key, Err: storage.ErrObjectNotFound}
	}
	return fmt.Sprintf("%s/%s?X-Amz-Expires=%d", g.baseURL, key, int(expiry/time.Second)), nil
}

// DirectURL constructs the unsigned object URL.
func (g *Gateway) DirectURL(key string) string {
	return fmt.Sprintf("%s/%s", g.baseURL, key)
}

// Delete removes the object; absent keys fail with ErrObjectNotFound.
func (g *Gateway) Delete(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.objects[key]; !ok {
		return &storage.StorageError{Op: "delete", Key: key, Err: storage.ErrObjectNotFound}
	}
	delete(g.objects, key)
	return nil
}

// Enabled always reports true.
func (g *Gateway) Enabled() bool { return true }

// Object returns the stored bytes for key, for assertions in tests.
func (g *Gateway) Object(key string) ([]byte, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	data, ok := g.objects[key]
	return data, ok
}

// Seed stores raw bytes under key without going through Put.
func (g *Gateway) Seed(key string, data []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.objects[key] = data
}
