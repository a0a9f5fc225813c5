package docbridge_test

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/docbridge/docbridge/pkg/docbridge/storage"
)

// fakeGateway is an in-memory storage.Gateway for exercising the builder,
// callback handler, and save pipeline without a real store.
type fakeGateway struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
}

func newFakeGateway(keys ...string) *fakeGateway {
	g := &fakeGateway{objects: map[string][]byte{}}
	for _, k := range keys {
		g.objects[k] = []byte("seed")
	}
	return g
}

func (g *fakeGateway) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.objects[key] = data
	g.puts++
	return "http://store.local/bucket/" + key, nil
}

func (g *fakeGateway) Exists(ctx context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.objects[key]
	return ok, nil
}

func (g *fakeGateway) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.objects[key]; !ok {
		return "", &storage.StorageError{Op: "presign", Key: key, Err: storage.ErrObjectNotFound}
	}
	return fmt.Sprintf("http://store.local/bucket/%s?X-Amz-Expires=%d", key, int(expiry/time.Second)), nil
}

func (g *fakeGateway) DirectURL(key string) string {
	return "http://store.local/bucket/" + key
}

func (g *fakeGateway) Delete(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.objects[key]; !ok {
		return &storage.StorageError{Op: "delete", Key: key, Err: storage.ErrObjectNotFound}
	}
	delete(g.objects, key)
	return nil
}

func (g *fakeGateway) Enabled() bool { return true }

func (g *fakeGateway) putCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.puts
}

func (g *fakeGateway) object(key string) ([]byte, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	b, ok := g.objects[key]
	return b, ok
}
