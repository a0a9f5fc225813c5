// Package storage defines the narrow object-store contract the bridge depends
// on, plus a disabled variant used when no store is configured.
//
// "Store unavailable" is modeled as a Gateway implementation rather than a nil
// handle, so call sites never branch on nil: they either ask Enabled() up
// front or handle ErrStoreUnavailable like any other operation error.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Error types
var (
	// ErrStoreUnavailable indicates the object store is not configured or reachable
	ErrStoreUnavailable = errors.New("object store not available")

	// ErrObjectNotFound indicates an object was not found in the store
	ErrObjectNotFound = errors.New("object not found")
)

// Gateway wraps a key/blob store. Implementations must be safe for concurrent
// use; the bridge constructs one gateway at startup and shares it.
type Gateway interface {
	// Put writes the object under key and returns its externally reachable URL.
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// PresignedURL returns a time-limited signed download URL for key.
	// It fails with ErrObjectNotFound when the key is absent.
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// DirectURL returns the unsigned URL for key. The URL is constructed, not
	// verified to exist, and only works against a publicly readable bucket.
	DirectURL(key string) string

	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error

	// Enabled reports whether the gateway is backed by a real store.
	Enabled() bool
}

// StorageError represents an error from a gateway operation
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Disabled returns a Gateway for the "no store configured" state. Every
// operation fails with ErrStoreUnavailable; upstream falls back to local disk.
func Disabled() Gateway {
	return disabledGateway{}
}

type disabledGateway struct{}

func (disabledGateway) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	return "", ErrStoreUnavailable
}

func (disabledGateway) Exists(ctx context.Context, key string) (bool, error) {
	return false, ErrStoreUnavailable
}

func (disabledGateway) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "", ErrStoreUnavailable
}

func (disabledGateway) DirectURL(key string) string { return "" }

func (disabledGateway) Delete(ctx context.Context, key string) error {
	return ErrStoreUnavailable
}

func (disabledGateway) Enabled() bool { return false }
