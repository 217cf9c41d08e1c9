// Package storage provides the key-value substrate the clinic store persists into.
// Every value is an opaque blob that is replaced as a whole on write.
package storage

import "context"

// Storage reads, replaces and removes named blobs.
// Implementations are safe for use by one writer at a time; callers serialize
// read-modify-write cycles themselves.
type Storage interface {
	// Get returns the blob stored under key. ok is false when key is absent.
	Get(ctx context.Context, key string) (blob []byte, ok bool, err error)
	// Set replaces the blob stored under key.
	Set(ctx context.Context, key string, blob []byte) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
