package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"dentalClinicManagement/internal/storage"
)

// Storage keys. Each collection is one JSON array stored under its key.
const (
	KeyUsers         = "dental_users"
	KeyPatients      = "dental_patients"
	KeyIncidents     = "dental_incidents"
	KeySession       = "dental_current_user"
	KeySchemaVersion = "dental_schema_version"
)

// ErrCorruptCollection is returned when a stored collection cannot be decoded.
// Reads still return an empty, usable slice alongside it; writes are refused so
// the stored blob is not replaced.
var ErrCorruptCollection = errors.New("corrupt collection")

// collection is a JSON array of T persisted as a single blob.
// All access goes through mu so read-modify-write cycles apply in call order.
type collection[T any] struct {
	mu    sync.Mutex
	key   string
	store storage.Storage
	log   *zap.Logger
}

func newCollection[T any](key string, store storage.Storage, log *zap.Logger) *collection[T] {
	return &collection[T]{key: key, store: store, log: log}
}

// list returns a snapshot of the collection. The slice is never nil.
func (c *collection[T]) list(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// mutate loads the collection, lets fn change it and saves the result when fn
// reports a change.
func (c *collection[T]) mutate(ctx context.Context, fn func(items []T) ([]T, bool, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	items, changed, err := fn(items)
	if err != nil || !changed {
		return err
	}
	return c.save(ctx, items)
}

func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	blob, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return []T{}, fmt.Errorf("load %s: %w", c.key, err)
	}
	if !ok || len(bytes.TrimSpace(blob)) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(blob, &items); err != nil {
		c.log.Error("stored collection is unreadable, treating as empty",
			zap.String("key", c.key), zap.Int("bytes", len(blob)), zap.Error(err))
		return []T{}, fmt.Errorf("%w %s: %v", ErrCorruptCollection, c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, blob); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	c.log.Debug("collection saved", zap.String("key", c.key), zap.Int("records", len(items)))
	return nil
}
