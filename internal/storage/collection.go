package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmynk/costs/internal/metrics"
	"github.com/mmynk/costs/internal/models"
)

// Collection is an ordered JSON array of T stored under a single key.
//
// Every mutation rewrites the whole array. Update serializes those
// read-modify-write cycles within the process; create one Collection per key
// and share it.
type Collection[T any] struct {
	kv  KV
	key string
	mu  sync.Mutex
}

// NewCollection returns a collection backed by kv under key.
func NewCollection[T any](kv KV, key string) *Collection[T] {
	return &Collection[T]{kv: kv, key: key}
}

// Load reads the whole collection. A missing key yields an empty collection.
// Read or decode failures are logged and also yield an empty collection.
func (c *Collection[T]) Load(ctx context.Context) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Update loads the collection, passes it to fn and writes back whatever fn
// returns. Nothing is written when fn returns an error.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := fn(c.load(ctx))
	if err != nil {
		return err
	}
	return c.save(ctx, items)
}

func (c *Collection[T]) load(ctx context.Context) []T {
	data, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		slog.Error("Failed to read collection", "key", c.key, "error", err)
		metrics.StorageFailures.WithLabelValues(c.key, "read").Inc()
		return []T{}
	}
	if !ok || len(data) == 0 {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Error("Failed to decode collection", "key", c.key, "error", err)
		metrics.StorageFailures.WithLabelValues(c.key, "decode").Inc()
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func (c *Collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		slog.Error("Failed to encode collection", "key", c.key, "error", err)
		metrics.StorageFailures.WithLabelValues(c.key, "encode").Inc()
		return fmt.Errorf("%w: encode %s: %v", models.ErrPersistence, c.key, err)
	}
	if err := c.kv.Set(ctx, c.key, data); err != nil {
		slog.Error("Failed to write collection", "key", c.key, "error", err)
		metrics.StorageFailures.WithLabelValues(c.key, "write").Inc()
		return fmt.Errorf("%w: write %s: %v", models.ErrPersistence, c.key, err)
	}
	return nil
}

// Document is a single JSON value of T stored under a key.
type Document[T any] struct {
	kv  KV
	key string
}

// NewDocument returns a document backed by kv under key.
func NewDocument[T any](kv KV, key string) *Document[T] {
	return &Document[T]{kv: kv, key: key}
}

// Get returns the stored value, or nil when the key is absent, unreadable or
// malformed. Failures are logged, not returned.
func (d *Document[T]) Get(ctx context.Context) *T {
	data, ok, err := d.kv.Get(ctx, d.key)
	if err != nil {
		slog.Error("Failed to read document", "key", d.key, "error", err)
		metrics.StorageFailures.WithLabelValues(d.key, "read").Inc()
		return nil
	}
	if !ok || len(data) == 0 {
		return nil
	}

	var v *T
	if err := json.Unmarshal(data, &v); err != nil {
		slog.Error("Failed to decode document", "key", d.key, "error", err)
		metrics.StorageFailures.WithLabelValues(d.key, "decode").Inc()
		return nil
	}
	return v
}

// Put replaces the stored value.
func (d *Document[T]) Put(ctx context.Context, v *T) error {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to encode document", "key", d.key, "error", err)
		metrics.StorageFailures.WithLabelValues(d.key, "encode").Inc()
		return fmt.Errorf("%w: encode %s: %v", models.ErrPersistence, d.key, err)
	}
	if err := d.kv.Set(ctx, d.key, data); err != nil {
		slog.Error("Failed to write document", "key", d.key, "error", err)
		metrics.StorageFailures.WithLabelValues(d.key, "write").Inc()
		return fmt.Errorf("%w: write %s: %v", models.ErrPersistence, d.key, err)
	}
	return nil
}

// Delete removes the stored value.
func (d *Document[T]) Delete(ctx context.Context) error {
	if err := d.kv.Delete(ctx, d.key); err != nil {
		slog.Error("Failed to delete document", "key", d.key, "error", err)
		metrics.StorageFailures.WithLabelValues(d.key, "delete").Inc()
		return fmt.Errorf("%w: delete %s: %v", models.ErrPersistence, d.key, err)
	}
	return nil
}
