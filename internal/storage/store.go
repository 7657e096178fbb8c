// Package storage provides abstractions for persistent data storage.
//
// State lives in a flat key-value space, one JSON document per key, the same
// layout the browser build of the app kept in local storage.
package storage

import "context"

// Fixed storage keys.
const (
	KeyUsers    = "costs_users"
	KeySession  = "costs_session"
	KeyProjects = "costs_projects"
)

// KV defines the interface for key-value storage operations.
type KV interface {
	// Get returns the value stored under key. The boolean is false when the
	// key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
