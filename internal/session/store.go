// Package session keeps the single active login record.
package session

import (
	"context"
	"fmt"

	"github.com/mmynk/costs/internal/models"
	"github.com/mmynk/costs/internal/storage"
)

// Store owns the "costs_session" record. At most one session exists at a time.
type Store struct {
	doc *storage.Document[models.AuthUser]
}

// NewStore creates a session store backed by kv.
func NewStore(kv storage.KV) *Store {
	return &Store{doc: storage.NewDocument[models.AuthUser](kv, storage.KeySession)}
}

// Set replaces the current session with user.
func (s *Store) Set(ctx context.Context, user *models.AuthUser) error {
	if user == nil || user.ID == "" {
		return fmt.Errorf("%w: session requires a user id", models.ErrInvalidInput)
	}
	redacted := *user
	return s.doc.Put(ctx, &redacted)
}

// Get returns the current session, or nil when there is none. A malformed
// record counts as no session.
func (s *Store) Get(ctx context.Context) *models.AuthUser {
	user := s.doc.Get(ctx)
	if user == nil || user.ID == "" {
		return nil
	}
	return user
}

// Clear removes the session record. Accounts are untouched.
func (s *Store) Clear(ctx context.Context) error {
	return s.doc.Delete(ctx)
}

// IsAuthenticated reports whether a session exists.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	return s.Get(ctx) != nil
}
