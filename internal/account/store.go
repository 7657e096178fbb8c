// Package account implements registration, login and profile management
// over the "costs_users" collection, and keeps the session record in step.
package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/costs/internal/auth"
	"github.com/mmynk/costs/internal/models"
	"github.com/mmynk/costs/internal/session"
	"github.com/mmynk/costs/internal/storage"
)

// Store owns the user collection. It is the only writer of "costs_users".
type Store struct {
	users    *storage.Collection[models.User]
	sessions *session.Store
	hasher   auth.PasswordHasher
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates an account store backed by kv, sharing sessions with the
// rest of the app.
func NewStore(kv storage.KV, sessions *session.Store, hasher auth.PasswordHasher, opts ...Option) *Store {
	s := &Store{
		users:    storage.NewCollection[models.User](kv, storage.KeyUsers),
		sessions: sessions,
		hasher:   hasher,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new account and opens a session for it.
func (s *Store) Register(ctx context.Context, in models.RegisterInput) (*models.AuthUser, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var hashed string
	if in.Password == in.ConfirmPassword {
		var err error
		if hashed, err = s.hasher.Hash(in.Password); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	user := models.User{
		ID:        models.NewID(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.users.Update(ctx, func(users []models.User) ([]models.User, error) {
		if indexByEmail(users, in.Email) >= 0 {
			return nil, models.ErrDuplicateEmail
		}
		if in.Password != in.ConfirmPassword {
			return nil, models.ErrPasswordMismatch
		}
		return append(users, user), nil
	})
	if err != nil {
		s.logger.Warn("Registration failed", "email", in.Email, "error", err)
		return nil, err
	}

	authUser := user.Redact()
	if err := s.sessions.Set(ctx, authUser); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "email", user.Email)
	return authUser, nil
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password fail with the same ErrInvalidCredentials.
func (s *Store) Login(ctx context.Context, email, password string) (*models.AuthUser, error) {
	email = strings.TrimSpace(email)
	users := s.users.Load(ctx)

	i := indexByEmail(users, email)
	if i < 0 {
		s.logger.Warn("Login failed", "email", email, "reason", "unknown email")
		return nil, models.ErrInvalidCredentials
	}
	user := users[i]

	ok, needsRehash := s.hasher.Verify(password, user.Password)
	if !ok {
		s.logger.Warn("Login failed", "email", email, "reason", "wrong password")
		return nil, models.ErrInvalidCredentials
	}
	if needsRehash {
		s.rehash(ctx, user.ID, password)
	}

	authUser := user.Redact()
	if err := s.sessions.Set(ctx, authUser); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	return authUser, nil
}

// rehash upgrades a stored password to the current scheme. Failures are
// logged; the login itself already succeeded.
func (s *Store) rehash(ctx context.Context, userID, password string) {
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("Password rehash failed", "user_id", userID, "error", err)
		return
	}
	err = s.users.Update(ctx, func(users []models.User) ([]models.User, error) {
		i := indexByID(users, userID)
		if i < 0 {
			return nil, models.ErrUserNotFound
		}
		users[i].Password = hashed
		return users, nil
	})
	if err != nil {
		s.logger.Error("Password rehash failed", "user_id", userID, "error", err)
		return
	}
	s.logger.Info("Password upgraded to bcrypt", "user_id", userID)
}

// Logout ends the current session.
func (s *Store) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

// CurrentUser returns the session user, or nil when nobody is logged in.
func (s *Store) CurrentUser(ctx context.Context) *models.AuthUser {
	return s.sessions.Get(ctx)
}

// UpdateProfile applies patch to the logged-in user and refreshes the session.
func (s *Store) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.AuthUser, error) {
	current := s.sessions.Get(ctx)
	if current == nil {
		return nil, models.ErrNotAuthenticated
	}
	if patch.Email != nil {
		trimmed := strings.TrimSpace(*patch.Email)
		patch.Email = &trimmed
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated models.User
	err := s.users.Update(ctx, func(users []models.User) ([]models.User, error) {
		i := indexByID(users, current.ID)
		if i < 0 {
			return nil, models.ErrUserNotFound
		}
		if patch.Email != nil && *patch.Email != users[i].Email {
			if indexByEmail(users, *patch.Email) >= 0 {
				return nil, models.ErrDuplicateEmail
			}
			users[i].Email = *patch.Email
		}
		if patch.Name != nil {
			users[i].Name = strings.TrimSpace(*patch.Name)
		}
		users[i].UpdatedAt = s.now().UTC()
		updated = users[i]
		return users, nil
	})
	if err != nil {
		s.logger.Warn("Profile update failed", "user_id", current.ID, "error", err)
		return nil, err
	}

	authUser := updated.Redact()
	if err := s.sessions.Set(ctx, authUser); err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}

	s.logger.Info("Profile updated", "user_id", updated.ID)
	return authUser, nil
}

func indexByEmail(users []models.User, email string) int {
	for i := range users {
		if users[i].Email == email {
			return i
		}
	}
	return -1
}

func indexByID(users []models.User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
