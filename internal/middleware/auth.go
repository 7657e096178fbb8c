package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/costs/internal/auth"
	"github.com/mmynk/costs/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"
)

// ErrSessionEnded is returned for a well-formed token whose session has been
// cleared or replaced by another login.
var ErrSessionEnded = errors.New("session ended")

// SessionSource reports the currently signed-in user, if any.
type SessionSource interface {
	CurrentUser(ctx context.Context) *models.AuthUser
}

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetEmail extracts the user email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// WithUser returns a copy of ctx carrying the user's id and email.
func WithUser(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, EmailKey, email)
}

// RequireAuth returns an interceptor that accepts a request only when it
// carries a valid bearer token and the token's user is the one holding the
// current session. Logging out therefore revokes every outstanding token.
func RequireAuth(jwtManager *auth.JWTManager, sessions SessionSource) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			claims, err := authenticate(ctx, req.Header().Get("Authorization"), jwtManager, sessions)
			if err != nil {
				slog.Warn("Request rejected", "procedure", req.Spec().Procedure, "error", err)
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}
			return next(WithUser(ctx, claims.UserID(), claims.Email), req)
		}
	}
}

// OptionalAuth returns an interceptor that attaches the user to the context
// when the request is authenticated and lets it through unchanged otherwise.
// Used for services that mix public procedures (register, login) with
// private ones.
func OptionalAuth(jwtManager *auth.JWTManager, sessions SessionSource) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			header := req.Header().Get("Authorization")
			if header != "" {
				if claims, err := authenticate(ctx, header, jwtManager, sessions); err == nil {
					ctx = WithUser(ctx, claims.UserID(), claims.Email)
				}
			}
			return next(ctx, req)
		}
	}
}

func authenticate(ctx context.Context, header string, jwtManager *auth.JWTManager, sessions SessionSource) (*auth.Claims, error) {
	if header == "" {
		return nil, auth.ErrMissingToken
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || token == "" {
		return nil, auth.ErrInvalidToken
	}

	claims, err := jwtManager.Validate(token)
	if err != nil {
		return nil, err
	}

	current := sessions.CurrentUser(ctx)
	if current == nil || current.ID != claims.UserID() {
		return nil, ErrSessionEnded
	}
	return claims, nil
}
