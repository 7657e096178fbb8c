package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/costs/internal/auth"
	"github.com/mmynk/costs/internal/middleware"
	"github.com/mmynk/costs/internal/models"
	"github.com/mmynk/costs/pkg/api"
	"github.com/mmynk/costs/pkg/api/apiconnect"
)

// Accounts is the account store as seen by the RPC layer.
type Accounts interface {
	Register(ctx context.Context, in models.RegisterInput) (*models.AuthUser, error)
	Login(ctx context.Context, email, password string) (*models.AuthUser, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.AuthUser, error)
	CurrentUser(ctx context.Context) *models.AuthUser
}

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	accounts   Accounts
	jwtManager *auth.JWTManager
	logger     *slog.Logger
}

var _ apiconnect.AuthServiceHandler = (*AuthService)(nil)

// NewAuthService creates a new authentication service.
func NewAuthService(accounts Accounts, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		accounts:   accounts,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Register creates a new user account and signs it in.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	user, err := s.accounts.Register(ctx, models.RegisterInput{
		Name:            req.Msg.Name,
		Email:           req.Msg.Email,
		Password:        req.Msg.Password,
		ConfirmPassword: req.Msg.ConfirmPassword,
	})
	if err != nil {
		s.logger.Warn("Registration failed", "email", req.Msg.Email, "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return connect.NewResponse(&api.RegisterResponse{User: toAPIUser(user), Token: token}), nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	user, err := s.accounts.Login(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "email", user.Email)
	return connect.NewResponse(&api.LoginResponse{User: toAPIUser(user), Token: token}), nil
}

// Logout ends the current session. Tokens issued for it stop working.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	if err := s.accounts.Logout(ctx); err != nil {
		s.logger.Error("Logout failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("User logged out", "user_id", userID)
	return connect.NewResponse(&api.LogoutResponse{}), nil
}

// UpdateProfile changes the signed-in user's name and/or email.
func (s *AuthService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	user, err := s.accounts.UpdateProfile(ctx, models.ProfilePatch{
		Name:  req.Msg.Name,
		Email: req.Msg.Email,
	})
	if err != nil {
		s.logger.Warn("UpdateProfile failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.UpdateProfileResponse{User: toAPIUser(user)}), nil
}

// GetCurrentUser returns the signed-in user as recorded in the session.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	user := s.accounts.CurrentUser(ctx)
	if user == nil || user.ID != userID {
		return nil, connect.NewError(connect.CodeUnauthenticated, models.ErrNotAuthenticated)
	}

	return connect.NewResponse(&api.GetCurrentUserResponse{User: toAPIUser(user)}), nil
}
