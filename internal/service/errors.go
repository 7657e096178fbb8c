package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/costs/internal/models"
)

// toConnectError maps store errors onto Connect codes. Anything unrecognized
// is reported as internal.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrPasswordMismatch):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, models.ErrDuplicateEmail):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, models.ErrInvalidCredentials), errors.Is(err, models.ErrNotAuthenticated):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrProjectNotFound),
		errors.Is(err, models.ErrServiceNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
