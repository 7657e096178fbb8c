package models

import "errors"

var (
	ErrNotAuthenticated   = errors.New("user not authenticated")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrServiceNotFound    = errors.New("service not found")
	ErrPersistence        = errors.New("storage failure")
	ErrInvalidInput       = errors.New("invalid input")
)
