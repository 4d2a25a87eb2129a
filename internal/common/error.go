package common

import "errors"

// Callers should use errors.Is to match these values; services wrap them
// with additional context.
var (
	// Repository-level errors.
	ErrNotFound         = errors.New("not found")
	ErrDuplicateAccount = errors.New("account already exists")

	// Input errors. Wrapped with a human-readable detail.
	ErrValidation = errors.New("validation error")

	// Authentication errors.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRateLimited        = errors.New("too many attempts")
	ErrUnauthorized       = errors.New("unauthorized")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidKey is returned when a ciphertext cannot be opened with the
	// supplied master key. Wrong key and corrupted data are not told apart.
	ErrInvalidKey = errors.New("invalid master key")

	ErrExportDisabled = errors.New("export is not configured")

	ErrInternal = errors.New("internal error")
)
