// Package common defines shared constants and sentinel errors used across
// client and server layers of SalesPoint. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired         = errors.New("token expired")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrRefreshReuseDetected = errors.New("refresh token reuse detected")

	// Client-side failure taxonomy. The API client classifies non-2xx
	// responses into these; callers match with errors.Is.
	ErrCredentials      = errors.New("invalid credentials")
	ErrSessionExpired   = errors.New("session expired")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidation       = errors.New("validation error")
	ErrServer           = errors.New("server error")
	ErrNetwork          = errors.New("network error")
)
