// Package common defines shared sentinel errors used across the service
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal       = errors.New("internal error")
	ErrorInvalidRequest = errors.New("invalid request")

	// Auth errors. Login failures are deliberately collapsed into a single
	// value so callers cannot tell an unknown email from a wrong password.
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token expired")

	// Entitlement errors.
	ErrorPaymentRequired = errors.New("payment required")
)
