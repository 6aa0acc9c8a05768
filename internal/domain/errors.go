package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound        = errors.New("not found")
	ErrBadRequest      = errors.New("bad request")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrTooManyAttempts = errors.New("too many attempts")
	ErrRateLimited     = errors.New("rate limited")
	ErrDuplicate       = errors.New("duplicate")
	ErrDependency      = errors.New("dependency failure")
)
