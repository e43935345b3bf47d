package service

import "errors"

// Sentinel errors for expected failure kinds. Handlers translate these
// to HTTP statuses and machine-readable codes; anything else is logged
// and masked as a generic 500.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrValidation        = errors.New("validation failed")
	ErrSubscriptionLimit = errors.New("subscription plan limit reached")
	ErrGSTNotRegistered  = errors.New("tenant is not registered for GST")
)
