// Package common defines shared sentinel errors and small helpers used across
// the client and server layers of promptstash. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Remote gateway errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("service unavailable")
	ErrSyncDisabled = errors.New("sync is disabled")

	// Auth errors.
	ErrInvalidToken = errors.New("invalid token")

	// Import errors. Malformed import payloads are the single case where a
	// structurally invalid input is raised to the caller.
	ErrInvalidImport = errors.New("invalid import payload")

	ErrInternal = errors.New("internal error")
)
