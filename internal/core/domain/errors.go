package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured indicates a required external service is
	// unreachable or misconfigured (e.g. no embedding credentials).
	// Fatal to the operation, never retried.
	ErrNotConfigured = errors.New("service not configured")

	// ErrEmbedding indicates an embed call failed. Indexing skips the
	// offending chunk; the question path propagates immediately since a
	// failed query embedding makes retrieval meaningless.
	ErrEmbedding = errors.New("embedding failed")

	// ErrGeneration indicates the generative call failed. Surfaced to
	// the caller as an "unable to answer" condition, never replaced
	// with a fabricated answer.
	ErrGeneration = errors.New("generation failed")

	// ErrTenantScope indicates a retrieval or delete path was invoked
	// without a tenant id, or against another tenant's data. Such calls
	// fail closed instead of defaulting to an unscoped query.
	ErrTenantScope = errors.New("missing or mismatched tenant id")
)
