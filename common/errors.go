// Package common defines sentinel errors shared by the store, service and
// HTTP layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Duplicate username or duplicate response.
	ErrConflict = errors.New("conflict")

	// Malformed draft, wrong selection size, expired vote.
	ErrValidation = errors.New("validation error")

	// Credential mismatch or bad session token.
	ErrUnauthorized = errors.New("unauthorized")

	// Caller is known but may not see the resource.
	ErrForbidden = errors.New("forbidden")

	// Read or write failure in the persistence backend.
	ErrStorage = errors.New("storage error")
)
