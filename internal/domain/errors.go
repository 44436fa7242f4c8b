package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNetwork indicates the catalog could not be reached or timed out
	ErrNetwork = errors.New("catalog is unreachable")

	// ErrCatalog indicates the catalog rejected the request (bad key, bad query)
	ErrCatalog = errors.New("catalog request rejected")

	// ErrStorage indicates a persistence constraint violation or engine failure
	ErrStorage = errors.New("storage error")

	// ErrNotFound indicates the entry identity is unknown to the store
	ErrNotFound = errors.New("movie not found")

	// ErrSessionClosed indicates an intent was dispatched after the session stopped
	ErrSessionClosed = errors.New("session is closed")

	// ErrNotConfigured indicates the catalog API key has not been set
	ErrNotConfigured = errors.New("catalog API key is not configured")
)
