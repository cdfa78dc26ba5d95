package storage

import "errors"

// ErrQuotaExceeded wraps write failures caused by a full disk or an
// undersized storage quota. Callers degrade to in-memory state instead of
// aborting the session.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Provider is a string-keyed record store. Implementations
// must tolerate and report quota-style failures without panicking.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Records
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
	Delete(key string) error

	// Utils
	Path() string
}
