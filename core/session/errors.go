package session

import "errors"

var (
	// ErrNotFound is returned by Storage.Load when no record exists.
	ErrNotFound = errors.New("session record not found")
	// ErrCorruptRecord is returned when a persisted record cannot be decoded.
	ErrCorruptRecord = errors.New("corrupt session record")
	// ErrHydrate is returned when the durable record cannot be read at startup.
	ErrHydrate = errors.New("failed to hydrate session store")
	// ErrPersist wraps write-through failures.
	ErrPersist = errors.New("failed to persist session")
	// ErrNoStorage is returned when a store is built without a backend.
	ErrNoStorage = errors.New("session storage is required")
)
