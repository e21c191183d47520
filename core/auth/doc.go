// Package auth exposes the session store to request handlers.
//
// The facade is provisioned per request by middleware.AuthProvider and read
// back with FromContext. Requesting it outside that scope is a wiring bug
// and returns ErrNoProvider instead of a default, signed-out session.
package auth
