// Package authservice is the client of the remote auth service. Login and
// Register return the user and a token pair; persisting them is up to the
// caller (see auth.Facade.LoginIfCurrent). Failures are *rpc.Error values
// whose Message is shown to the user as is.
package authservice
