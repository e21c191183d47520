// Package jwt inspects access tokens issued by the auth service.
//
// The client never holds the signing key, so Inspect only decodes the
// registered claims (sub, iss, iat, exp) for display and for short-circuiting
// requests with an already expired token:
//
//	claims, err := jwt.Inspect(facade.AccessToken())
//	if err == nil && claims.Expired(time.Now()) {
//		// ask the user to refresh the session
//	}
package jwt
