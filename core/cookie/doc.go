// Package cookie manages HTTP cookies with sealed values and one-time flash
// messages.
//
// Sealed cookies use pkg/secretbox (XChaCha20-Poly1305). Several secrets can
// be configured for rotation: the first one seals new cookies, all of them
// are tried when opening.
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRETS")}, cookie.WithSecure(true))
//
//	// before a redirect
//	_ = m.SetFlash(w, "toast", Toast{Kind: "error", Message: "Login failed"})
//
//	// on the next page
//	var t Toast
//	if err := m.GetFlash(w, r, "toast", &t); err == nil {
//		render(t)
//	}
package cookie
