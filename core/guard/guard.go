package guard

import (
	"errors"
	"strings"

	"github.com/dmitrymomot/itemdesk/core/session"
)

// ErrSessionUninitialized is a wiring error: a guard ran before the store
// was hydrated. It must never be read as allow or deny.
var ErrSessionUninitialized = errors.New("guard: session is not initialized")

// Redirect targets.
const (
	SignInPath = "/sign-in"
	HomePath   = "/"
)

// Policy is the access rule attached to a route.
type Policy int

const (
	// Public routes are never redirected.
	Public Policy = iota
	// RequireAuth routes redirect signed-out users to the sign-in page.
	RequireAuth
	// PublicOnly routes redirect signed-in users home.
	PublicOnly
)

func (p Policy) String() string {
	switch p {
	case RequireAuth:
		return "require_auth"
	case PublicOnly:
		return "public_only"
	default:
		return "public"
	}
}

// Kind discriminates a Decision.
type Kind int

const (
	Allow Kind = iota
	Redirect
)

// Decision is the outcome of a guard. Target is set for Redirect only.
type Decision struct {
	Kind   Kind
	Target string
}

func allow() Decision { return Decision{Kind: Allow} }
func redirectTo(target string) Decision { return Decision{Kind: Redirect, Target: target} }

// Evaluate applies policy to the in-memory session snapshot.
func Evaluate(policy Policy, sess *session.Session) (Decision, error) {
	if sess == nil {
		return Decision{}, ErrSessionUninitialized
	}

	switch {
	case policy == RequireAuth && !sess.IsAuthenticated:
		return redirectTo(SignInPath), nil
	case policy == PublicOnly && sess.IsAuthenticated:
		return redirectTo(HomePath), nil
	default:
		return allow(), nil
	}
}

// Routes is the navigation surface and the policy of each page.
var Routes = map[string]Policy{
	"/":        RequireAuth,
	"/items":   RequireAuth,
	"/sign-in": PublicOnly,
	"/sign-up": PublicOnly,
	"/session": RequireAuth,
}

// PolicyFor resolves the policy of a path, matching nested paths to their
// section ("/items/42/edit" is guarded like "/items"). Unknown paths are Public.
func PolicyFor(path string) Policy {
	if p, ok := Routes[path]; ok {
		return p
	}
	for prefix, p := range Routes {
		if prefix != "/" && strings.HasPrefix(path, prefix+"/") {
			return p
		}
	}
	return Public
}
