package web

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrymomot/itemdesk/app/web/ui"
	"github.com/dmitrymomot/itemdesk/core/guard"
	"github.com/dmitrymomot/itemdesk/core/handler"
	"github.com/dmitrymomot/itemdesk/core/logger"
	"github.com/dmitrymomot/itemdesk/core/response"
	"github.com/dmitrymomot/itemdesk/integration/authservice"
	"github.com/dmitrymomot/itemdesk/pkg/jwt"
)

// logoutNotifyTimeout bounds the best-effort logout call to the auth
// service. The local session is cleared either way.
const logoutNotifyTimeout = 3 * time.Second

func (a *App) home(ctx *Context) handler.Response {
	f, err := facade(ctx)
	if err != nil {
		return response.Error(err)
	}

	data := ui.HomeData{User: f.User()}
	if claims, err := jwt.Inspect(f.AccessToken()); err == nil && claims.HasExpiry() {
		data.TokenExpiry = claims.ExpiresAt
		data.Expired = claims.Expired(time.Now())
	}
	return response.Templ(ui.HomePage(a.page(ctx, "Home"), data))
}

func (a *App) signInPage(ctx *Context) handler.Response {
	return response.Templ(ui.SignInPage(a.page(ctx, "Sign in"), ui.FormState{}))
}

func (a *App) signIn(ctx *Context) handler.Response {
	var form signInForm
	if err := ctx.Bind(&form); err != nil {
		fields, err := formErrors(err)
		if err != nil {
			return response.Error(err)
		}
		state := ui.FormState{Values: form.values(), Errors: fields}
		return response.TemplWithStatus(ui.SignInPage(a.page(ctx, "Sign in"), state), http.StatusUnprocessableEntity)
	}

	return a.authenticate(ctx, "sign_in", "Sign in", func(ctx context.Context) (authservice.Result, error) {
		return a.auth.Login(ctx, form.Email, form.Password)
	}, func(p ui.Page) handler.Response {
		return response.Templ(ui.SignInPage(p, ui.FormState{Values: form.values()}))
	})
}

func (a *App) signUpPage(ctx *Context) handler.Response {
	return response.Templ(ui.SignUpPage(a.page(ctx, "Sign up"), ui.FormState{}))
}

func (a *App) signUp(ctx *Context) handler.Response {
	var form signUpForm
	if err := ctx.Bind(&form); err != nil {
		fields, err := formErrors(err)
		if err != nil {
			return response.Error(err)
		}
		state := ui.FormState{Values: form.values(), Errors: fields}
		return response.TemplWithStatus(ui.SignUpPage(a.page(ctx, "Sign up"), state), http.StatusUnprocessableEntity)
	}

	return a.authenticate(ctx, "sign_up", "Sign up", func(ctx context.Context) (authservice.Result, error) {
		return a.auth.Register(ctx, form.Email, form.Password, form.Name)
	}, func(p ui.Page) handler.Response {
		return response.Templ(ui.SignUpPage(p, ui.FormState{Values: form.values()}))
	})
}

// authenticate runs a login-like call and commits its result. The store
// generation is captured before the call: a logout that lands while the call
// is in flight wins, and the late result is discarded. A failed call
// re-renders the form with a toast and leaves the session untouched.
func (a *App) authenticate(
	ctx *Context,
	action, title string,
	call func(context.Context) (authservice.Result, error),
	rerender func(ui.Page) handler.Response,
) handler.Response {
	f, err := facade(ctx)
	if err != nil {
		return response.Error(err)
	}

	gen := f.Generation()
	res, err := call(ctx)
	if err != nil {
		p := a.page(ctx, title)
		p.Toast = &ui.ToastMessage{Kind: ui.ToastError, Message: a.remoteFailed(ctx, action, err)}
		return rerender(p)
	}

	user := res.User
	applied, err := f.LoginIfCurrent(ctx, gen, &user, res.Tokens.AccessToken, res.Tokens.RefreshToken)
	if !applied {
		a.flash(ctx, ui.ToastInfo, "You were signed out while signing in. Please sign in again.")
		return response.RedirectSeeOther(guard.SignInPath)
	}
	if err != nil {
		// The session is signed in for this run but will not survive a restart.
		a.flash(ctx, ui.ToastInfo, "Signed in, but the session could not be saved.")
		return response.RedirectSeeOther(guard.HomePath)
	}

	a.logger.InfoContext(ctx, "signed in",
		logger.Component("web"), logger.Action(action), logger.UserID(user.ID))
	return response.RedirectSeeOther(guard.HomePath)
}

// logout notifies the auth service and then clears the local session.
// Clearing bumps the store generation, which discards any login still in
// flight.
func (a *App) logout(ctx *Context) handler.Response {
	f, err := facade(ctx)
	if err != nil {
		return response.Error(err)
	}

	if f.IsAuthenticated() {
		nctx, cancel := context.WithTimeout(ctx, logoutNotifyTimeout)
		if err := a.auth.Logout(nctx); err != nil {
			a.remoteFailed(ctx, "logout", err)
		}
		cancel()
	}

	// A failed write-through is logged by the store; the in-memory session
	// is signed out regardless.
	_ = f.Logout(ctx)

	a.flash(ctx, ui.ToastSuccess, "You have been signed out.")
	return response.RedirectSeeOther(guard.SignInPath)
}

// refreshSession exchanges the refresh token for a new token pair.
func (a *App) refreshSession(ctx *Context) handler.Response {
	f, err := facade(ctx)
	if err != nil {
		return response.Error(err)
	}

	refreshToken := f.RefreshToken()
	if refreshToken == "" {
		a.flash(ctx, ui.ToastError, "No refresh token is available. Please sign in again.")
		return response.RedirectSeeOther(guard.HomePath)
	}

	gen := f.Generation()
	tokens, err := a.auth.Refresh(ctx, refreshToken)
	if err != nil {
		a.flash(ctx, ui.ToastError, a.remoteFailed(ctx, "refresh_session", err))
		return response.RedirectSeeOther(guard.HomePath)
	}
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}

	applied, err := f.LoginIfCurrent(ctx, gen, f.User(), tokens.AccessToken, tokens.RefreshToken)
	if !applied {
		a.flash(ctx, ui.ToastInfo, "You were signed out. Please sign in again.")
		return response.RedirectSeeOther(guard.SignInPath)
	}
	if err != nil {
		a.flash(ctx, ui.ToastInfo, "Session refreshed, but it could not be saved.")
		return response.RedirectSeeOther(guard.HomePath)
	}

	a.flash(ctx, ui.ToastSuccess, "Session refreshed.")
	return response.RedirectSeeOther(guard.HomePath)
}
