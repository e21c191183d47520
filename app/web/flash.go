package web

import (
	"errors"

	"github.com/dmitrymomot/itemdesk/app/web/ui"
	"github.com/dmitrymomot/itemdesk/core/auth"
	"github.com/dmitrymomot/itemdesk/core/cookie"
	"github.com/dmitrymomot/itemdesk/core/logger"
)

const toastKey = "toast"

// flash queues a toast for the page rendered after the next redirect. A
// toast that cannot be stored is logged and dropped.
func (a *App) flash(ctx *Context, kind ui.ToastKind, message string) {
	err := a.cookies.SetFlash(ctx.ResponseWriter(), toastKey, ui.ToastMessage{Kind: kind, Message: message})
	if err != nil {
		a.logger.WarnContext(ctx, "failed to set toast", logger.Component("web"), logger.Error(err))
	}
}

// takeToast pops the pending toast, if any.
func (a *App) takeToast(ctx *Context) *ui.ToastMessage {
	var t ui.ToastMessage
	err := a.cookies.GetFlash(ctx.ResponseWriter(), ctx.Request(), toastKey, &t)
	switch {
	case errors.Is(err, cookie.ErrCookieNotFound):
		return nil
	case err != nil:
		a.logger.DebugContext(ctx, "discarding unreadable toast", logger.Component("web"), logger.Error(err))
		return nil
	}
	return &t
}

// page builds the layout data of the current request.
func (a *App) page(ctx *Context, title string) ui.Page {
	p := ui.Page{Title: title, Toast: a.takeToast(ctx)}
	if f, err := auth.FromContext(ctx); err == nil {
		p.Authenticated = f.IsAuthenticated()
	}
	return p
}
