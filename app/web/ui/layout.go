package ui

import "github.com/a-h/templ"

const styles = `body{font-family:system-ui,sans-serif;max-width:48rem;margin:0 auto;padding:1rem;color:#1f2328}
nav{display:flex;gap:1rem;align-items:center;border-bottom:1px solid #d0d7de;padding-bottom:.5rem;margin-bottom:1rem}
nav .spacer{flex:1}nav form{margin:0}
.card{border:1px solid #d0d7de;border-radius:6px;padding:1rem;margin-bottom:1rem}
.field{display:flex;flex-direction:column;margin-bottom:.75rem}
.field input,.field textarea{padding:.4rem;border:1px solid #d0d7de;border-radius:4px}
.field-invalid input,.field-invalid textarea{border-color:#cf222e}
.field-error{color:#cf222e;margin:.25rem 0 0;font-size:.875rem}
.btn{padding:.4rem .8rem;border-radius:4px;border:1px solid #d0d7de;background:#f6f8fa;cursor:pointer;text-decoration:none;color:inherit;display:inline-block}
.btn-primary{background:#1f883d;color:#fff}.btn-danger{background:#cf222e;color:#fff}
.toast{padding:.6rem 1rem;border-radius:4px;margin-bottom:1rem}
.toast-success{background:#dafbe1}.toast-error{background:#ffebe9}.toast-info{background:#ddf4ff}
table{width:100%;border-collapse:collapse}td,th{text-align:left;padding:.4rem;border-bottom:1px solid #d0d7de}
.row-actions{display:flex;gap:.5rem}.row-actions form{margin:0}
.dialog{position:static;border:1px solid #d0d7de;border-radius:6px}.dialog-actions{display:flex;gap:.5rem}`

// Page carries what the layout needs besides the body.
type Page struct {
	Title         string
	Authenticated bool
	Toast         *ToastMessage
}

// Layout wraps body in the document shell with navigation and toast.
func Layout(p Page, body templ.Component) templ.Component {
	return component(func(h *html) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(p.Title)
		h.raw(` · itemdesk</title><style>`, styles, `</style></head><body><nav><strong>itemdesk</strong>`)
		if p.Authenticated {
			h.raw(`<a href="/">Home</a><a href="/items">Items</a><span class="spacer"></span>`)
			h.render(Form("/logout", Button("Sign out", ButtonSecondary)))
		} else {
			h.raw(`<span class="spacer"></span><a href="/sign-in">Sign in</a><a href="/sign-up">Sign up</a>`)
		}
		h.raw(`</nav><main>`)
		h.render(Toast(p.Toast), body)
		h.raw(`</main></body></html>`)
	})
}
