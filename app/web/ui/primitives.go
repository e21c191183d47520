package ui

import (
	"github.com/a-h/templ"
)

// ButtonVariant selects the button style.
type ButtonVariant string

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonDanger    ButtonVariant = "danger"
)

// Button is a submit button.
func Button(label string, variant ButtonVariant) templ.Component {
	return component(func(h *html) {
		h.raw(`<button type="submit" class="btn btn-`, attr(string(variant)), `">`)
		h.text(label)
		h.raw(`</button>`)
	})
}

// LinkButton is an anchor styled as a button.
func LinkButton(label, href string, variant ButtonVariant) templ.Component {
	return component(func(h *html) {
		h.raw(`<a class="btn btn-`, attr(string(variant)), `" href="`, attr(href), `">`)
		h.text(label)
		h.raw(`</a>`)
	})
}

// Field describes a labelled form control. Error is rendered under it.
type Field struct {
	Label       string
	Name        string
	Type        string
	Value       string
	Error       string
	Placeholder string
	Required    bool
}

func (f Field) open(h *html) {
	h.raw(`<div class="field`)
	if f.Error != "" {
		h.raw(` field-invalid`)
	}
	h.raw(`"><label for="`, attr(f.Name), `">`)
	h.text(f.Label)
	h.raw(`</label>`)
}

func (f Field) common(h *html) {
	h.raw(` id="`, attr(f.Name), `" name="`, attr(f.Name), `"`)
	if f.Placeholder != "" {
		h.raw(` placeholder="`, attr(f.Placeholder), `"`)
	}
	if f.Required {
		h.raw(` required`)
	}
	if f.Error != "" {
		h.raw(` aria-invalid="true"`)
	}
}

func (f Field) close(h *html) {
	if f.Error != "" {
		h.raw(`<p class="field-error">`)
		h.text(f.Error)
		h.raw(`</p>`)
	}
	h.raw(`</div>`)
}

// Input is a single-line control. Password values are never echoed back.
func Input(f Field) templ.Component {
	return component(func(h *html) {
		typ := f.Type
		if typ == "" {
			typ = "text"
		}
		f.open(h)
		h.raw(`<input type="`, attr(typ), `"`)
		f.common(h)
		if typ != "password" {
			h.raw(` value="`, attr(f.Value), `"`)
		}
		h.raw(`>`)
		f.close(h)
	})
}

// Textarea is a multi-line control.
func Textarea(f Field) templ.Component {
	return component(func(h *html) {
		f.open(h)
		h.raw(`<textarea rows="3"`)
		f.common(h)
		h.raw(`>`)
		h.text(f.Value)
		h.raw(`</textarea>`)
		f.close(h)
	})
}

// Form posts its children to action.
func Form(action string, children ...templ.Component) templ.Component {
	return component(func(h *html) {
		h.raw(`<form method="post" action="`, attr(action), `" novalidate>`)
		h.render(children...)
		h.raw(`</form>`)
	})
}

// Card is a titled panel.
func Card(title string, children ...templ.Component) templ.Component {
	return component(func(h *html) {
		h.raw(`<section class="card">`)
		if title != "" {
			h.raw(`<h2>`)
			h.text(title)
			h.raw(`</h2>`)
		}
		h.render(children...)
		h.raw(`</section>`)
	})
}

// Dialog is an open modal asking to confirm an action. Confirm posts to
// action, cancel navigates to cancelHref.
func Dialog(title, message, action, confirmLabel, cancelHref string) templ.Component {
	return component(func(h *html) {
		h.raw(`<dialog open class="dialog" aria-labelledby="dialog-title"><h2 id="dialog-title">`)
		h.text(title)
		h.raw(`</h2><p>`)
		h.text(message)
		h.raw(`</p><div class="dialog-actions">`)
		h.render(
			Form(action, Button(confirmLabel, ButtonDanger)),
			LinkButton("Cancel", cancelHref, ButtonSecondary),
		)
		h.raw(`</div></dialog>`)
	})
}

// ToastKind selects the toast style.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
)

// ToastMessage is a transient notification carried across one redirect.
type ToastMessage struct {
	Kind    ToastKind `json:"kind"`
	Message string    `json:"message"`
}

// Toast renders t, or nothing for nil.
func Toast(t *ToastMessage) templ.Component {
	return component(func(h *html) {
		if t == nil || t.Message == "" {
			return
		}
		h.raw(`<div class="toast toast-`, attr(string(t.Kind)), `" role="status">`)
		h.text(t.Message)
		h.raw(`</div>`)
	})
}
