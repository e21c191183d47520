package ui

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// html writes markup and remembers the first error, so components read as
// straight-line templates.
type html struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *html) raw(parts ...string) {
	for _, p := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, p)
	}
}

// text writes s escaped.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *html) render(components ...templ.Component) {
	for _, c := range components {
		if h.err != nil || c == nil {
			continue
		}
		h.err = c.Render(h.ctx, h.w)
	}
}

func component(fn func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

// attr escapes an attribute value.
func attr(s string) string {
	return templ.EscapeString(s)
}

// Text renders escaped text.
func Text(s string) templ.Component {
	return component(func(h *html) { h.text(s) })
}

// Group renders components in order.
func Group(components ...templ.Component) templ.Component {
	return component(func(h *html) { h.render(components...) })
}
