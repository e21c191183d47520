package ui

import (
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/itemdesk/core/session"
	"github.com/dmitrymomot/itemdesk/integration/itemservice"
)

// FormState is the submitted values and field errors of a form being
// rendered back to the user.
type FormState struct {
	Values map[string]string
	Errors map[string]string
}

func (f FormState) value(name string) string { return f.Values[name] }
func (f FormState) err(name string) string { return f.Errors[name] }

// HomeData is shown on the landing page of a signed-in user.
type HomeData struct {
	User        *session.User
	TokenExpiry time.Time
	Expired     bool
}

func HomePage(p Page, d HomeData) templ.Component {
	name := "there"
	if d.User != nil && d.User.Name != "" {
		name = d.User.Name
	}

	return Layout(p, Group(
		Card("Welcome, "+name,
			component(func(h *html) {
				if d.User != nil {
					h.raw(`<p>Signed in as <strong>`)
					h.text(d.User.Email)
					h.raw(`</strong></p>`)
				}
				switch {
				case d.TokenExpiry.IsZero():
					h.raw(`<p>Access token expiry is unknown.</p>`)
				case d.Expired:
					h.raw(`<p>Your access token expired at `)
					h.text(d.TokenExpiry.Local().Format(time.DateTime))
					h.raw(`.</p>`)
				default:
					h.raw(`<p>Your access token is valid until `)
					h.text(d.TokenExpiry.Local().Format(time.DateTime))
					h.raw(`.</p>`)
				}
			}),
			LinkButton("Go to items", "/items", ButtonPrimary),
		),
		Card("Session",
			Form("/session/refresh", Button("Refresh session", ButtonSecondary)),
		),
	))
}

// ItemsData is the item list with its create form. Status is the slug of
// the status filter, empty for all.
type ItemsData struct {
	Items  []itemservice.Item
	Total  int
	Query  string
	Status string
	Create FormState
}

// statusOptions writes the options of a status select. all adds a leading
// option with an empty value.
func statusOptions(h *html, selected, all string) {
	if all != "" {
		h.raw(`<option value=""`)
		if selected == "" {
			h.raw(` selected`)
		}
		h.raw(`>`)
		h.text(all)
		h.raw(`</option>`)
	}
	for _, s := range itemservice.Statuses {
		h.raw(`<option value="`, attr(s.Slug()), `"`)
		if s.Slug() == selected {
			h.raw(` selected`)
		}
		h.raw(`>`)
		h.text(s.Label())
		h.raw(`</option>`)
	}
}

func ItemsPage(p Page, d ItemsData) templ.Component {
	return Layout(p, Group(
		Card("New item",
			Form("/items",
				Input(Field{Label: "Name", Name: "name", Value: d.Create.value("name"), Error: d.Create.err("name"), Required: true}),
				Textarea(Field{Label: "Description", Name: "description", Value: d.Create.value("description"), Error: d.Create.err("description")}),
				Button("Create", ButtonPrimary),
			),
		),
		Card("Items ("+strconv.Itoa(d.Total)+")",
			component(func(h *html) {
				h.raw(`<form method="get" action="/items"><div class="field"><label for="q">Search</label>`,
					`<input type="search" id="q" name="q" value="`, attr(d.Query), `"></div>`,
					`<div class="field"><label for="status">Status</label><select id="status" name="status">`)
				statusOptions(h, d.Status, "All statuses")
				h.raw(`</select></div>`)
				h.render(Button("Filter", ButtonSecondary))
				h.raw(`</form>`)
				if len(d.Items) == 0 {
					if d.Query != "" || d.Status != "" {
						h.raw(`<p>No items match.</p>`)
						return
					}
					h.raw(`<p>No items yet.</p>`)
					return
				}
				h.raw(`<table><thead><tr><th>Name</th><th>Description</th><th>Status</th><th>Updated</th><th></th></tr></thead><tbody>`)
				for _, item := range d.Items {
					h.raw(`<tr><td>`)
					h.text(item.Name)
					h.raw(`</td><td>`)
					h.text(item.Description)
					h.raw(`</td><td>`)
					h.raw(`<form method="post" action="/items/`, attr(url.PathEscape(item.ID)), `/status">`,
						`<select name="status" aria-label="Status">`)
					statusOptions(h, item.Status.Slug(), "")
					h.raw(`</select>`)
					h.render(Button("Set", ButtonSecondary))
					h.raw(`</form></td><td>`)
					if !item.UpdatedAt.IsZero() {
						h.text(item.UpdatedAt.Local().Format(time.DateTime))
					}
					h.raw(`</td><td class="row-actions">`)
					h.render(
						LinkButton("Edit", "/items/"+url.PathEscape(item.ID)+"/edit", ButtonSecondary),
						LinkButton("Delete", "/items/"+url.PathEscape(item.ID)+"/delete", ButtonDanger),
					)
					h.raw(`</td></tr>`)
				}
				h.raw(`</tbody></table>`)
			}),
		),
	))
}

// EditItemPage renders the edit form of item. Values in form take
// precedence over the stored item when re-rendering after a failed submit.
func EditItemPage(p Page, item itemservice.Item, form FormState) templ.Component {
	name, description := item.Name, item.Description
	if form.Values != nil {
		name, description = form.value("name"), form.value("description")
	}

	return Layout(p, Card("Edit item",
		Form("/items/"+url.PathEscape(item.ID),
			Input(Field{Label: "Name", Name: "name", Value: name, Error: form.err("name"), Required: true}),
			Textarea(Field{Label: "Description", Name: "description", Value: description, Error: form.err("description")}),
			Button("Save", ButtonPrimary),
			LinkButton("Cancel", "/items", ButtonSecondary),
		),
	))
}

// DeleteItemPage asks for confirmation before deleting item.
func DeleteItemPage(p Page, item itemservice.Item) templ.Component {
	return Layout(p, Dialog(
		"Delete item",
		"Delete \""+item.Name+"\"? This cannot be undone.",
		"/items/"+url.PathEscape(item.ID)+"/delete",
		"Delete",
		"/items",
	))
}

func SignInPage(p Page, form FormState) templ.Component {
	return Layout(p, Card("Sign in",
		Form("/sign-in",
			Input(Field{Label: "Email", Name: "email", Type: "email", Value: form.value("email"), Error: form.err("email"), Required: true}),
			Input(Field{Label: "Password", Name: "password", Type: "password", Error: form.err("password"), Required: true}),
			Button("Sign in", ButtonPrimary),
		),
		component(func(h *html) {
			h.raw(`<p>No account? <a href="/sign-up">Sign up</a></p>`)
		}),
	))
}

func SignUpPage(p Page, form FormState) templ.Component {
	return Layout(p, Card("Create an account",
		Form("/sign-up",
			Input(Field{Label: "Name", Name: "name", Value: form.value("name"), Error: form.err("name"), Required: true}),
			Input(Field{Label: "Email", Name: "email", Type: "email", Value: form.value("email"), Error: form.err("email"), Required: true}),
			Input(Field{Label: "Password", Name: "password", Type: "password", Error: form.err("password"), Required: true}),
			Input(Field{Label: "Confirm password", Name: "confirm_password", Type: "password", Error: form.err("confirm_password"), Required: true}),
			Button("Sign up", ButtonPrimary),
		),
		component(func(h *html) {
			h.raw(`<p>Already registered? <a href="/sign-in">Sign in</a></p>`)
		}),
	))
}

// ErrorPage is rendered by the router error handler.
func ErrorPage(p Page, status int, message string) templ.Component {
	return Layout(p, Card(strconv.Itoa(status),
		Text(message),
		component(func(h *html) { h.raw(`<p><a href="/">Back home</a></p>`) }),
	))
}
