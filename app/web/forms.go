package web

import "github.com/dmitrymomot/itemdesk/integration/itemservice"

type signInForm struct {
	Email    string `form:"email" sanitize:"trim,email" validate:"required;email"`
	Password string `form:"password" validate:"required"`
}

// values returns what is echoed back into the form. Passwords never are.
func (f signInForm) values() map[string]string {
	return map[string]string{"email": f.Email}
}

type signUpForm struct {
	Name            string `form:"name" sanitize:"trim,single_line,max:100" validate:"required;max:100"`
	Email           string `form:"email" sanitize:"trim,email" validate:"required;email"`
	Password        string `form:"password" validate:"required;min:6"`
	ConfirmPassword string `form:"confirm_password" validate:"required;same:Password"`
}

func (f signUpForm) values() map[string]string {
	return map[string]string{"name": f.Name, "email": f.Email}
}

type itemForm struct {
	ID          string `path:"id" form:"-"`
	Name        string `form:"name" sanitize:"trim,single_line" validate:"required;max:200"`
	Description string `form:"description" sanitize:"multiline,max:2000" validate:"max:2000"`
}

func (f itemForm) values() map[string]string {
	return map[string]string{"name": f.Name, "description": f.Description}
}

type statusForm struct {
	ID     string `path:"id" form:"-"`
	Status string `form:"status" sanitize:"trim,lower" validate:"required;in:draft,active,archived"`
}

type itemsQuery struct {
	Q      string `query:"q" sanitize:"trim,single_line,max:200"`
	Status string `query:"status" sanitize:"trim,lower" validate:"in:draft,active,archived"`
}

// filters turns the query into list filters. An empty status lists all.
func (q itemsQuery) filters() itemservice.Filters {
	f := itemservice.Filters{Name: q.Q}
	if s, ok := itemservice.ParseStatus(q.Status); ok {
		f.Statuses = []itemservice.Status{s}
	}
	return f
}
