// Package binder maps request data onto tagged structs.
//
// Three binders are provided: Form for urlencoded and multipart bodies, Query
// for URL parameters and Path for route parameters. All composes them:
//
//	type UpdateItem struct {
//		ID          string `path:"id"`
//		Name        string `form:"name"`
//		Description string `form:"description"`
//	}
//
//	bind := binder.All(binder.Path(param), binder.Form())
//	if err := bind(r, &req); err != nil { ... }
//
// String values are stripped of control characters other than newline and tab.
package binder
