// Package ui holds the templ components of the web client: the primitives
// (Button, Input, Textarea, Card, Dialog, Toast), the Layout and one
// component per page. All text is escaped.
package ui
