// Package guard decides whether a navigation may proceed.
//
// Evaluate is a pure function of a Policy and a session snapshot. It never
// renders or redirects by itself: middleware.Guard turns a Redirect decision
// into an HTTP response before the page handler runs.
package guard
