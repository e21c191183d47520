package binder

import "net/http"

// Binder extracts request data into a struct pointer.
type Binder func(r *http.Request, v any) error

// All applies binders in order and stops at the first error.
func All(binders ...Binder) Binder {
	return func(r *http.Request, v any) error {
		for _, bind := range binders {
			if err := bind(r, v); err != nil {
				return err
			}
		}
		return nil
	}
}
