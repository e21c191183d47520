package binder

import (
	"fmt"
	"net/http"
)

// Path binds route parameters using `path:"name"` tags. extractor resolves a
// parameter by name, for example a closure over the router context.
func Path(extractor func(r *http.Request, name string) string) Binder {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrFailedToParsePath)
		}

		rv, err := structValue(v, ErrFailedToParsePath)
		if err != nil {
			return err
		}

		rt := rv.Type()
		for i := range rv.NumField() {
			field, fieldType := rv.Field(i), rt.Field(i)
			if !field.CanSet() {
				continue
			}

			name, skip := parseFieldTag(fieldType, "path")
			if skip {
				continue
			}

			value := extractor(r, name)
			if value == "" {
				continue
			}
			if err := setFieldValue(field, fieldType.Type, []string{value}); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrFailedToParsePath, fieldType.Name, err)
			}
		}
		return nil
	}
}
