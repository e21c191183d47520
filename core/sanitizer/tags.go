package sanitizer

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// ErrInvalidTarget is returned for anything but a pointer to a struct.
var ErrInvalidTarget = errors.New("sanitizer: must pass a pointer to struct")

var (
	registryMu sync.RWMutex
	registry   = map[string]func(string) string{
		"trim":        Trim,
		"lower":       ToLower,
		"single_line": SingleLine,
		"email":       NormalizeEmail,
		"multiline":   TrimLines,
	}
)

// RegisterSanitizer adds or replaces a named sanitizer.
func RegisterSanitizer(name string, fn func(string) string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// SanitizeStruct rewrites string fields (and string slices) in place
// according to their comma-separated `sanitize` tags. "max:N" truncates.
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	rv = rv.Elem()

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		tag := rt.Field(i).Tag.Get("sanitize")
		if tag == "" || tag == "-" || !field.CanSet() {
			continue
		}

		switch {
		case field.Kind() == reflect.String:
			field.SetString(apply(field.String(), tag))
		case field.Kind() == reflect.Pointer && !field.IsNil() && field.Elem().Kind() == reflect.String:
			field.Elem().SetString(apply(field.Elem().String(), tag))
		case field.Kind() == reflect.Slice && field.Type().Elem().Kind() == reflect.String:
			for j := range field.Len() {
				field.Index(j).SetString(apply(field.Index(j).String(), tag))
			}
		}
	}
	return nil
}

func apply(value, tag string) string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for name := range strings.SplitSeq(tag, ",") {
		name = strings.TrimSpace(name)
		if limit, ok := strings.CutPrefix(name, "max:"); ok {
			if n, err := strconv.Atoi(limit); err == nil {
				value = MaxLength(value, n)
			}
			continue
		}
		if fn, ok := registry[name]; ok {
			value = fn(value)
		}
	}
	return value
}
