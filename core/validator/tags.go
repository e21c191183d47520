package validator

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Field is the value under validation together with its enclosing struct,
// which cross-field rules such as "same" read from.
type Field struct {
	Name   string
	Value  reflect.Value
	Parent reflect.Value
}

// ValidatorFunc builds the Rule for a tag entry like "min:6".
type ValidatorFunc func(f Field, params []string) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]ValidatorFunc{
		"required": requiredValidator,
		"min":      minValidator,
		"max":      maxValidator,
		"email":    emailValidator,
		"in":       inValidator,
		"same":     sameValidator,
	}
)

// RegisterValidator adds or replaces a named rule.
func RegisterValidator(name string, fn ValidatorFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct checks the `validate:"rule;rule:param"` tags of v, which
// must be a pointer to a struct. Errors are keyed by the field's form tag
// when present so they can be matched to inputs.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	rv = rv.Elem()

	var errs ValidationErrors
	rt := rv.Type()
	for i := range rv.NumField() {
		sf := rt.Field(i)
		tag := sf.Tag.Get("validate")
		if tag == "" || tag == "-" || !sf.IsExported() {
			continue
		}

		field := Field{Name: fieldName(sf), Value: rv.Field(i), Parent: rv}
		if field.Value.Kind() == reflect.Pointer {
			if field.Value.IsNil() {
				field.Value = reflect.Zero(field.Value.Type().Elem())
			} else {
				field.Value = field.Value.Elem()
			}
		}
		validateField(field, tag, &errs)
	}

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func fieldName(sf reflect.StructField) string {
	if tag := sf.Tag.Get("form"); tag != "" && tag != "-" {
		name, _, _ := strings.Cut(tag, ",")
		return name
	}
	return sf.Name
}

// validateField reports at most one error per field: the first failing rule.
func validateField(f Field, tag string, errs *ValidationErrors) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for raw := range strings.SplitSeq(tag, ";") {
		name, paramStr, _ := strings.Cut(strings.TrimSpace(raw), ":")
		if name == "" {
			continue
		}

		var params []string
		if paramStr = strings.TrimSpace(paramStr); paramStr != "" {
			for p := range strings.SplitSeq(paramStr, ",") {
				params = append(params, strings.TrimSpace(p))
			}
		}

		fn, ok := registry[name]
		if !ok {
			continue
		}
		if rule := fn(f, params); rule.Check != nil && !rule.Check() {
			errs.Add(rule.Error)
			return
		}
	}
}

func pass() Rule { return Rule{Check: func() bool { return true }} }

func requiredValidator(f Field, _ []string) Rule {
	if f.Value.Kind() == reflect.String {
		return Required(f.Name, f.Value.String())
	}
	rule := Required(f.Name, "")
	rule.Check = func() bool { return !f.Value.IsZero() }
	return rule
}

func minValidator(f Field, params []string) Rule {
	if len(params) < 1 || f.Value.Kind() != reflect.String {
		return pass()
	}
	n, _ := strconv.Atoi(params[0])
	return MinLenString(f.Name, f.Value.String(), n)
}

func maxValidator(f Field, params []string) Rule {
	if len(params) < 1 || f.Value.Kind() != reflect.String {
		return pass()
	}
	n, _ := strconv.Atoi(params[0])
	return MaxLenString(f.Name, f.Value.String(), n)
}

func emailValidator(f Field, _ []string) Rule {
	if f.Value.Kind() != reflect.String {
		return pass()
	}
	return ValidEmail(f.Name, f.Value.String())
}

func inValidator(f Field, params []string) Rule {
	if f.Value.Kind() != reflect.String || f.Value.String() == "" {
		return pass()
	}
	return InList(f.Name, f.Value.String(), params)
}

// sameValidator compares with a sibling field: `validate:"same:Password"`.
func sameValidator(f Field, params []string) Rule {
	if len(params) < 1 || f.Value.Kind() != reflect.String {
		return pass()
	}
	other := f.Parent.FieldByName(params[0])
	if !other.IsValid() || other.Kind() != reflect.String {
		return pass()
	}
	return EqualTo(f.Name, f.Value.String(), other.String(), "Passwords do not match")
}
