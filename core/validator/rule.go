package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule pairs a check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply runs rules and collects the errors of the failing ones.
// It returns nil when every rule passes.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if r.Check != nil && !r.Check() {
			errs.Add(r.Error)
		}
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Required fails for blank strings.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{
			Field:             field,
			Message:           "This field is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// MinLenString fails for strings shorter than min runes.
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= min },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("Must be at least %d characters", min),
			TranslationKey:    "validation.min_length",
			TranslationValues: map[string]any{"field": field, "min": min},
		},
	}
}

// MaxLenString fails for strings longer than max runes.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("Must be at most %d characters", max),
			TranslationKey:    "validation.max_length",
			TranslationValues: map[string]any{"field": field, "max": max},
		},
	}
}

// ValidEmail fails for values that are not a bare address. Blank values pass
// so that Required reports them instead.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			addr, err := mail.ParseAddress(value)
			return err == nil && addr.Address == value && emailPattern.MatchString(value)
		},
		Error: ValidationError{
			Field:             field,
			Message:           "Invalid email address",
			TranslationKey:    "validation.email",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// InList fails when value is not one of allowed.
func InList(field, value string, allowed []string) Rule {
	return Rule{
		Check: func() bool {
			for _, a := range allowed {
				if value == a {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:             field,
			Message:           "Must be one of: " + strings.Join(allowed, ", "),
			TranslationKey:    "validation.in",
			TranslationValues: map[string]any{"field": field, "values": allowed},
		},
	}
}

// EqualTo fails when value differs from other. field names the confirming
// input, which is where the error is shown.
func EqualTo(field, value, other, message string) Rule {
	if message == "" {
		message = "Values do not match"
	}
	return Rule{
		Check: func() bool { return value == other },
		Error: ValidationError{
			Field:             field,
			Message:           message,
			TranslationKey:    "validation.same",
			TranslationValues: map[string]any{"field": field},
		},
	}
}
