package validator

import (
	"errors"
	"strings"
)

// ErrInvalidTarget is returned when ValidateStruct gets something other
// than a pointer to a struct.
var ErrInvalidTarget = errors.New("validator: must pass a pointer to struct")

// ValidationError describes one failed rule on one field.
type ValidationError struct {
	Field             string         `json:"field"`
	Message           string         `json:"message"`
	TranslationKey    string         `json:"translation_key,omitempty"`
	TranslationValues map[string]any `json:"translation_values,omitempty"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is the set of failures for one validation pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, err := range e {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationErrors) Add(err ValidationError) {
	*e = append(*e, err)
}

func (e ValidationErrors) IsEmpty() bool {
	return len(e) == 0
}

// Has reports whether field has at least one error.
func (e ValidationErrors) Has(field string) bool {
	return e.Get(field) != ""
}

// Get returns the first message recorded for field.
func (e ValidationErrors) Get(field string) string {
	for _, err := range e {
		if err.Field == field {
			return err.Message
		}
	}
	return ""
}

// Fields maps each field to its first message.
func (e ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(e))
	for _, err := range e {
		if _, ok := out[err.Field]; !ok {
			out[err.Field] = err.Message
		}
	}
	return out
}

// IsValidationError reports whether err wraps ValidationErrors.
func IsValidationError(err error) bool {
	var v ValidationErrors
	return errors.As(err, &v)
}

// ExtractValidationErrors unwraps ValidationErrors from err, or returns nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v
	}
	return nil
}
