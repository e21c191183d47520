package binder

import (
	"fmt"
	"mime"
	"net/http"
)

// DefaultMaxMemory bounds in-memory multipart parsing.
const DefaultMaxMemory = 1 << 20

// Form binds application/x-www-form-urlencoded and multipart/form-data
// bodies using `form:"name"` tags. Fields without a tag bind to their
// lowercased name; `form:"-"` skips a field.
//
//	type ItemForm struct {
//		Name        string `form:"name"`
//		Description string `form:"description"`
//	}
func Form() Binder {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected a form content type", ErrMissingContentType)
		}

		mediaType, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			return bindToStruct(v, "form", r.PostForm, ErrFailedToParseForm)

		case "multipart/form-data":
			if !validateBoundary(params["boundary"]) {
				return fmt.Errorf("%w: invalid boundary parameter", ErrFailedToParseForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			return bindToStruct(v, "form", r.MultipartForm.Value, ErrFailedToParseForm)

		default:
			return fmt.Errorf("%w: got %s", ErrUnsupportedMediaType, mediaType)
		}
	}
}

// validateBoundary rejects empty, oversized and line-breaking boundaries.
func validateBoundary(boundary string) bool {
	if boundary == "" || len(boundary) > 100 {
		return false
	}
	for _, r := range boundary {
		if r == '\x00' || r == '\r' || r == '\n' {
			return false
		}
	}
	return true
}
