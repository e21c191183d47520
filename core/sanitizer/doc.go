// Package sanitizer normalizes user input before validation.
//
//	type ItemForm struct {
//		Name        string `form:"name" sanitize:"single_line,max:200"`
//		Description string `form:"description" sanitize:"multiline,max:2000"`
//		Email       string `form:"email" sanitize:"email"`
//	}
//
//	_ = sanitizer.SanitizeStruct(&form)
package sanitizer
