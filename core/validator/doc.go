// Package validator checks form structs and reports field-level messages.
//
// Rules are declared in `validate` tags and separated by semicolons:
//
//	type SignUp struct {
//		Name            string `form:"name" validate:"required"`
//		Email           string `form:"email" validate:"required;email"`
//		Password        string `form:"password" validate:"required;min:6"`
//		ConfirmPassword string `form:"confirm_password" validate:"required;same:Password"`
//	}
//
//	if err := validator.ValidateStruct(&req); err != nil {
//		errs := validator.ExtractValidationErrors(err)
//		errs.Get("email") // "Invalid email address"
//	}
//
// Only the first failing rule of a field is reported. Rules can also be
// applied directly with Apply(Required(...), ValidEmail(...)).
package validator
