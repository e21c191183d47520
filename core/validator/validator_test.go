package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/itemdesk/core/validator"
)

type signUp struct {
	Name            string  `form:"name" validate:"required"`
	Email           string  `form:"email" validate:"required;email"`
	Password        string  `form:"password" validate:"required;min:6"`
	ConfirmPassword string  `form:"confirm_password" validate:"required;same:Password"`
	Status          string  `validate:"in:draft,active,archived"`
	Nickname        *string `validate:"max:5"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		req := signUp{Name: "Ann", Email: "ann@example.com", Password: "secret1", ConfirmPassword: "secret1"}
		assert.NoError(t, validator.ValidateStruct(&req))
	})

	t.Run("reports first failing rule per field", func(t *testing.T) {
		t.Parallel()

		nick := "toolongnick"
		req := signUp{Name: " ", Email: "", Password: "abc", ConfirmPassword: "abd", Status: "deleted", Nickname: &nick}
		err := validator.ValidateStruct(&req)
		require.Error(t, err)

		errs := validator.ExtractValidationErrors(err)
		require.NotNil(t, errs)
		assert.Equal(t, map[string]string{
			"name":             "This field is required",
			"email":            "This field is required",
			"password":         "Must be at least 6 characters",
			"confirm_password": "Passwords do not match",
			"Status":           "Must be one of: draft, active, archived",
			"Nickname":         "Must be at most 5 characters",
		}, errs.Fields())
	})

	t.Run("invalid email", func(t *testing.T) {
		t.Parallel()

		for _, email := range []string{"ann", "ann@", "Ann <ann@example.com>", "ann@example"} {
			req := signUp{Name: "Ann", Email: email, Password: "secret1", ConfirmPassword: "secret1"}
			errs := validator.ExtractValidationErrors(validator.ValidateStruct(&req))
			assert.Equal(t, "Invalid email address", errs.Get("email"), email)
		}
	})

	t.Run("invalid target", func(t *testing.T) {
		t.Parallel()

		assert.ErrorIs(t, validator.ValidateStruct(signUp{}), validator.ErrInvalidTarget)
		assert.ErrorIs(t, validator.ValidateStruct((*signUp)(nil)), validator.ErrInvalidTarget)
	})
}

func TestApply(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.Required("name", "x")))

	err := validator.Apply(
		validator.Required("name", ""),
		validator.ValidEmail("email", "nope"),
	)
	errs := validator.ExtractValidationErrors(err)
	assert.True(t, errs.Has("name"))
	assert.True(t, errs.Has("email"))
	assert.False(t, errs.Has("password"))
}

func TestExtractValidationErrors(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("bind: %w", validator.Apply(validator.Required("name", "")))
	assert.True(t, validator.IsValidationError(wrapped))
	assert.Len(t, validator.ExtractValidationErrors(wrapped), 1)

	assert.False(t, validator.IsValidationError(errors.New("other")))
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("other")))
}
