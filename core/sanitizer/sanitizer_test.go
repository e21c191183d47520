package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/itemdesk/core/sanitizer"
)

func TestSanitizeStruct(t *testing.T) {
	t.Parallel()

	type form struct {
		Name        string   `sanitize:"single_line,max:5"`
		Description string   `sanitize:"multiline"`
		Email       string   `sanitize:"email"`
		Statuses    []string `sanitize:"trim,lower"`
		Note        *string  `sanitize:"trim"`
		Password    string
	}

	note := "  hi  "
	f := form{
		Name:        "  Big\n  Widget ",
		Description: "\n first line   \nsecond\t\n\n",
		Email:       " Ann@Example.COM ",
		Statuses:    []string{" Draft", "ACTIVE "},
		Note:        &note,
		Password:    "  keep me ",
	}

	require.NoError(t, sanitizer.SanitizeStruct(&f))

	assert.Equal(t, "Big W", f.Name)
	assert.Equal(t, "first line\nsecond", f.Description)
	assert.Equal(t, "ann@example.com", f.Email)
	assert.Equal(t, []string{"draft", "active"}, f.Statuses)
	assert.Equal(t, "hi", *f.Note)
	assert.Equal(t, "  keep me ", f.Password)
}

func TestSanitizeStruct_InvalidTarget(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, sanitizer.SanitizeStruct(struct{}{}), sanitizer.ErrInvalidTarget)
}

func TestRegisterSanitizer(t *testing.T) {
	t.Parallel()

	sanitizer.RegisterSanitizer("shout", strings.ToUpper)

	type form struct {
		Word string `sanitize:"trim,shout"`
	}
	f := form{Word: " hey "}
	require.NoError(t, sanitizer.SanitizeStruct(&f))
	assert.Equal(t, "HEY", f.Word)
}
