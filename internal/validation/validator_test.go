package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmail(t *testing.T) {
	cases := map[string]bool{
		"user@example.com":  true,
		"a@b.co":            true,
		"not-an-email":      false,
		"":                  false,
		"two words@x.com":   false,
		"missing@tld":       false,
		"@example.com":      false,
		"user@@example.com": false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsEmail(in), "IsEmail(%q)", in)
	}
}

func TestIsPhone(t *testing.T) {
	cases := map[string]bool{
		"+91 8438829844":    true,
		"9876543210":        true,
		"(987) 654-3210":    true,
		"+1 (555) 123-4567": true,
		"12345":             false,
		"abcdefghij":        false,
		"":                  false,
		"98765 4321x":       false,
		"++919876543210":    false,
		"---- ---- ()":      false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsPhone(in), "IsPhone(%q)", in)
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("  \t\n"))
	assert.False(t, IsBlank(" x "))
}

func TestIsCertificateCode(t *testing.T) {
	assert.True(t, IsCertificateCode("C2C-2025-1234"))
	assert.False(t, IsCertificateCode("C2C-2025-12"))
	assert.False(t, IsCertificateCode("X2C-2025-1234"))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "First name", Label("firstName"))
	assert.Equal(t, "Course for demo", Label("courseForDemo"))
	assert.Equal(t, "College name", Label("college_name"))
	assert.Equal(t, "Email", Label("email"))
	assert.Equal(t, "", Label(""))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.com "))
}

type sampleForm struct {
	Name     string  `json:"name" validate:"notblank"`
	Email    string  `json:"email" validate:"notblank,formemail"`
	Phone    string  `json:"phone" validate:"notblank,phone"`
	AltPhone string  `json:"alt_phone" validate:"optphone"`
	Note     *string `json:"note"`
}

func TestStructPasses(t *testing.T) {
	form := sampleForm{Name: "A", Email: "a@b.com", Phone: "9876543210"}
	assert.Nil(t, Struct(&form))
}

func TestStructCollectsFieldErrors(t *testing.T) {
	form := sampleForm{Name: "   ", Email: "nope", Phone: "12345", AltPhone: "abc"}

	errs := Struct(&form)
	require.NotNil(t, errs)

	msgs := errs.Messages()
	assert.Equal(t, "Name is required", msgs["name"])
	assert.Equal(t, "Please enter a valid email address", msgs["email"])
	assert.Equal(t, "Please enter a valid phone number", msgs["phone"])
	assert.Equal(t, "Please enter a valid phone number", msgs["alt_phone"])
	assert.Len(t, errs.Fields, 4)
	assert.Contains(t, errs.Error(), "email: Please enter a valid email address")
}

func TestStructRequiredBeforeFormat(t *testing.T) {
	form := sampleForm{Name: "A", Email: "", Phone: "9876543210"}

	errs := Struct(&form)
	require.NotNil(t, errs)
	require.Len(t, errs.Fields, 1)
	assert.Equal(t, "email", errs.Fields[0].Field)
	assert.Equal(t, "notblank", errs.Fields[0].Rule)
	assert.Equal(t, "Email is required", errs.Fields[0].Message)
}

func TestErrorsAppError(t *testing.T) {
	errs := Struct(&sampleForm{})
	require.NotNil(t, errs)

	appErr := errs.AppError("Invalid data")
	assert.Equal(t, "Invalid data", appErr.Message)
	assert.Equal(t, errs.Fields, appErr.Fields)
}
