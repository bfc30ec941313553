package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationWrapsSentinel(t *testing.T) {
	err := fmt.Errorf("submitting contact: %w", Validation("Invalid data", []FieldError{
		{Field: "email", Rule: "formemail", Message: "Please enter a valid email address"},
	}))

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "submitting contact: Invalid data", err.Error())

	fields := FieldsOf(err)
	assert.Len(t, fields, 1)
	assert.Equal(t, "email", fields[0].Field)
}

func TestConflict(t *testing.T) {
	err := Conflict("already subscribed")

	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "already subscribed", err.Error())
	assert.Nil(t, FieldsOf(err))
}

func TestNotFound(t *testing.T) {
	err := NotFound("newsletter subscription", "a@b.com")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "newsletter subscription not found with key a@b.com", err.Error())
}

func TestFieldsOfPlainError(t *testing.T) {
	assert.Nil(t, FieldsOf(errors.New("boom")))
	assert.Nil(t, FieldsOf(nil))
}
