// Package validation holds the field rules shared by the server and the
// intake client, and a go-playground/validator engine that applies them to
// request structs tagged with `validate:"..."`.
//
// Custom tags:
//
//	notblank   non-empty after trimming whitespace
//	formemail  local@domain.tld
//	phone      see IsPhone
//	optphone   blank, or a valid phone
//	certcode   see IsCertificateCode
//
// Field names in errors come from the json tag, so they match the keys the
// client sent.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"intake-api/internal/apperror"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Errors is the failure half of a validation result.
type Errors struct {
	Fields []apperror.FieldError
}

func (e *Errors) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return strings.Join(messages, "; ")
}

// Messages returns field -> message, the shape forms display inline.
func (e *Errors) Messages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = f.Message
	}
	return out
}

// AppError converts the result into the application error taxonomy.
func (e *Errors) AppError(message string) *apperror.AppError {
	return apperror.Validation(message, e.Fields)
}

// Engine returns the shared validator with the custom rules registered.
func Engine() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(jsonFieldName)

		mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
			return !IsBlank(fl.Field().String())
		})
		mustRegister(v, "formemail", func(fl validator.FieldLevel) bool {
			return IsEmail(fl.Field().String())
		})
		mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
			return IsPhone(fl.Field().String())
		})
		mustRegister(v, "optphone", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return IsBlank(s) || IsPhone(s)
		})
		mustRegister(v, "certcode", func(fl validator.FieldLevel) bool {
			return IsCertificateCode(fl.Field().String())
		})

		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// Struct validates s. It returns nil when every rule passes.
func Struct(s interface{}) *Errors {
	err := Engine().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Errors{Fields: []apperror.FieldError{{
			Field:   "body",
			Rule:    "invalid",
			Message: err.Error(),
		}}}
	}

	out := &Errors{Fields: make([]apperror.FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, apperror.FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: Message(fe.Field(), fe.Tag()),
		})
	}
	return out
}

// Message renders the text shown for a failed rule on field.
func Message(field, rule string) string {
	switch rule {
	case "notblank", "required":
		return Label(field) + " is required"
	case "formemail":
		return "Please enter a valid email address"
	case "phone", "optphone":
		return "Please enter a valid phone number"
	case "certcode":
		return "Certificate code must be in format C2C-YYYY-XXXX"
	default:
		return fmt.Sprintf("%s failed %s validation", Label(field), rule)
	}
}
