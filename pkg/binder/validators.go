package binder

import (
	"github.com/go-playground/validator/v10"
	"github.com/shelfwise/shelfwise/pkg/validation"
)

// dateValidator ensures the value matches the catalog's dd-mm-yyyy format or
// is the empty string. The empty string is allowed so the validator can be
// used on optional filter params; pair it with `required` when the field must
// be present.
func dateValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := validation.Date(fl.FieldName(), value)
	return err == nil
}

// isbnValidator ensures the value matches the five-group ISBN shape or is the
// empty string.
func isbnValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := validation.ISBN(value)
	return err == nil
}

// usernameValidator ensures the value is a well-formed account name or the
// empty string.
func usernameValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := validation.Username(value)
	return err == nil
}
