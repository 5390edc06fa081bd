package binder

import (
	"reflect"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/stretchr/testify/assert"
)

type mockFieldError struct {
	tag   string
	field string
	param string
	kind  reflect.Kind
}

func (e *mockFieldError) Error() string           { return "Mock Field Error" }
func (e *mockFieldError) Tag() string             { return e.tag }
func (e *mockFieldError) ActualTag() string       { return e.tag }
func (e *mockFieldError) Namespace() string       { return "" }
func (e *mockFieldError) StructNamespace() string { return "" }
func (e *mockFieldError) Field() string           { return e.field }
func (e *mockFieldError) StructField() string     { return "" }
func (e *mockFieldError) Value() interface{}      { return "" }
func (e *mockFieldError) Param() string           { return e.param }
func (e *mockFieldError) Kind() reflect.Kind {
	if e.kind == 0 {
		return reflect.String
	}
	return e.kind
}
func (e *mockFieldError) Type() reflect.Type               { return reflect.TypeOf("") }
func (e *mockFieldError) Translate(_ ut.Translator) string { return "" }

func TestFormatValidationError(t *testing.T) {
	cases := []struct {
		tag   string
		param string
		kind  reflect.Kind
		msg   string
	}{
		{libdate, "", 0, `"return_date" should be in the format of dd-mm-yyyy`},
		{isbn, "", 0, `"return_date" should be five digit groups of lengths 3-1-2-6-1 separated by dashes`},
		{username, "", 0, `"return_date" may only contain letters, digits, '-' and '_'`},
		{gt, "0", 0, `"return_date" must be greater than 0`},
		{gte, "0", reflect.Float64, `"return_date" must be greater than or equal to 0`},
		// String min/max
		{mx, "20", reflect.String, `"return_date" length must be less than or equal to 20 characters`},
		{mx, "1", reflect.String, `"return_date" length must be less than or equal to 1 character`},
		{mn, "20", reflect.String, `"return_date" length must be greater than or equal to 20 characters`},
		// Numeric min/max
		{mx, "50", reflect.Int, `"return_date" must be less than or equal to 50`},
		{mn, "1", reflect.Int, `"return_date" must be greater than or equal to 1`},
		// Slice min/max
		{mx, "5", reflect.Slice, `"return_date" length must be less than or equal to 5 elements`},
		{mn, "1", reflect.Slice, `"return_date" length must be greater than or equal to 1 element`},
		{ne, "", 0, `"return_date" can't be ""`},
		{required, "", 0, `"return_date" is required`},
		{"unknown", "", 0, `"return_date" is invalid`},
	}

	for _, tc := range cases {
		err := &mockFieldError{tag: tc.tag, field: "return_date", param: tc.param, kind: tc.kind}
		assert.Equal(t, tc.msg, formatValidationError(err))
	}
}
