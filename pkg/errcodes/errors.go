package errcodes

import (
	"fmt"
	"net/http"
)

type Error struct {
	HTTPCode int
	Message  string
	Code     string
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.HTTPCode = err.HTTPCode
	te.Message = err.Message
	te.Code = err.Code
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.HTTPCode == err.HTTPCode &&
		te.Message == err.Message &&
		te.Code == err.Code
}

// Unauthorized returns a 401 error with the given message.
func Unauthorized(msg string) error {
	return &Error{
		http.StatusUnauthorized,
		msg,
		"unauthorized",
	}
}

// Forbidden returns a 403 error with a message indicating the action is
// forbidden.
func Forbidden(action string) error {
	return &Error{
		http.StatusForbidden,
		action + " is not allowed.",
		"forbidden",
	}
}

// NotFound returns a 404 error with a message indicating the given resource.
func NotFound(resource string) error {
	return &Error{
		http.StatusNotFound,
		resource + " not found.",
		"not_found",
	}
}

func UnsupportedMediaType() error {
	return &Error{
		http.StatusUnsupportedMediaType,
		"Unsupported Media Type",
		"unsupported_media_type",
	}
}

func UnknownParameter(param string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		fmt.Sprintf("Unknown Parameter %q", param),
		"unknown_parameter",
	}
}

func ValidationTypeError(msg string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		msg,
		"validation_type_error",
	}
}

func ValidationError(msg string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		msg,
		"validation_error",
	}
}

func MalformedPayload() error {
	return &Error{
		http.StatusBadRequest,
		"Malformed Payload",
		"malformed_payload",
	}
}

func EmptyRequestBody() error {
	return &Error{
		http.StatusBadRequest,
		"Request body can't be empty.",
		"empty_request_body",
	}
}

// OutOfStock returns a 409 error for renting a book with no copies on hand.
func OutOfStock() error {
	return &Error{
		http.StatusConflict,
		"No copies of this book are available.",
		"out_of_stock",
	}
}

// FeeLimitExceeded returns a 409 error for users at or over the outstanding
// fee limit.
func FeeLimitExceeded() error {
	return &Error{
		http.StatusConflict,
		"Outstanding fees are at or over the limit; settle fees before renting.",
		"fee_limit_exceeded",
	}
}

// DuplicateActiveRental returns a 409 error when the user already has this
// book out.
func DuplicateActiveRental() error {
	return &Error{
		http.StatusConflict,
		"An open rental for this book already exists.",
		"duplicate_active_rental",
	}
}

// InvalidDate returns a 422 error for a return date outside the allowed
// window.
func InvalidDate(msg string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		msg,
		"invalid_date",
	}
}

// NoActiveRental returns a 409 error when a return has no matching open
// rental.
func NoActiveRental() error {
	return &Error{
		http.StatusConflict,
		"No open rental exists for this user and book.",
		"no_active_rental",
	}
}

// CannotRemove returns a 409 error for catalog removals that would strand
// copies or open rentals.
func CannotRemove(msg string) error {
	return &Error{
		http.StatusConflict,
		msg,
		"cannot_remove",
	}
}
