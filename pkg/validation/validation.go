// Package validation holds the pure field validators shared by the catalog,
// account, and ledger records. Every validator takes the field label and the
// raw value, and returns the normalized value or an *Error naming the field
// and the first rule it broke. Validators have no side effects and are safe
// to call from anywhere.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Field length caps. Usernames and passwords are capped tighter than general
// catalog strings, and descriptions looser.
const (
	MaxStringLen      = 100
	MaxCredentialLen  = 50
	MaxDescriptionLen = 500
)

// Publication year bounds.
const (
	MinYear = 1800
	MaxYear = 2100
)

var (
	usernameRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	authorRE   = regexp.MustCompile(`^[A-Za-z]+ [A-Za-z]+$`)
	isbnRE     = regexp.MustCompile(`^\d{3}-\d-\d{2}-\d{6}-\d$`)
	dateRE     = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)
	alphaRE    = regexp.MustCompile(`^[A-Za-z]$`)
)

// Error is a single-field validation failure.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func newError(field, format string, args ...interface{}) *Error {
	return &Error{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// BoundedString checks that value is non-empty and at most max characters
// after trimming surrounding whitespace.
func BoundedString(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", newError(field, "must not be empty")
	}
	if len(value) > max {
		return "", newError(field, "must be at most %d characters", max)
	}
	return value, nil
}

// TitledString is BoundedString plus the catalog rule that the first and last
// characters are alphabetic. Used for titles, authors, genres, publishers,
// and descriptions.
func TitledString(field, value string, max int) (string, error) {
	value, err := BoundedString(field, value, max)
	if err != nil {
		return "", err
	}
	if !alphaRE.MatchString(value[:1]) || !alphaRE.MatchString(value[len(value)-1:]) {
		return "", newError(field, "must start and end with a letter")
	}
	return value, nil
}

// Username checks the account-name shape: 1-50 characters from the set
// [A-Za-z0-9_-].
func Username(value string) (string, error) {
	value, err := BoundedString("username", value, MaxCredentialLen)
	if err != nil {
		return "", err
	}
	if !usernameRE.MatchString(value) {
		return "", newError("username", "may only contain letters, digits, '-' and '_'")
	}
	return value, nil
}

// AuthorName requires exactly two alphabetic tokens separated by one space,
// i.e. "FirstName LastName".
func AuthorName(value string) (string, error) {
	value, err := TitledString("author", value, MaxStringLen)
	if err != nil {
		return "", err
	}
	if !authorRE.MatchString(value) {
		return "", newError("author", "must be a first and last name separated by one space")
	}
	return value, nil
}

// Edition requires a positive edition number.
func Edition(value int) (int, error) {
	if value < 1 {
		return 0, newError("edition", "must be at least 1")
	}
	return value, nil
}

// Quantity requires a non-negative copy count.
func Quantity(value int) (int, error) {
	if value < 0 {
		return 0, newError("quantity", "must not be negative")
	}
	return value, nil
}

// Price requires a strictly positive amount.
func Price(field string, value float64) (float64, error) {
	if value <= 0 {
		return 0, newError(field, "must be greater than 0")
	}
	return value, nil
}

// Fee requires a non-negative amount.
func Fee(field string, value float64) (float64, error) {
	if value < 0 {
		return 0, newError(field, "must not be negative")
	}
	return value, nil
}

// Date checks the dd-mm-yyyy shape with day 1-31, month 1-12, and year
// 1800-2100. There is deliberately no calendar-correctness check: 30-02-2024
// passes, matching the records already in circulation. Date arithmetic
// normalizes such values (see ParseDate).
func Date(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	m := dateRE.FindStringSubmatch(value)
	if m == nil {
		return "", newError(field, "must be in the format dd-mm-yyyy")
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if day < 1 || day > 31 {
		return "", newError(field, "day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return "", newError(field, "month must be between 1 and 12")
	}
	if year < MinYear || year > MaxYear {
		return "", newError(field, "year must be between %d and %d", MinYear, MaxYear)
	}
	return value, nil
}

// ISBN checks the five dash-separated digit groups of lengths 3-1-2-6-1,
// e.g. "123-4-56-789123-0".
func ISBN(value string) (string, error) {
	value = strings.TrimSpace(value)
	if !isbnRE.MatchString(value) {
		return "", newError("isbn", "must be five digit groups of lengths 3-1-2-6-1 separated by dashes")
	}
	return value, nil
}

// TransactionType checks membership in the ledger's literal type set.
func TransactionType(value string) (string, error) {
	switch value {
	case "Rental", "Return", "Early Return", "Late Return":
		return value, nil
	}
	return "", newError("type", "must be one of Rental, Return, Early Return, Late Return")
}
