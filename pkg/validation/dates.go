package validation

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates. No time component.
const DateLayout = "02-01-2006"

// ParseDate validates value with Date and converts it to a time.Time at
// midnight UTC. Calendar-invalid days roll forward (30-02-2024 becomes
// 01-03-2024) so day arithmetic stays well defined.
func ParseDate(field, value string) (time.Time, error) {
	value, err := Date(field, value)
	if err != nil {
		return time.Time{}, err
	}
	parts := strings.SplitN(value, "-", 3)
	day, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// FormatDate renders t in the dd-mm-yyyy wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Midnight truncates t to a calendar date at midnight UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from 'from' to 'to'. Negative
// when to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(Midnight(to).Sub(Midnight(from)).Hours() / 24)
}
