// Package dateconv converts between the upstream wire date format
// ("DD/MM/YYYY"), the storage format (ISO "YYYY-MM-DD") and time.Time.
package dateconv

import (
	"fmt"
	"time"

	"github.com/mmexchange/price_tracker_app/internal/apperrors"
)

const (
	displayLayout = "02/01/2006" // upstream wire format
	isoLayout     = "2006-01-02" // storage format
)

// ToStorageDate parses an upstream "DD/MM/YYYY" date into a time.Time.
// Non-numeric segments and out-of-range day/month values are rejected.
func ToStorageDate(display string) (time.Time, error) {
	t, err := time.Parse(displayLayout, display)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid display date %q: %v", apperrors.ErrParse, display, err)
	}
	return t, nil
}

// ParseISODate parses a storage-format "YYYY-MM-DD" date.
func ParseISODate(iso string) (time.Time, error) {
	t, err := time.Parse(isoLayout, iso)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid ISO date %q: %v", apperrors.ErrParse, iso, err)
	}
	return t, nil
}

// ToDisplayDate renders a date in the upstream "DD/MM/YYYY" format.
func ToDisplayDate(t time.Time) string {
	return t.Format(displayLayout)
}

// ToISODate renders a date in the storage "YYYY-MM-DD" format.
func ToISODate(t time.Time) string {
	return t.Format(isoLayout)
}

// FormatDisplayDate converts a storage-format "YYYY-MM-DD" string to "DD/MM/YYYY".
func FormatDisplayDate(iso string) (string, error) {
	t, err := ParseISODate(iso)
	if err != nil {
		return "", err
	}
	return ToDisplayDate(t), nil
}

// PreviousCalendarDay returns the ISO date of the day before the given
// "DD/MM/YYYY" date. Calendar arithmetic, rolls month and year boundaries.
func PreviousCalendarDay(display string) (string, error) {
	t, err := ToStorageDate(display)
	if err != nil {
		return "", err
	}
	return ToISODate(t.AddDate(0, 0, -1)), nil
}

// CurrentISODate returns today's date in storage format (UTC).
func CurrentISODate() string {
	return ToISODate(time.Now().UTC())
}
