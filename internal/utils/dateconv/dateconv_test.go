package dateconv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mmexchange/price_tracker_app/internal/apperrors"
)

func TestToStorageDate(t *testing.T) {
	d, err := ToStorageDate("21/01/2024")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC), d)

	// Malformed inputs must surface ErrParse
	for _, bad := range []string{"2024-01-21", "32/01/2024", "01/13/2024", "aa/bb/cccc", ""} {
		_, err := ToStorageDate(bad)
		assert.ErrorIs(t, err, apperrors.ErrParse, "input %q should fail", bad)
	}
}

func TestDisplayRoundTrip(t *testing.T) {
	// toStorageDate(toDisplayDate(d)) == d for valid dates
	dates := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), // leap day
		time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		back, err := ToStorageDate(ToDisplayDate(d))
		assert.NoError(t, err)
		assert.Equal(t, d, back)
	}
}

func TestFormatDisplayDate(t *testing.T) {
	got, err := FormatDisplayDate("2024-01-21")
	assert.NoError(t, err)
	assert.Equal(t, "21/01/2024", got)

	_, err = FormatDisplayDate("21/01/2024")
	assert.ErrorIs(t, err, apperrors.ErrParse)
}

func TestPreviousCalendarDay(t *testing.T) {
	cases := map[string]string{
		"21/01/2024": "2024-01-20",
		"01/01/2024": "2023-12-31", // year boundary
		"01/03/2024": "2024-02-29", // leap February
		"01/03/2023": "2023-02-28",
		"01/05/2024": "2024-04-30", // month boundary
	}
	for in, want := range cases {
		got, err := PreviousCalendarDay(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got, "previous day of %s", in)
	}

	_, err := PreviousCalendarDay("not-a-date")
	assert.ErrorIs(t, err, apperrors.ErrParse)
}
