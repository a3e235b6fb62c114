package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmexchange/price_tracker_app/internal/apperrors"
)

// ParseAmount parses an upstream display amount like "4,460.00" into an
// exact decimal. Thousands separators are stripped; anything else that is
// not a valid decimal is rejected.
func ParseAmount(display string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(display, ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: invalid amount %q: %v", apperrors.ErrParse, display, err)
	}
	return d, nil
}

// FormatAmount renders a decimal in the upstream display format: thousands
// separators on the integer part and exactly two fractional digits.
// Example: 4460 -> "4,460.00".
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
