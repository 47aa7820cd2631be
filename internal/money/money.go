// Package money converts between USD strings and integer cents.
//
// Amounts are kept as cents everywhere in the ledger; the float-free decimal
// conversion here is the only place user text becomes a number.
package money

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for text that is not a non-negative USD amount
// with at most two decimal places.
var ErrInvalidAmount = errors.New("invalid amount")

var (
	amountPattern = regexp.MustCompile(`^(\d+)?(\.\d{0,2})?$`)
	stripChars    = strings.NewReplacer("$", "", ",", "")
	maxCents      = decimal.NewFromInt(math.MaxInt64)
	halfDollar    = decimal.New(50, -2)
)

// ParseUSDToCents parses user input such as "12.34", "$1,234.5" or ".50".
// Dollar signs, commas and whitespace are ignored.
func ParseUSDToCents(input string) (int64, error) {
	cleaned := strings.Join(strings.Fields(stripChars.Replace(input)), "")
	if cleaned == "" || cleaned == "." {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
	}
	if !amountPattern.MatchString(cleaned) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
	}

	// decimal wants digits on both sides of the point.
	if strings.HasPrefix(cleaned, ".") {
		cleaned = "0" + cleaned
	}
	cleaned = strings.TrimSuffix(cleaned, ".")

	dollars, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
	}

	cents := dollars.Shift(2).Round(0)
	if cents.IsNegative() || cents.GreaterThan(maxCents) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
	}
	return cents.IntPart(), nil
}

// FormatCentsToUSD renders cents with two decimals and thousands separators,
// e.g. 123456789 -> "$1,234,567.89".
func FormatCentsToUSD(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
	}
	abs := decimal.NewFromInt(cents).Abs()
	whole := abs.Div(decimal.NewFromInt(100)).Floor()
	frac := abs.Sub(whole.Shift(2))
	return fmt.Sprintf("%s$%s.%02d", sign, humanize.BigComma(whole.BigInt()), frac.IntPart())
}

// FormatCentsToWholeDollars rounds to the nearest dollar, halves rounding up,
// e.g. 150 -> "$2", 149 -> "$1", 123456789 -> "$1,234,568".
func FormatCentsToWholeDollars(cents int64) string {
	dollars := decimal.New(cents, -2).Add(halfDollar).Floor().IntPart()
	if dollars < 0 {
		return "-$" + humanize.Comma(-dollars)
	}
	return "$" + humanize.Comma(dollars)
}
