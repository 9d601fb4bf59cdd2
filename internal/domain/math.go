package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const stellarPrecision = 7

// SafeParse parses a string into a decimal, returning zero for invalid or empty input.
// Balance and amount strings from Horizon degrade to zero rather than erroring;
// downstream display logic always gets a well-formed number.
func SafeParse(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SafeMultiply multiplies two string values, returning zero if either is invalid.
func SafeMultiply(a, b string) decimal.Decimal {
	return SafeParse(a).Mul(SafeParse(b))
}

// SafeSum adds two decimals.
func SafeSum(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b)
}

// FormatAmount rounds to Stellar precision (7 decimal places) and strips
// trailing zeros.
func FormatAmount(d decimal.Decimal) string {
	s := d.Round(stellarPrecision).StringFixed(stellarPrecision)
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
