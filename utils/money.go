package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCOP formats an amount in COP as a string like "$12.500".
// Uses dot as thousands separator (common in Colombia); cents are rounded away.
func FormatCOP(amount decimal.Decimal) string {
	amount = amount.Round(0)
	neg := amount.IsNegative()
	s := amount.Abs().String()

	if len(s) <= 3 {
		if neg {
			return "-$" + s
		}
		return "$" + s
	}

	var b strings.Builder
	// Pre-allocate: digits + separators + $
	b.Grow(len(s) + len(s)/3 + 2)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}

	return b.String()
}

// SumPrices adds up product prices
func SumPrices(prices []decimal.Decimal) decimal.Decimal {
	if len(prices) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(prices[0], prices[1:]...)
}
