package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR formats an amount in Indian rupee notation with lakh/crore
// grouping, e.g. 1234567.5 -> "12,34,567.50".
func FormatINR(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	neg := rounded.IsNegative()
	if neg {
		rounded = rounded.Abs()
	}

	s := rounded.StringFixed(2)
	parts := strings.SplitN(s, ".", 2)
	whole, frac := parts[0], parts[1]

	grouped := groupIndian(whole)
	if neg {
		return "-" + grouped + "." + frac
	}
	return grouped + "." + frac
}

// groupIndian inserts commas after the last three digits and then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	// Peel two digits off the right of head until two or fewer remain.
	for len(head) > 2 {
		tail = head[len(head)-2:] + "," + tail
		head = head[:len(head)-2]
	}
	return head + "," + tail
}
