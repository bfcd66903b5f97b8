package report

import (
	"fmt"
	"math"
	"strings"
)

// FormatINR formats an amount in rupees with Indian digit grouping,
// e.g. 1234567.5 -> "Rs. 12,34,567.50".
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	parts := strings.SplitN(fmt.Sprintf("%.2f", amount), ".", 2)
	return sign + "Rs. " + groupIndian(parts[0]) + "." + parts[1]
}

// groupIndian keeps the last three digits together and groups the rest in
// pairs.
func groupIndian(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	out := s[n-3:]
	rest := s[:n-3]
	for len(rest) > 2 {
		out = rest[len(rest)-2:] + "," + out
		rest = rest[:len(rest)-2]
	}
	if rest != "" {
		out = rest + "," + out
	}
	return out
}

func formatQty(q float64) string {
	if q == math.Trunc(q) {
		return fmt.Sprintf("%.0f", q)
	}
	if q < 10 {
		return fmt.Sprintf("%.3f", q)
	}
	return fmt.Sprintf("%.2f", q)
}
