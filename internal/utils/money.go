package utils

import (
	"fmt"
	"math"
	"strings"
)

// Round2 rounds a monetary value to 2 decimal places. Engines accumulate
// at full precision and round only at the response boundary.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds a percentage to 1 decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// FormatINR formats an amount as rupees with 3-digit thousands grouping
// and no decimals, e.g. 120000 -> "₹120,000".
func FormatINR(v float64) string {
	n := int64(math.Round(math.Abs(v)))
	s := fmt.Sprintf("%d", n)
	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)
	out := "₹" + strings.Join(groups, ",")
	if v < 0 && n != 0 {
		out = "-" + out
	}
	return out
}
