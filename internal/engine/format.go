package engine

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// MoneyFormatter picks a dollar unit from the largest value on an axis and
// returns a formatter using it: $1.2B, $3.4M, $5.6K or $12.
func MoneyFormatter(maxValue float64) func(float64) string {
	switch {
	case maxValue >= 1e9:
		return func(v float64) string { return fmt.Sprintf("$%.1fB", v/1e9) }
	case maxValue >= 1e6:
		return func(v float64) string { return fmt.Sprintf("$%.1fM", v/1e6) }
	case maxValue >= 1e3:
		return func(v float64) string { return fmt.Sprintf("$%.1fK", v/1e3) }
	default:
		return func(v float64) string { return fmt.Sprintf("$%.0f", v) }
	}
}

// Comma formats a dollar amount with thousands separators, rounded to whole
// dollars.
func Comma(v float64) string {
	if v < 0 {
		return "-$" + humanize.Comma(int64(math.Round(-v)))
	}
	return "$" + humanize.Comma(int64(math.Round(v)))
}

// PercentLabel formats a growth percentage. Non-finite values, which come
// from a zero baseline, get a symbol instead of a number.
func PercentLabel(p float64) string {
	switch {
	case math.IsInf(p, 1):
		return "∞%"
	case math.IsInf(p, -1):
		return "-∞%"
	case math.IsNaN(p):
		return "n/a"
	default:
		return fmt.Sprintf("%.1f%%", p)
	}
}
