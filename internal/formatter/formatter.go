// Package formatter turns numeric values into display strings.
package formatter

import (
	"fmt"
	"math"
	"math/big"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	thousand = 1_000
	million  = 1_000_000
)

// exact returns the exact value of the binary float x. Rounding it half away from zero
// gives the same digits as the browser's toFixed and Intl currency formatting.
func exact(x float64) decimal.Decimal {
	// A float64 has at most 1074 fractional binary digits, each needing one decimal digit.
	return decimal.RequireFromString(new(big.Float).SetFloat64(x).Text('f', 1074))
}

// FormatCurrency renders x as US dollars with two decimals and thousands grouping, e.g. "$1,234.50".
// The sign follows x, so -0.001 renders as "-$0.00".
func FormatCurrency(x float64) string {
	sign := ""
	if x < 0 {
		sign = "-"
	}
	d := exact(math.Abs(x)).Round(2)
	whole := d.IntPart()
	cents := d.Sub(decimal.NewFromInt(whole)).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, humanize.Comma(whole), cents)
}

// FormatSignedCurrency is FormatCurrency with an explicit "+" for non-negative values.
func FormatSignedCurrency(x float64) string {
	if x >= 0 {
		return "+" + FormatCurrency(x)
	}
	return FormatCurrency(x)
}

// FormatPercent renders p (already scaled to percent) with two decimals and an explicit sign.
func FormatPercent(p float64) string {
	sign := "+"
	if p < 0 {
		sign = "-"
	}
	return sign + exact(math.Abs(p)).StringFixed(2) + "%"
}

// FormatVolume abbreviates share counts: "1.2M", "3.4K", or the plain integer below one thousand.
// Exactly 1,000 and 1,000,000 take the abbreviated branch. The quotient is rounded as the float64
// it is stored as, so 1150 shows "1.1K" (1.15 sits just below the tie) while 1250 shows "1.3K".
func FormatVolume(x int64) string {
	switch {
	case x >= million:
		return exact(float64(x)/million).StringFixed(1) + "M"
	case x >= thousand:
		return exact(float64(x)/thousand).StringFixed(1) + "K"
	default:
		return fmt.Sprintf("%d", x)
	}
}
