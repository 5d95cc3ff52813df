package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// letterMultipliers are the documented NOAA scale letters. Lookup is
// case-sensitive per code; both cases are listed explicitly.
var letterMultipliers = map[string]decimal.Decimal{
	"K": decimal.New(1, 3),
	"k": decimal.New(1, 3),
	"M": decimal.New(1, 6),
	"m": decimal.New(1, 6),
	"B": decimal.New(1, 9),
	"b": decimal.New(1, 9),
}

// Multiplier resolves a damage exponent code to its scale factor.
// Resolution order: numeric token → 10^N, empty → 1, K/M/B letters →
// 1e3/1e6/1e9, anything else → 0. The boolean is false only for the final
// zero fallback, so callers can surface a data-quality warning.
func Multiplier(code string) (decimal.Decimal, bool) {
	// ParseFloat also admits "inf"/"nan" spellings; those fall through to the
	// unrecognized branch instead.
	if n, err := strconv.ParseFloat(code, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		if n == math.Trunc(n) && n >= -1000 && n <= 1000 {
			return decimal.New(1, int32(n)), true
		}
		p := math.Pow(10, n)
		if math.IsInf(p, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(p), true
	}
	if code == "" {
		return decimal.New(1, 0), true
	}
	if m, ok := letterMultipliers[code]; ok {
		return m, true
	}
	return decimal.Zero, false
}

// DamageAmount converts a raw (magnitude, exponent code) pair into dollars.
// The boolean is false when the code was unrecognized and the amount zeroed.
func DamageAmount(magnitude, code string) (decimal.Decimal, bool) {
	mult, ok := Multiplier(code)
	return parseDecimalOrZero(magnitude).Mul(mult), ok
}

// parseDecimalOrZero parses a decimal string, returning zero on failure.
func parseDecimalOrZero(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
