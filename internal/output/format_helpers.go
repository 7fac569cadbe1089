package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatKRW formats a whole-KRW decimal with thousands separators.
// Kept here so it can be reused by multiple formatters and unit tested in
// isolation.
func FormatKRW(amount decimal.Decimal) string {
	s := amount.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + " KRW"
	if neg {
		out = "-" + out
	}
	return out
}

// FormatPercent formats a fractional rate as a percentage with one decimal.
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
