package calculation

import (
	"github.com/shopspring/decimal"
)

// InflationIndexer advances nominal amounts year over year by a fixed growth
// rate, rounding to whole KRW.
type InflationIndexer struct {
	factor decimal.Decimal // 1 + rate
}

// NewInflationIndexer creates an indexer for the given annual rate.
func NewInflationIndexer(rate decimal.Decimal) *InflationIndexer {
	return &InflationIndexer{factor: decimal.NewFromInt(1).Add(rate)}
}

// Next returns the following year's nominal amount.
func (ix *InflationIndexer) Next(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(ix.factor).Round(0)
}

// NextIf indexes the amount while the stream is still active and holds it at
// zero once the stream has ended. The explicit flag keeps each stream's
// lifetime independent of the others.
func (ix *InflationIndexer) NextIf(amount decimal.Decimal, active bool) decimal.Decimal {
	if !active {
		return decimal.Zero
	}
	return ix.Next(amount)
}
