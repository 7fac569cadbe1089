package calculation

import (
	"github.com/firesim/firesim/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Income Tax: Korean composite income tax schedule in cumulative-deduction
//    form. Brackets are held fixed for all projection years; no inflation
//    indexing of thresholds.
//
// 2. Capital Gains: flat rate on realized gains above an annual exemption
//    (e.g. the 2,500,000 KRW overseas-equity exemption). See gains.go.
//
// Both tables are configurable through domain.TaxRules.

// TaxBracket is one row of the progressive table. Tax for an income that
// falls in this bracket is income x Rate - Deduction; the cumulative
// deduction folds in the lower brackets' reduced rates.
type TaxBracket struct {
	UpperBound decimal.Decimal // zero means unbounded (top bracket)
	Rate       decimal.Decimal
	Deduction  decimal.Decimal
}

// ProgressiveTaxCalculator computes income tax from an ordered bracket table.
type ProgressiveTaxCalculator struct {
	Brackets []TaxBracket
}

// NewProgressiveTaxCalculator creates a calculator with the default Korean
// composite income tax schedule.
func NewProgressiveTaxCalculator() *ProgressiveTaxCalculator {
	return &ProgressiveTaxCalculator{Brackets: defaultIncomeTaxBrackets()}
}

// NewProgressiveTaxCalculatorWithConfig creates a calculator from a configured
// bracket table, falling back to the default schedule when none is supplied.
func NewProgressiveTaxCalculatorWithConfig(rules domain.TaxRules) *ProgressiveTaxCalculator {
	if len(rules.IncomeTaxBrackets) == 0 {
		return NewProgressiveTaxCalculator()
	}
	brackets := make([]TaxBracket, 0, len(rules.IncomeTaxBrackets))
	for _, b := range rules.IncomeTaxBrackets {
		brackets = append(brackets, TaxBracket{UpperBound: b.UpperBound, Rate: b.Rate, Deduction: b.Deduction})
	}
	return &ProgressiveTaxCalculator{Brackets: brackets}
}

func defaultIncomeTaxBrackets() []TaxBracket {
	return []TaxBracket{
		{decimal.NewFromInt(12_000_000), decimal.NewFromFloat(0.06), decimal.Zero},
		{decimal.NewFromInt(46_000_000), decimal.NewFromFloat(0.15), decimal.NewFromInt(1_080_000)},
		{decimal.NewFromInt(88_000_000), decimal.NewFromFloat(0.24), decimal.NewFromInt(5_220_000)},
		{decimal.NewFromInt(150_000_000), decimal.NewFromFloat(0.35), decimal.NewFromInt(14_900_000)},
		{decimal.NewFromInt(300_000_000), decimal.NewFromFloat(0.38), decimal.NewFromInt(19_400_000)},
		{decimal.NewFromInt(500_000_000), decimal.NewFromFloat(0.40), decimal.NewFromInt(25_400_000)},
		{decimal.NewFromInt(1_000_000_000), decimal.NewFromFloat(0.42), decimal.NewFromInt(35_400_000)},
		{decimal.Zero, decimal.NewFromFloat(0.45), decimal.NewFromInt(65_400_000)}, // unbounded
	}
}

// CalculateTax computes income tax for a non-negative gross income, rounded to
// whole KRW and clamped at zero. The bracket whose upper bound first covers
// the income supplies the marginal rate and cumulative deduction.
func (ptc *ProgressiveTaxCalculator) CalculateTax(income decimal.Decimal) decimal.Decimal {
	for _, bracket := range ptc.Brackets {
		if !bracket.UpperBound.IsZero() && income.GreaterThan(bracket.UpperBound) {
			continue
		}
		tax := income.Mul(bracket.Rate).Sub(bracket.Deduction).Round(0)
		if tax.LessThan(decimal.Zero) {
			return decimal.Zero
		}
		return tax
	}
	return decimal.Zero
}
