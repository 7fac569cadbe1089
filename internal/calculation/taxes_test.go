package calculation

import (
	"testing"

	"github.com/firesim/firesim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProgressiveTaxKnownValues checks the default Korean schedule against
// hand-computed amounts.
func TestProgressiveTaxKnownValues(t *testing.T) {
	calc := NewProgressiveTaxCalculator()

	tests := []struct {
		name        string
		income      decimal.Decimal
		expectedTax decimal.Decimal
	}{
		{
			name:        "zero income",
			income:      decimal.Zero,
			expectedTax: decimal.Zero,
		},
		{
			name:        "first bracket",
			income:      decimal.NewFromInt(10_000_000),
			expectedTax: decimal.NewFromInt(600_000), // 10M x 6%
		},
		{
			name:        "first bracket upper bound",
			income:      decimal.NewFromInt(12_000_000),
			expectedTax: decimal.NewFromInt(720_000),
		},
		{
			name:        "second bracket upper bound",
			income:      decimal.NewFromInt(46_000_000),
			expectedTax: decimal.NewFromInt(5_820_000), // 46M x 15% - 1.08M
		},
		{
			name:        "fourth bracket",
			income:      decimal.NewFromInt(100_000_000),
			expectedTax: decimal.NewFromInt(20_100_000), // 100M x 35% - 14.9M
		},
		{
			name:        "fifth bracket upper bound",
			income:      decimal.NewFromInt(300_000_000),
			expectedTax: decimal.NewFromInt(94_600_000), // 300M x 38% - 19.4M
		},
		{
			name:        "top bracket",
			income:      decimal.NewFromInt(2_000_000_000),
			expectedTax: decimal.NewFromInt(834_600_000), // 2B x 45% - 65.4M
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax := calc.CalculateTax(tt.income)
			assert.True(t, tt.expectedTax.Equal(tax),
				"income %s: expected %s, got %s", tt.income, tt.expectedTax, tax)
		})
	}
}

// TestProgressiveTaxNeverNegative covers tiny incomes where rate x income
// rounds to zero.
func TestProgressiveTaxNeverNegative(t *testing.T) {
	calc := NewProgressiveTaxCalculator()

	for _, income := range []int64{0, 1, 7, 100, 999_999} {
		tax := calc.CalculateTax(decimal.NewFromInt(income))
		assert.True(t, tax.GreaterThanOrEqual(decimal.Zero), "income %d produced negative tax %s", income, tax)
	}
}

// TestProgressiveTaxMonotonic verifies tax is non-decreasing in income.
func TestProgressiveTaxMonotonic(t *testing.T) {
	calc := NewProgressiveTaxCalculator()

	prev := decimal.Zero
	step := decimal.NewFromInt(5_000_000)
	income := decimal.Zero
	for i := 0; i < 250; i++ {
		income = income.Add(step)
		tax := calc.CalculateTax(income)
		assert.True(t, tax.GreaterThanOrEqual(prev),
			"tax decreased at income %s: %s < %s", income, tax, prev)
		prev = tax
	}
}

// TestProgressiveTaxBracketContinuity checks that crossing a bracket boundary
// never jumps by more than rounding allows.
func TestProgressiveTaxBracketContinuity(t *testing.T) {
	calc := NewProgressiveTaxCalculator()
	one := decimal.NewFromInt(1)

	for i, bracket := range calc.Brackets {
		if bracket.UpperBound.IsZero() {
			continue // top bracket has no boundary to cross
		}
		atBound := calc.CalculateTax(bracket.UpperBound)
		above := calc.CalculateTax(bracket.UpperBound.Add(one))
		diff := above.Sub(atBound).Abs()
		assert.True(t, diff.LessThanOrEqual(one),
			"bracket %d: discontinuity of %s at %s", i, diff, bracket.UpperBound)
	}
}

func TestProgressiveTaxCustomBrackets(t *testing.T) {
	rules := domain.TaxRules{
		IncomeTaxBrackets: []domain.TaxBracketConfig{
			{UpperBound: decimal.NewFromInt(1000), Rate: decimal.NewFromFloat(0.10), Deduction: decimal.Zero},
			{UpperBound: decimal.Zero, Rate: decimal.NewFromFloat(0.20), Deduction: decimal.NewFromInt(100)},
		},
	}
	calc := NewProgressiveTaxCalculatorWithConfig(rules)
	require.Len(t, calc.Brackets, 2)

	assert.True(t, decimal.NewFromInt(50).Equal(calc.CalculateTax(decimal.NewFromInt(500))))
	assert.True(t, decimal.NewFromInt(300).Equal(calc.CalculateTax(decimal.NewFromInt(2000))))
}

func TestProgressiveTaxConfigFallback(t *testing.T) {
	calc := NewProgressiveTaxCalculatorWithConfig(domain.TaxRules{})
	assert.Len(t, calc.Brackets, 8, "empty config should select the default schedule")
}
