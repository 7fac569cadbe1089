package calculation

import (
	"github.com/firesim/firesim/internal/domain"
	"github.com/shopspring/decimal"
)

// CostBasisLedger tracks the portfolio's aggregate untaxed principal at the
// average-cost level. The basis rises with net contributions and falls with
// the principal portion of each withdrawal; it never goes negative.
type CostBasisLedger struct {
	basis decimal.Decimal
}

// NewCostBasisLedger creates a ledger seeded with the starting principal.
func NewCostBasisLedger(initial decimal.Decimal) *CostBasisLedger {
	return &CostBasisLedger{basis: initial}
}

// Basis returns the current aggregate cost basis.
func (l *CostBasisLedger) Basis() decimal.Decimal { return l.basis }

// Contribute records new principal added to the portfolio at cost.
func (l *CostBasisLedger) Contribute(amount decimal.Decimal) {
	l.basis = l.basis.Add(amount)
}

// Reduce removes liquidated principal from the ledger, clamping at zero.
func (l *CostBasisLedger) Reduce(amount decimal.Decimal) {
	l.basis = l.basis.Sub(amount)
	if l.basis.LessThan(decimal.Zero) {
		l.basis = decimal.Zero
	}
}

// CapitalGainsTaxCalculator apportions withdrawals into principal and realized
// gain under the average-cost model and taxes the gain above an exemption.
type CapitalGainsTaxCalculator struct {
	Rate      decimal.Decimal
	Exemption decimal.Decimal
}

// NewCapitalGainsTaxCalculator creates a calculator with the Korean
// overseas-equity defaults (22% rate, 2.5M KRW annual exemption).
func NewCapitalGainsTaxCalculator() *CapitalGainsTaxCalculator {
	return &CapitalGainsTaxCalculator{
		Rate:      decimal.NewFromFloat(0.22),
		Exemption: decimal.NewFromInt(2_500_000),
	}
}

// NewCapitalGainsTaxCalculatorWithConfig creates a calculator from configured
// tax rules.
func NewCapitalGainsTaxCalculatorWithConfig(rules domain.TaxRules) *CapitalGainsTaxCalculator {
	return &CapitalGainsTaxCalculator{
		Rate:      rules.CapitalGainsRate,
		Exemption: rules.CapitalGainsExemption,
	}
}

// TaxOnSale computes the capital gains tax for a withdrawal and reduces the
// ledger by the principal portion sold.
//
// Every withdrawal realizes gain and principal in the same ratio as the
// portfolio's aggregate unrealized-gain fraction at the moment of sale; there
// is no lot selection. When the portfolio holds no unrealized gain the entire
// withdrawal is principal and no tax is due.
func (cg *CapitalGainsTaxCalculator) TaxOnSale(withdrawal, balanceAfterWithdrawal decimal.Decimal, ledger *CostBasisLedger) decimal.Decimal {
	balanceBefore := balanceAfterWithdrawal.Add(withdrawal)
	unrealizedGain := balanceBefore.Sub(ledger.Basis())

	if unrealizedGain.LessThanOrEqual(decimal.Zero) {
		ledger.Reduce(withdrawal)
		return decimal.Zero
	}

	sellRatio := withdrawal.Div(balanceBefore)
	realizedGain := unrealizedGain.Mul(sellRatio)

	taxableGain := realizedGain.Sub(cg.Exemption)
	if taxableGain.LessThan(decimal.Zero) {
		taxableGain = decimal.Zero
	}
	tax := taxableGain.Mul(cg.Rate).Round(0)

	principalSold := withdrawal.Sub(realizedGain)
	if principalSold.LessThan(decimal.Zero) {
		principalSold = decimal.Zero
	}
	ledger.Reduce(principalSold)

	return tax
}
