package calculation

import (
	"fmt"

	"github.com/firesim/firesim/internal/domain"
	"github.com/shopspring/decimal"
)

// WithdrawalPolicy selects how much to liquidate in a post-income year.
// Implementations are stateless with respect to the loop: everything a policy
// needs for the year is passed in.
type WithdrawalPolicy interface {
	// CalculateWithdrawal returns the gross amount to sell this year, given the
	// post-growth balance and the year's inflation-indexed expense stream.
	CalculateWithdrawal(balance decimal.Decimal, indexedExpenses decimal.Decimal) decimal.Decimal
	PolicyName() string
}

// PercentOfBalanceWithdrawal sells a fixed fraction of the then-current
// balance, recomputed fresh each year. It shrinks in nominal terms as the
// balance shrinks and is never inflation-indexed.
type PercentOfBalanceWithdrawal struct {
	Rate decimal.Decimal
}

// NewPercentOfBalanceWithdrawal creates the percentage-of-balance policy.
func NewPercentOfBalanceWithdrawal(rate decimal.Decimal) *PercentOfBalanceWithdrawal {
	return &PercentOfBalanceWithdrawal{Rate: rate}
}

func (p *PercentOfBalanceWithdrawal) CalculateWithdrawal(balance, _ decimal.Decimal) decimal.Decimal {
	return balance.Mul(p.Rate).Round(0)
}

func (p *PercentOfBalanceWithdrawal) PolicyName() string { return domain.WithdrawalPercentOfBalance }

// IndexedExpensesWithdrawal sells the year's inflation-indexed expense amount:
// the pre-retirement spending stream carried forward.
type IndexedExpensesWithdrawal struct{}

// NewIndexedExpensesWithdrawal creates the indexed-expenses policy.
func NewIndexedExpensesWithdrawal() *IndexedExpensesWithdrawal {
	return &IndexedExpensesWithdrawal{}
}

func (p *IndexedExpensesWithdrawal) CalculateWithdrawal(_, indexedExpenses decimal.Decimal) decimal.Decimal {
	return indexedExpenses
}

func (p *IndexedExpensesWithdrawal) PolicyName() string { return domain.WithdrawalIndexedExpenses }

// FixedAmountWithdrawal sells a constant nominal amount every year with no
// further indexing.
type FixedAmountWithdrawal struct {
	Amount decimal.Decimal
}

// NewFixedAmountWithdrawal creates the fixed nominal target policy.
func NewFixedAmountWithdrawal(amount decimal.Decimal) *FixedAmountWithdrawal {
	return &FixedAmountWithdrawal{Amount: amount}
}

func (p *FixedAmountWithdrawal) CalculateWithdrawal(_, _ decimal.Decimal) decimal.Decimal {
	return p.Amount
}

func (p *FixedAmountWithdrawal) PolicyName() string { return domain.WithdrawalFixedAmount }

// NewWithdrawalPolicy builds the policy selected by the simulation parameters.
// An empty policy name defaults to percentage-of-balance.
func NewWithdrawalPolicy(params *domain.SimulationParameters) (WithdrawalPolicy, error) {
	switch params.WithdrawalPolicy {
	case "", domain.WithdrawalPercentOfBalance:
		return NewPercentOfBalanceWithdrawal(params.WithdrawalRate), nil
	case domain.WithdrawalIndexedExpenses:
		return NewIndexedExpensesWithdrawal(), nil
	case domain.WithdrawalFixedAmount:
		return NewFixedAmountWithdrawal(params.WithdrawalTarget), nil
	default:
		return nil, fmt.Errorf("unknown withdrawal policy %q", params.WithdrawalPolicy)
	}
}
