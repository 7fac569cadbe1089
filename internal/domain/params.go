package domain

import (
	"github.com/shopspring/decimal"
)

// Withdrawal policy identifiers accepted in configuration files.
const (
	// WithdrawalPercentOfBalance liquidates a fixed fraction of the current
	// balance each year.
	WithdrawalPercentOfBalance = "percent_of_balance"

	// WithdrawalIndexedExpenses liquidates exactly the inflation-indexed
	// living expenses for the year.
	WithdrawalIndexedExpenses = "indexed_expenses"

	// WithdrawalFixedAmount liquidates a constant nominal amount each year.
	WithdrawalFixedAmount = "fixed_amount"
)

// SimulationParameters holds everything needed to run one projection: the
// age window, the income streams with their cutoff ages, the market
// assumptions, the withdrawal policy, and the tax schedules. All monetary
// amounts are annual, in KRW, and expressed as of the starting year.
type SimulationParameters struct {
	CurrentAge   int `yaml:"current_age" json:"currentAge"`
	EndOfLifeAge int `yaml:"end_of_life_age" json:"endOfLifeAge"`

	CurrentSavings decimal.Decimal `yaml:"current_savings" json:"currentSavings"`

	// Income streams. Each stream pays out while age < its end age, so the
	// end age itself is the first year without that income.
	AnnualSalary      decimal.Decimal `yaml:"annual_salary" json:"annualSalary"`
	SalaryEndAge      int             `yaml:"salary_end_age" json:"salaryEndAge"`
	OtherIncome       decimal.Decimal `yaml:"other_income" json:"otherIncome"`
	OtherIncomeEndAge int             `yaml:"other_income_end_age" json:"otherIncomeEndAge"`

	AnnualExpenses decimal.Decimal `yaml:"annual_expenses" json:"annualExpenses"`

	// Market assumptions as fractions, e.g. 0.06 for six percent.
	ExpectedReturn decimal.Decimal `yaml:"expected_return" json:"expectedReturn"`
	InflationRate  decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`

	WithdrawalPolicy string          `yaml:"withdrawal_policy" json:"withdrawalPolicy"`
	WithdrawalRate   decimal.Decimal `yaml:"withdrawal_rate" json:"withdrawalRate"`
	WithdrawalTarget decimal.Decimal `yaml:"withdrawal_target" json:"withdrawalTarget"`

	TaxRules TaxRules `yaml:"tax_rules" json:"taxRules"`
}

// TaxRules bundles the configurable tax schedules. An empty bracket table
// selects the built-in Korean earned income schedule.
type TaxRules struct {
	IncomeTaxBrackets     []TaxBracketConfig `yaml:"income_tax_brackets" json:"incomeTaxBrackets,omitempty"`
	CapitalGainsRate      decimal.Decimal    `yaml:"capital_gains_rate" json:"capitalGainsRate"`
	CapitalGainsExemption decimal.Decimal    `yaml:"capital_gains_exemption" json:"capitalGainsExemption"`
}

// TaxBracketConfig is one row of a progressive income tax table in the
// cumulative-deduction form: tax = income * rate - deduction. A zero
// UpperBound marks the unbounded top bracket.
type TaxBracketConfig struct {
	UpperBound decimal.Decimal `yaml:"upper_bound" json:"upperBound"`
	Rate       decimal.Decimal `yaml:"rate" json:"rate"`
	Deduction  decimal.Decimal `yaml:"deduction" json:"deduction"`
}

// fiMultiple is the classic 25x rule of thumb, the inverse of a 4 percent
// safe withdrawal rate.
var fiMultiple = decimal.NewFromInt(25)

// FITarget returns the financial independence threshold: 25 times the
// first-year annual expenses.
func (p *SimulationParameters) FITarget() decimal.Decimal {
	return p.AnnualExpenses.Mul(fiMultiple)
}

// ProjectionYears returns the number of simulated years, both endpoint ages
// included.
func (p *SimulationParameters) ProjectionYears() int {
	return p.EndOfLifeAge - p.CurrentAge + 1
}
