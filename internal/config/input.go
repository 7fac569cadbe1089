package config

import (
	"fmt"
	"os"

	"github.com/firesim/firesim/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of simulation parameter files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads simulation parameters from a YAML file and validates them.
func (ip *InputParser) LoadFromFile(filename string) (*domain.SimulationParameters, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	params := DefaultParameters()
	if err := yaml.Unmarshal(data, params); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateParameters(params); err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}

	return params, nil
}

// DefaultParameters returns the built-in baseline scenario: a 30-year-old
// saver retiring at 45 with the Korean tax defaults.
func DefaultParameters() *domain.SimulationParameters {
	return &domain.SimulationParameters{
		CurrentAge:        30,
		EndOfLifeAge:      90,
		CurrentSavings:    decimal.NewFromInt(500_000_000),
		AnnualSalary:      decimal.NewFromInt(100_000_000),
		SalaryEndAge:      45,
		OtherIncome:       decimal.Zero,
		OtherIncomeEndAge: 70,
		AnnualExpenses:    decimal.NewFromInt(70_000_000),
		ExpectedReturn:    decimal.NewFromFloat(0.06),
		InflationRate:     decimal.NewFromFloat(0.02),
		WithdrawalPolicy:  domain.WithdrawalPercentOfBalance,
		WithdrawalRate:    decimal.NewFromFloat(0.04),
		TaxRules: domain.TaxRules{
			CapitalGainsRate:      decimal.NewFromFloat(0.22),
			CapitalGainsExemption: decimal.NewFromInt(2_500_000),
		},
	}
}

// ValidateParameters validates a loaded parameter set.
func (ip *InputParser) ValidateParameters(params *domain.SimulationParameters) error {
	if params.CurrentAge < 18 || params.CurrentAge > 110 {
		return fmt.Errorf("current_age must be between 18 and 110, got %d", params.CurrentAge)
	}
	if params.EndOfLifeAge < params.CurrentAge {
		return fmt.Errorf("end_of_life_age (%d) cannot be before current_age (%d)", params.EndOfLifeAge, params.CurrentAge)
	}
	if params.EndOfLifeAge > 110 {
		return fmt.Errorf("end_of_life_age must be at most 110, got %d", params.EndOfLifeAge)
	}

	if err := validateAgeRange("salary_end_age", params.SalaryEndAge, params); err != nil {
		return err
	}
	if err := validateAgeRange("other_income_end_age", params.OtherIncomeEndAge, params); err != nil {
		return err
	}

	for name, amount := range map[string]decimal.Decimal{
		"current_savings":   params.CurrentSavings,
		"annual_salary":     params.AnnualSalary,
		"other_income":      params.OtherIncome,
		"annual_expenses":   params.AnnualExpenses,
		"withdrawal_target": params.WithdrawalTarget,
	} {
		if amount.LessThan(decimal.Zero) {
			return fmt.Errorf("%s must be non-negative, got %s", name, amount)
		}
	}

	for name, rate := range map[string]decimal.Decimal{
		"expected_return":    params.ExpectedReturn,
		"inflation_rate":     params.InflationRate,
		"withdrawal_rate":    params.WithdrawalRate,
		"capital_gains_rate": params.TaxRules.CapitalGainsRate,
	} {
		if rate.LessThan(decimal.Zero) || rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s must be a fraction between 0 and 1, got %s", name, rate)
		}
	}
	if params.TaxRules.CapitalGainsExemption.LessThan(decimal.Zero) {
		return fmt.Errorf("capital_gains_exemption must be non-negative, got %s", params.TaxRules.CapitalGainsExemption)
	}

	switch params.WithdrawalPolicy {
	case "", domain.WithdrawalPercentOfBalance, domain.WithdrawalIndexedExpenses, domain.WithdrawalFixedAmount:
	default:
		return fmt.Errorf("unknown withdrawal_policy %q", params.WithdrawalPolicy)
	}

	if err := validateBrackets(params.TaxRules.IncomeTaxBrackets); err != nil {
		return err
	}

	return nil
}

func validateAgeRange(name string, age int, params *domain.SimulationParameters) error {
	if age < params.CurrentAge || age > params.EndOfLifeAge {
		return fmt.Errorf("%s (%d) must lie within [%d, %d]", name, age, params.CurrentAge, params.EndOfLifeAge)
	}
	return nil
}

// validateBrackets checks that a custom income tax table is ordered and spans
// zero to infinity with no gaps. An empty table selects the built-in schedule.
func validateBrackets(brackets []domain.TaxBracketConfig) error {
	for i, b := range brackets {
		if b.Rate.LessThan(decimal.Zero) || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("income_tax_brackets[%d]: rate must be a fraction between 0 and 1, got %s", i, b.Rate)
		}
		if b.Deduction.LessThan(decimal.Zero) {
			return fmt.Errorf("income_tax_brackets[%d]: deduction must be non-negative, got %s", i, b.Deduction)
		}
		if b.UpperBound.IsZero() {
			if i != len(brackets)-1 {
				return fmt.Errorf("income_tax_brackets[%d]: only the final bracket may omit upper_bound", i)
			}
			continue
		}
		if i > 0 && !brackets[i-1].UpperBound.IsZero() && b.UpperBound.LessThanOrEqual(brackets[i-1].UpperBound) {
			return fmt.Errorf("income_tax_brackets[%d]: upper bounds must be strictly increasing", i)
		}
	}
	if n := len(brackets); n > 0 && !brackets[n-1].UpperBound.IsZero() {
		return fmt.Errorf("final income tax bracket must be unbounded (omit upper_bound)")
	}
	return nil
}
