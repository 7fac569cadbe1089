package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/firesim/firesim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
current_age: 35
end_of_life_age: 85
current_savings: 300000000
annual_salary: 80000000
salary_end_age: 50
other_income: 6000000
other_income_end_age: 65
annual_expenses: 48000000
expected_return: 0.05
inflation_rate: 0.025
withdrawal_policy: percent_of_balance
withdrawal_rate: 0.035
tax_rules:
  capital_gains_rate: 0.22
  capital_gains_exemption: 2500000
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	parser := NewInputParser()

	params, err := parser.LoadFromFile(writeTempConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, 35, params.CurrentAge)
	assert.Equal(t, 85, params.EndOfLifeAge)
	assert.Equal(t, 50, params.SalaryEndAge)
	assert.True(t, decimal.NewFromInt(300_000_000).Equal(params.CurrentSavings))
	assert.True(t, decimal.NewFromFloat(0.035).Equal(params.WithdrawalRate))
	assert.Equal(t, domain.WithdrawalPercentOfBalance, params.WithdrawalPolicy)
}

func TestLoadFromFileMissing(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFileBadYAML(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(writeTempConfig(t, "current_age: [not a number"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

// TestLoadFromFilePartial: omitted fields keep their baseline defaults.
func TestLoadFromFilePartial(t *testing.T) {
	parser := NewInputParser()

	params, err := parser.LoadFromFile(writeTempConfig(t, "withdrawal_rate: 0.05\n"))
	require.NoError(t, err)

	assert.True(t, decimal.NewFromFloat(0.05).Equal(params.WithdrawalRate))
	assert.Equal(t, 30, params.CurrentAge, "defaults fill the gaps")
	assert.True(t, decimal.NewFromInt(500_000_000).Equal(params.CurrentSavings))
}

func TestDefaultParameters(t *testing.T) {
	params := DefaultParameters()

	require.NoError(t, NewInputParser().ValidateParameters(params), "defaults must validate")
	assert.True(t, decimal.NewFromInt(1_750_000_000).Equal(params.FITarget()))
	assert.Equal(t, 61, params.ProjectionYears())
}

func TestValidateParameters(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*domain.SimulationParameters)
		errFragment string
	}{
		{
			name:        "current age too low",
			mutate:      func(p *domain.SimulationParameters) { p.CurrentAge = 12 },
			errFragment: "current_age",
		},
		{
			name: "end of life before current age",
			mutate: func(p *domain.SimulationParameters) {
				p.CurrentAge = 60
				p.SalaryEndAge = 60
				p.OtherIncomeEndAge = 60
				p.EndOfLifeAge = 55
			},
			errFragment: "end_of_life_age",
		},
		{
			name:        "salary end age out of range",
			mutate:      func(p *domain.SimulationParameters) { p.SalaryEndAge = 95 },
			errFragment: "salary_end_age",
		},
		{
			name:        "other income end age out of range",
			mutate:      func(p *domain.SimulationParameters) { p.OtherIncomeEndAge = 20 },
			errFragment: "other_income_end_age",
		},
		{
			name:        "negative savings",
			mutate:      func(p *domain.SimulationParameters) { p.CurrentSavings = decimal.NewFromInt(-5) },
			errFragment: "current_savings",
		},
		{
			name:        "return above 100%",
			mutate:      func(p *domain.SimulationParameters) { p.ExpectedReturn = decimal.NewFromFloat(1.5) },
			errFragment: "expected_return",
		},
		{
			name:        "unknown withdrawal policy",
			mutate:      func(p *domain.SimulationParameters) { p.WithdrawalPolicy = "yolo" },
			errFragment: "withdrawal_policy",
		},
		{
			name: "negative exemption",
			mutate: func(p *domain.SimulationParameters) {
				p.TaxRules.CapitalGainsExemption = decimal.NewFromInt(-1)
			},
			errFragment: "capital_gains_exemption",
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParameters()
			tt.mutate(params)

			err := parser.ValidateParameters(params)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errFragment)
		})
	}
}

func TestValidateBrackets(t *testing.T) {
	parser := NewInputParser()

	t.Run("valid custom table", func(t *testing.T) {
		params := DefaultParameters()
		params.TaxRules.IncomeTaxBrackets = []domain.TaxBracketConfig{
			{UpperBound: decimal.NewFromInt(10_000_000), Rate: decimal.NewFromFloat(0.05), Deduction: decimal.Zero},
			{Rate: decimal.NewFromFloat(0.20), Deduction: decimal.NewFromInt(1_500_000)},
		}
		assert.NoError(t, parser.ValidateParameters(params))
	})

	t.Run("bounded final bracket", func(t *testing.T) {
		params := DefaultParameters()
		params.TaxRules.IncomeTaxBrackets = []domain.TaxBracketConfig{
			{UpperBound: decimal.NewFromInt(10_000_000), Rate: decimal.NewFromFloat(0.05), Deduction: decimal.Zero},
		}
		err := parser.ValidateParameters(params)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unbounded")
	})

	t.Run("out of order bounds", func(t *testing.T) {
		params := DefaultParameters()
		params.TaxRules.IncomeTaxBrackets = []domain.TaxBracketConfig{
			{UpperBound: decimal.NewFromInt(20_000_000), Rate: decimal.NewFromFloat(0.05), Deduction: decimal.Zero},
			{UpperBound: decimal.NewFromInt(10_000_000), Rate: decimal.NewFromFloat(0.10), Deduction: decimal.Zero},
			{Rate: decimal.NewFromFloat(0.20), Deduction: decimal.NewFromInt(1_500_000)},
		}
		err := parser.ValidateParameters(params)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "strictly increasing")
	})

	t.Run("rate out of range", func(t *testing.T) {
		params := DefaultParameters()
		params.TaxRules.IncomeTaxBrackets = []domain.TaxBracketConfig{
			{Rate: decimal.NewFromFloat(1.2), Deduction: decimal.Zero},
		}
		err := parser.ValidateParameters(params)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate")
	})
}
