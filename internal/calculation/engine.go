package calculation

import (
	"context"
	"fmt"

	"github.com/firesim/firesim/internal/domain"
	"github.com/shopspring/decimal"
)

// SimulationEngine drives the year-by-year portfolio projection.
//
// Each run owns an independent portfolio state, so multiple simulations may
// execute concurrently across separate calls with no locking.
type SimulationEngine struct {
	TaxCalc   *ProgressiveTaxCalculator
	GainsCalc *CapitalGainsTaxCalculator
	Logger    Logger
	Debug     bool
}

// NewSimulationEngine creates an engine with the default tax tables.
func NewSimulationEngine() *SimulationEngine {
	return &SimulationEngine{
		TaxCalc:   NewProgressiveTaxCalculator(),
		GainsCalc: NewCapitalGainsTaxCalculator(),
		Logger:    NopLogger{},
	}
}

// NewSimulationEngineWithConfig creates an engine with configured tax rules.
func NewSimulationEngineWithConfig(rules domain.TaxRules) *SimulationEngine {
	return &SimulationEngine{
		TaxCalc:   NewProgressiveTaxCalculatorWithConfig(rules),
		GainsCalc: NewCapitalGainsTaxCalculatorWithConfig(rules),
		Logger:    NopLogger{},
	}
}

// SetLogger replaces the engine logger; nil installs the no-op logger.
func (se *SimulationEngine) SetLogger(l Logger) {
	if l == nil {
		se.Logger = NopLogger{}
		return
	}
	se.Logger = l
}

// portfolioState is the mutable per-run state: market value plus the cost
// basis ledger. It is created from the starting savings and discarded after
// the final simulated age; only YearRecords escape the run.
type portfolioState struct {
	balance decimal.Decimal
	ledger  *CostBasisLedger
}

// milestoneState holds the two sticky milestone ages. Each is written at most
// once; later years never re-evaluate a milestone that has fired.
type milestoneState struct {
	depletionAge *int
	fiAge        *int
}

func (ms *milestoneState) markDepleted(age int) {
	if ms.depletionAge == nil {
		a := age
		ms.depletionAge = &a
	}
}

func (ms *milestoneState) markFI(age int) {
	if ms.fiAge == nil {
		a := age
		ms.fiAge = &a
	}
}

// Run executes the simulation across the closed age range
// [CurrentAge, EndOfLifeAge] and returns one YearRecord per age plus the
// milestone ages. Parameters are checked up front; inside the loop all
// arithmetic is clamp-based and cannot fail.
func (se *SimulationEngine) Run(ctx context.Context, params *domain.SimulationParameters) (*domain.SimulationResult, error) {
	if err := validateParameters(params); err != nil {
		return nil, err
	}

	policy, err := NewWithdrawalPolicy(params)
	if err != nil {
		return nil, err
	}

	indexer := NewInflationIndexer(params.InflationRate)
	fiTarget := params.FITarget()

	state := &portfolioState{
		balance: params.CurrentSavings,
		ledger:  NewCostBasisLedger(params.CurrentSavings),
	}
	milestones := &milestoneState{}

	// Rolling nominal streams; the first simulated year uses the inputs
	// unmodified apart from end-age gating.
	salary := gate(params.AnnualSalary, params.CurrentAge < params.SalaryEndAge)
	otherIncome := gate(params.OtherIncome, params.CurrentAge < params.OtherIncomeEndAge)
	expenses := params.AnnualExpenses

	records := make([]domain.YearRecord, 0, params.ProjectionYears())

	for age := params.CurrentAge; age <= params.EndOfLifeAge; age++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if age > params.CurrentAge {
			salary = indexer.NextIf(salary, age < params.SalaryEndAge)
			otherIncome = indexer.NextIf(otherIncome, age < params.OtherIncomeEndAge)
			expenses = indexer.Next(expenses)
		}

		record := se.simulateYear(age, params, policy, state, milestones, salary, otherIncome, expenses)

		if state.balance.GreaterThanOrEqual(fiTarget) {
			milestones.markFI(age)
		}

		if se.Debug {
			se.Logger.Debugf("age %d: balance=%s basis=%s withdrawal=%s",
				age, state.balance, state.ledger.Basis(), record.Withdrawal)
		}

		records = append(records, record)
	}

	if milestones.depletionAge != nil {
		se.Logger.Infof("portfolio depleted at age %d", *milestones.depletionAge)
	}

	return &domain.SimulationResult{
		Records:      records,
		FIAge:        milestones.fiAge,
		DepletionAge: milestones.depletionAge,
		FITarget:     fiTarget,
		Parameters:   params,
	}, nil
}

// simulateYear performs one age transition: income and income tax, investment
// growth, then either the working-years cash-flow allocation or the
// post-income withdrawal and capital gains taxation.
func (se *SimulationEngine) simulateYear(
	age int,
	params *domain.SimulationParameters,
	policy WithdrawalPolicy,
	state *portfolioState,
	milestones *milestoneState,
	salary, otherIncome, expenses decimal.Decimal,
) domain.YearRecord {
	totalIncome := salary.Add(otherIncome)

	// Zero income short-circuits the tax table.
	incomeTax := decimal.Zero
	if totalIncome.GreaterThan(decimal.Zero) {
		incomeTax = se.TaxCalc.CalculateTax(totalIncome)
	}
	netIncome := totalIncome.Sub(incomeTax)

	// Growth applies to the balance before any cash-flow adjustment.
	growth := state.balance.Mul(params.ExpectedReturn).Round(0)
	state.balance = state.balance.Add(growth)

	withdrawal := decimal.Zero
	capitalGainsTax := decimal.Zero

	if age < params.SalaryEndAge {
		// Working years: surplus is invested at cost, a shortfall draws the
		// balance down without a realization event, so the basis holds.
		cashFlow := netIncome.Sub(expenses)
		state.balance = state.balance.Add(cashFlow)
		if cashFlow.GreaterThanOrEqual(decimal.Zero) {
			state.ledger.Contribute(cashFlow)
		}

		if state.balance.LessThan(decimal.Zero) {
			state.balance = decimal.Zero
			milestones.markDepleted(age)
		}
	} else {
		withdrawal = policy.CalculateWithdrawal(state.balance, expenses)
		if withdrawal.GreaterThan(state.balance) {
			withdrawal = state.balance
			state.balance = decimal.Zero
		} else {
			state.balance = state.balance.Sub(withdrawal)
		}

		capitalGainsTax = se.GainsCalc.TaxOnSale(withdrawal, state.balance, state.ledger)

		if state.balance.LessThanOrEqual(decimal.Zero) {
			state.balance = decimal.Zero
			milestones.markDepleted(age)
		}
	}

	return domain.YearRecord{
		Age:             age,
		Salary:          salary,
		OtherIncome:     otherIncome,
		IncomeTax:       incomeTax,
		NetIncome:       netIncome,
		Expenses:        expenses,
		Growth:          growth,
		Withdrawal:      withdrawal,
		CapitalGainsTax: capitalGainsTax,
		EndingBalance:   state.balance,
	}
}

func gate(amount decimal.Decimal, active bool) decimal.Decimal {
	if !active {
		return decimal.Zero
	}
	return amount
}

// validateParameters rejects the fatal, non-recoverable inputs before the loop
// starts. Depletion, zero income and zero gains are modeled outcomes, not
// errors.
func validateParameters(params *domain.SimulationParameters) error {
	if params == nil {
		return fmt.Errorf("simulation parameters are required")
	}
	if params.CurrentAge > params.EndOfLifeAge {
		return fmt.Errorf("current age (%d) cannot exceed end-of-life age (%d)", params.CurrentAge, params.EndOfLifeAge)
	}
	for name, amount := range map[string]decimal.Decimal{
		"current_savings":         params.CurrentSavings,
		"annual_salary":           params.AnnualSalary,
		"other_income":            params.OtherIncome,
		"annual_expenses":         params.AnnualExpenses,
		"expected_return":         params.ExpectedReturn,
		"inflation_rate":          params.InflationRate,
		"withdrawal_rate":         params.WithdrawalRate,
		"withdrawal_target":       params.WithdrawalTarget,
		"capital_gains_rate":      params.TaxRules.CapitalGainsRate,
		"capital_gains_exemption": params.TaxRules.CapitalGainsExemption,
	} {
		if amount.LessThan(decimal.Zero) {
			return fmt.Errorf("%s must be non-negative, got %s", name, amount)
		}
	}
	return nil
}
