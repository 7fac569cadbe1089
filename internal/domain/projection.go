package domain

import (
	"github.com/shopspring/decimal"
)

// YearRecord captures the outcome of a single simulated age. Records are
// append-only: the engine never revises a year after it has been emitted.
type YearRecord struct {
	Age             int             `json:"age"`
	Salary          decimal.Decimal `json:"salary"`
	OtherIncome     decimal.Decimal `json:"otherIncome"`
	IncomeTax       decimal.Decimal `json:"incomeTax"`
	NetIncome       decimal.Decimal `json:"netIncome"`
	Expenses        decimal.Decimal `json:"expenses"`
	Growth          decimal.Decimal `json:"growth"`
	Withdrawal      decimal.Decimal `json:"withdrawal"`
	CapitalGainsTax decimal.Decimal `json:"capitalGainsTax"`
	EndingBalance   decimal.Decimal `json:"endingBalance"`
}

// SimulationResult is the full output of one simulation run: the ordered
// per-age records plus the two sticky milestone ages. A nil age means the
// milestone was never reached.
type SimulationResult struct {
	Records      []YearRecord    `json:"records"`
	FIAge        *int            `json:"fiAge,omitempty"`
	DepletionAge *int            `json:"depletionAge,omitempty"`
	FITarget     decimal.Decimal `json:"fiTarget"`

	// Parameters echoes the validated input the run was produced from, for
	// report headers and milestone lookups.
	Parameters *SimulationParameters `json:"parameters,omitempty"`
}

// FIReached reports whether the portfolio ever met the FI target.
func (r *SimulationResult) FIReached() bool { return r.FIAge != nil }

// Depleted reports whether the portfolio ran out before end of life.
func (r *SimulationResult) Depleted() bool { return r.DepletionAge != nil }

// FinalBalance returns the portfolio balance at the end-of-life age.
func (r *SimulationResult) FinalBalance() decimal.Decimal {
	if len(r.Records) == 0 {
		return decimal.Zero
	}
	return r.Records[len(r.Records)-1].EndingBalance
}

// BalanceAtAge returns the ending balance for the given age. The second
// return value is false when the age lies outside the simulated range.
func (r *SimulationResult) BalanceAtAge(age int) (decimal.Decimal, bool) {
	for _, rec := range r.Records {
		if rec.Age == age {
			return rec.EndingBalance, true
		}
	}
	return decimal.Zero, false
}

// TotalCapitalGainsTax sums the capital gains tax paid across all years.
func (r *SimulationResult) TotalCapitalGainsTax() decimal.Decimal {
	total := decimal.Zero
	for _, rec := range r.Records {
		total = total.Add(rec.CapitalGainsTax)
	}
	return total
}

// TotalIncomeTax sums the income tax paid across all years.
func (r *SimulationResult) TotalIncomeTax() decimal.Decimal {
	total := decimal.Zero
	for _, rec := range r.Records {
		total = total.Add(rec.IncomeTax)
	}
	return total
}
