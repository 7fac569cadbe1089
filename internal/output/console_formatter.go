package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/firesim/firesim/internal/domain"
)

// ConsoleFormatter renders the milestone summary and the full per-age table.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "FIRE PORTFOLIO PROJECTION")
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf)

	c.writeMilestones(&buf, result)

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "YEARLY PROJECTION")
	fmt.Fprintln(&buf, strings.Repeat("-", 60))
	fmt.Fprintf(&buf, "%4s %18s %16s %14s %16s %16s %16s\n",
		"Age", "Balance", "Salary", "IncomeTax", "Expenses", "Withdrawal", "GainsTax")
	for _, rec := range result.Records {
		fmt.Fprintf(&buf, "%4d %18s %16s %14s %16s %16s %16s\n",
			rec.Age,
			FormatKRW(rec.EndingBalance),
			FormatKRW(rec.Salary),
			FormatKRW(rec.IncomeTax),
			FormatKRW(rec.Expenses),
			FormatKRW(rec.Withdrawal),
			FormatKRW(rec.CapitalGainsTax),
		)
	}

	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeMilestones(buf *bytes.Buffer, result *domain.SimulationResult) {
	fmt.Fprintf(buf, "FI target (25x expenses):  %s\n", FormatKRW(result.FITarget))

	if result.FIReached() {
		fmt.Fprintf(buf, "FI reached at age:         %d\n", *result.FIAge)
	} else {
		fmt.Fprintln(buf, "FI reached at age:         not reached")
	}
	if result.Depleted() {
		fmt.Fprintf(buf, "Portfolio depleted at age: %d\n", *result.DepletionAge)
	} else {
		fmt.Fprintln(buf, "Portfolio depleted at age: never")
	}

	params := result.Parameters
	if params == nil {
		return
	}
	if balance, ok := result.BalanceAtAge(params.SalaryEndAge); ok {
		fmt.Fprintf(buf, "Balance at retirement (%d): %s\n", params.SalaryEndAge, FormatKRW(balance))
	}
	if balance, ok := result.BalanceAtAge(params.OtherIncomeEndAge); ok && params.OtherIncome.IsPositive() {
		fmt.Fprintf(buf, "Balance at other-income end (%d): %s\n", params.OtherIncomeEndAge, FormatKRW(balance))
	}
	fmt.Fprintf(buf, "Balance at end of life (%d): %s\n", params.EndOfLifeAge, FormatKRW(result.FinalBalance()))
}
