package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/firesim/firesim/internal/domain"
)

// CSVFormatter exports the per-age projection, one row per simulated year.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Age", "Salary", "OtherIncome", "IncomeTax", "NetIncome", "Expenses", "Growth", "Withdrawal", "CapitalGainsTax", "EndingBalance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, rec := range result.Records {
		row := []string{
			strconv.Itoa(rec.Age),
			rec.Salary.StringFixed(0),
			rec.OtherIncome.StringFixed(0),
			rec.IncomeTax.StringFixed(0),
			rec.NetIncome.StringFixed(0),
			rec.Expenses.StringFixed(0),
			rec.Growth.StringFixed(0),
			rec.Withdrawal.StringFixed(0),
			rec.CapitalGainsTax.StringFixed(0),
			rec.EndingBalance.StringFixed(0),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
