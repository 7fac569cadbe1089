package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/firesim/firesim/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	chartTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	chartBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	chartFIStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	chartDepleted   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	chartMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// ChartFormatter renders the balance trajectory as a horizontal bar chart,
// one bar per simulated age.
type ChartFormatter struct{}

func (c ChartFormatter) Name() string { return "chart" }

const chartBarWidth = 50

func (c ChartFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(chartTitleStyle.Render("Portfolio balance by age"))
	buf.WriteString("\n\n")

	maxBalance := decimal.Zero
	for _, rec := range result.Records {
		if rec.EndingBalance.GreaterThan(maxBalance) {
			maxBalance = rec.EndingBalance
		}
	}

	for _, rec := range result.Records {
		bar := barLength(rec.EndingBalance, maxBalance)
		style := chartBarStyle
		marker := ""
		switch {
		case result.DepletionAge != nil && rec.Age >= *result.DepletionAge:
			style = chartDepleted
			if rec.Age == *result.DepletionAge {
				marker = "  depleted"
			}
		case result.FIAge != nil && rec.Age >= *result.FIAge:
			style = chartFIStyle
			if rec.Age == *result.FIAge {
				marker = "  FI reached"
			}
		}
		fmt.Fprintf(&buf, "%4d %s %s%s\n",
			rec.Age,
			style.Render(strings.Repeat("█", bar)+strings.Repeat(" ", chartBarWidth-bar)),
			FormatKRW(rec.EndingBalance),
			marker,
		)
	}

	buf.WriteString("\n")
	buf.WriteString(chartMutedStyle.Render(fmt.Sprintf("FI target: %s", FormatKRW(result.FITarget))))
	buf.WriteString("\n")

	return buf.Bytes(), nil
}

func barLength(balance, max decimal.Decimal) int {
	if max.IsZero() || balance.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	n := int(balance.Div(max).Mul(decimal.NewFromInt(chartBarWidth)).IntPart())
	if n > chartBarWidth {
		n = chartBarWidth
	}
	return n
}
