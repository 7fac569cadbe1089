package calculation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepValues(t *testing.T) {
	values := SweepValues(decimal.NewFromFloat(0.03), decimal.NewFromFloat(0.05), 3)

	require.Len(t, values, 3)
	assert.True(t, decimal.NewFromFloat(0.03).Equal(values[0]))
	assert.True(t, decimal.NewFromFloat(0.04).Equal(values[1]))
	assert.True(t, decimal.NewFromFloat(0.05).Equal(values[2]))
}

func TestSweepValuesSingle(t *testing.T) {
	values := SweepValues(decimal.NewFromFloat(0.04), decimal.NewFromFloat(0.10), 1)
	require.Len(t, values, 1)
	assert.True(t, decimal.NewFromFloat(0.04).Equal(values[0]))
}

func TestSweepAnalyzer(t *testing.T) {
	analyzer := NewSweepAnalyzer(NewSimulationEngine())

	values := SweepValues(decimal.NewFromFloat(0.03), decimal.NewFromFloat(0.06), 4)
	results, err := analyzer.Analyze(context.Background(), baselineParams(), SweepWithdrawalRate, values)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, r := range results {
		assert.True(t, values[i].Equal(r.Value), "results keep value order")
		require.NotNil(t, r.Result)
		assert.Len(t, r.Result.Records, 61)
		assert.True(t, r.FinalBalance.Equal(r.Result.FinalBalance()))
	}

	// A higher withdrawal rate never leaves a larger final balance.
	for i := 1; i < len(results); i++ {
		assert.True(t, results[i].FinalBalance.LessThanOrEqual(results[i-1].FinalBalance),
			"final balance should not increase with the withdrawal rate")
	}
}

func TestSweepAnalyzerDoesNotMutateInput(t *testing.T) {
	analyzer := NewSweepAnalyzer(NewSimulationEngine())
	params := baselineParams()
	original := params.WithdrawalRate

	_, err := analyzer.Analyze(context.Background(), params, SweepWithdrawalRate,
		SweepValues(decimal.NewFromFloat(0.05), decimal.NewFromFloat(0.09), 3))
	require.NoError(t, err)

	assert.True(t, original.Equal(params.WithdrawalRate))
}

func TestSweepAnalyzerUnknownParameter(t *testing.T) {
	analyzer := NewSweepAnalyzer(NewSimulationEngine())

	_, err := analyzer.Analyze(context.Background(), baselineParams(), "shoe_size",
		[]decimal.Decimal{decimal.NewFromInt(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shoe_size")
}

func TestSweepAnalyzerNoValues(t *testing.T) {
	analyzer := NewSweepAnalyzer(NewSimulationEngine())

	_, err := analyzer.Analyze(context.Background(), baselineParams(), SweepWithdrawalRate, nil)
	require.Error(t, err)
}
