package calculation

import (
	"context"
	"fmt"

	"github.com/firesim/firesim/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Sweepable parameters.
const (
	SweepWithdrawalRate = "withdrawal_rate"
	SweepExpectedReturn = "expected_return"
	SweepInflationRate  = "inflation_rate"
)

// SweepResult pairs one parameter value with the full simulation outcome for
// that value.
type SweepResult struct {
	Value        decimal.Decimal          `json:"value"`
	FIAge        *int                     `json:"fiAge,omitempty"`
	DepletionAge *int                     `json:"depletionAge,omitempty"`
	FinalBalance decimal.Decimal          `json:"finalBalance"`
	Result       *domain.SimulationResult `json:"-"`
}

// SweepAnalyzer re-runs the simulation across a range of values for a single
// parameter. Runs are independent (each owns its portfolio state), so they
// execute concurrently.
type SweepAnalyzer struct {
	engine *SimulationEngine
}

// NewSweepAnalyzer creates an analyzer around the given engine.
func NewSweepAnalyzer(engine *SimulationEngine) *SweepAnalyzer {
	return &SweepAnalyzer{engine: engine}
}

// SweepValues produces count evenly spaced values across [min, max] inclusive.
func SweepValues(min, max decimal.Decimal, count int) []decimal.Decimal {
	if count <= 1 {
		return []decimal.Decimal{min}
	}
	step := max.Sub(min).Div(decimal.NewFromInt(int64(count - 1)))
	values := make([]decimal.Decimal, count)
	for i := 0; i < count; i++ {
		values[i] = min.Add(step.Mul(decimal.NewFromInt(int64(i))))
	}
	return values
}

// Analyze runs the simulation once per parameter value and returns results in
// value order.
func (sa *SweepAnalyzer) Analyze(ctx context.Context, params *domain.SimulationParameters, parameter string, values []decimal.Decimal) ([]SweepResult, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("no sweep values provided")
	}

	results := make([]SweepResult, len(values))

	g, ctx := errgroup.WithContext(ctx)
	for i, value := range values {
		i, value := i, value
		g.Go(func() error {
			modified, err := applyParameter(params, parameter, value)
			if err != nil {
				return err
			}
			result, err := sa.engine.Run(ctx, modified)
			if err != nil {
				return fmt.Errorf("sweep %s=%s: %w", parameter, value, err)
			}
			results[i] = SweepResult{
				Value:        value,
				FIAge:        result.FIAge,
				DepletionAge: result.DepletionAge,
				FinalBalance: result.FinalBalance(),
				Result:       result,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// applyParameter returns a copy of params with the swept parameter replaced.
func applyParameter(params *domain.SimulationParameters, parameter string, value decimal.Decimal) (*domain.SimulationParameters, error) {
	modified := *params
	switch parameter {
	case SweepWithdrawalRate:
		modified.WithdrawalRate = value
	case SweepExpectedReturn:
		modified.ExpectedReturn = value
	case SweepInflationRate:
		modified.InflationRate = value
	default:
		return nil, fmt.Errorf("unknown sweep parameter %q", parameter)
	}
	return &modified, nil
}
