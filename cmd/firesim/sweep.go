package main

import (
	"fmt"
	"os"

	"github.com/firesim/firesim/internal/calculation"
	"github.com/firesim/firesim/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	sweepParameter string
	sweepMin       float64
	sweepMax       float64
	sweepSteps     int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep [input-file]",
	Short: "Sweep one parameter across a range of values",
	Long: `Re-run the simulation across a range of values for a single parameter and
report the FI age, depletion age and final balance for each value.

Examples:
  # How sensitive is the plan to the withdrawal rate?
  firesim sweep config.yaml --parameter withdrawal_rate --min 0.03 --max 0.06 --steps 7

  # Sweep the expected return with the built-in baseline parameters
  firesim sweep --parameter expected_return --min 0.02 --max 0.08 --steps 7`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := loadParameters(args)
		if err != nil {
			return err
		}

		engine := calculation.NewSimulationEngineWithConfig(params.TaxRules)
		analyzer := calculation.NewSweepAnalyzer(engine)

		values := calculation.SweepValues(
			decimal.NewFromFloat(sweepMin),
			decimal.NewFromFloat(sweepMax),
			sweepSteps,
		)

		results, err := analyzer.Analyze(cmd.Context(), params, sweepParameter, values)
		if err != nil {
			return fmt.Errorf("sweep failed: %w", err)
		}

		fmt.Fprintf(os.Stdout, "%-12s %8s %10s %22s\n", sweepParameter, "FI age", "Depleted", "Final balance")
		for _, r := range results {
			fmt.Fprintf(os.Stdout, "%-12s %8s %10s %22s\n",
				output.FormatPercent(r.Value),
				formatAge(r.FIAge),
				formatAge(r.DepletionAge),
				output.FormatKRW(r.FinalBalance),
			)
		}
		return nil
	},
}

func formatAge(age *int) string {
	if age == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *age)
}

func init() {
	sweepCmd.Flags().StringVar(&sweepParameter, "parameter", calculation.SweepWithdrawalRate, "Parameter to sweep (withdrawal_rate, expected_return, inflation_rate)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.03, "Lowest value in the sweep")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.06, "Highest value in the sweep")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "Number of values in the sweep")
}
