package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/firesim/firesim/internal/calculation"
	"github.com/firesim/firesim/internal/config"
	"github.com/firesim/firesim/internal/domain"
	"github.com/firesim/firesim/internal/output"
	"github.com/firesim/firesim/pkg/logging"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// zerologAdapter bridges the CLI's zerolog logger into the engine's Logger
// interface.
type zerologAdapter struct {
	log zerolog.Logger
}

func (a zerologAdapter) Debugf(format string, args ...any) { a.log.Debug().Msgf(format, args...) }
func (a zerologAdapter) Infof(format string, args ...any)  { a.log.Info().Msgf(format, args...) }
func (a zerologAdapter) Warnf(format string, args ...any)  { a.log.Warn().Msgf(format, args...) }
func (a zerologAdapter) Errorf(format string, args ...any) { a.log.Error().Msgf(format, args...) }

func newLogger(debugMode bool) zerolog.Logger {
	level := "info"
	if debugMode {
		level = "debug"
	}
	return logging.New(logging.Config{
		Level:  level,
		Pretty: isatty.IsTerminal(os.Stderr.Fd()),
	})
}

var rootCmd = &cobra.Command{
	Use:   "firesim",
	Short: "FIRE portfolio simulator CLI",
	Long:  "Projects investable net worth across a multi-decade horizon with Korean income and capital gains taxation",
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [input-file]",
	Short: "Run a portfolio projection",
	Long: `Run the year-by-year portfolio projection and print the results.

Without an input file the built-in baseline parameters are used. The output
format is selected with --format (` + strings.Join(output.AvailableFormatterNames(), ", ") + `).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debugMode, _ := cmd.Flags().GetBool("debug")
		logger := newLogger(debugMode)

		params, err := loadParameters(args)
		if err != nil {
			return err
		}

		engine := calculation.NewSimulationEngineWithConfig(params.TaxRules)
		if debugMode {
			engine.SetLogger(zerologAdapter{log: logger})
			engine.Debug = true
		}

		result, err := engine.Run(cmd.Context(), params)
		if err != nil {
			return fmt.Errorf("simulation failed: %w", err)
		}

		formatName, _ := cmd.Flags().GetString("format")
		formatter := output.GetFormatterByName(formatName)
		if formatter == nil {
			return fmt.Errorf("unsupported format %q (available: %s)",
				formatName, strings.Join(output.AvailableFormatterNames(), ", "))
		}

		data, err := formatter.Format(result)
		if err != nil {
			return fmt.Errorf("formatting failed: %w", err)
		}

		outFile, _ := cmd.Flags().GetString("output")
		if outFile != "" {
			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outFile, err)
			}
			logger.Info().Str("file", outFile).Str("format", formatter.Name()).Msg("report written")
			return nil
		}

		_, err = os.Stdout.Write(data)
		return err
	},
}

func loadParameters(args []string) (*domain.SimulationParameters, error) {
	if len(args) == 0 {
		return config.DefaultParameters(), nil
	}
	parser := config.NewInputParser()
	return parser.LoadFromFile(args[0])
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "firesim %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func init() {
	simulateCmd.Flags().String("format", "console", "Output format")
	simulateCmd.Flags().String("output", "", "Write the report to a file instead of stdout")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
