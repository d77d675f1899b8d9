package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/rpfire/internal/calculation"
	"github.com/rgehrsitz/rpfire/internal/config"
	"github.com/rgehrsitz/rpfire/internal/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rpfire %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "rpfire",
	Short: "Retirement net worth projection CLI",
	Long: `Project net worth year by year until retirement is affordable, then through
retirement, with progressive federal, state, local and capital-gains taxes.

Money in input files is in thousands of dollars; rates are percentages.`,
	SilenceUsage: true,
}

// newLogger returns a stderr logrus logger; debug selects DebugLevel
func newLogger(debugMode bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if debugMode {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// newEngine builds an engine for the tax snapshot named by the --tax-rules flag
func newEngine(cmd *cobra.Command) (*calculation.CalculationEngine, error) {
	rulesPath, _ := cmd.Flags().GetString("tax-rules")
	rules, err := config.ResolveTaxRules(rulesPath)
	if err != nil {
		return nil, err
	}
	return calculation.NewCalculationEngineWithRules(rules), nil
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Project net worth and retirement for an input file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		outputFormat, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			return fmt.Errorf("unknown format %q (available: %v)", outputFormat, output.AvailableFormatterNames())
		}

		parser := config.NewInputParser()
		input, err := parser.LoadFromFile(inputFile)
		if err != nil {
			return err
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		debugMode, _ := cmd.Flags().GetBool("debug")
		engine.SetLogger(newLogger(debugMode))
		engine.Debug = debugMode

		result, err := engine.RunSimulation(cmd.Context(), *input)
		if err != nil {
			return err
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			if err := output.WriteFormatted(f, result, outputFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s report to %s\n", f.Name(), outputFile)
			return nil
		}

		data, err := f.Format(result)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a simulation input file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(inputFile); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid\n", inputFile)
		return nil
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example [output-file]",
	Short: "Write an example simulation input",
	Long:  "Write an example simulation input to output-file, or to stdout when no file is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data := config.ExampleYAML()
		if len(args) == 0 {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(args[0], data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example input written to %s\n", args[0])
		return nil
	},
}

func init() {
	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, html, json)")
	calculateCmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	calculateCmd.Flags().String("tax-rules", "", "Path to a tax rules YAML snapshot (default: built-in 2024 NYC)")
	calculateCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
