package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/rpfire/internal/domain"
	"github.com/rgehrsitz/rpfire/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var taxesCmd = &cobra.Command{
	Use:   "taxes [income]",
	Short: "Show the tax breakdown for an annual income in dollars",
	Long: `Show the tax breakdown for an annual income in whole dollars.

Examples:
  # Wages: federal, state and local brackets plus FICA
  rpfire taxes 150000

  # Portfolio withdrawal taxed as long-term capital gains
  rpfire taxes 90000 --capital-gains`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		income, err := parseDollars(args[0])
		if err != nil {
			return err
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}

		mode := domain.TaxModeOrdinary
		if cg, _ := cmd.Flags().GetBool("capital-gains"); cg {
			mode = domain.TaxModeCapitalGains
		}

		writeTaxResult(cmd.OutOrStdout(), engine.CalculateTaxes(income, mode))
		return nil
	},
}

var withdrawalCmd = &cobra.Command{
	Use:   "withdrawal [after-tax-spend]",
	Short: "Find the gross portfolio withdrawal that nets an after-tax spend in dollars",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spend, err := parseDollars(args[0])
		if err != nil {
			return err
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}

		gross, err := engine.GrossWithdrawal(spend)
		if err != nil {
			return err
		}
		tax := engine.CalculateTaxes(gross, domain.TaxModeCapitalGains)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "After-tax spend:   %s\n", output.FormatCurrency(spend))
		fmt.Fprintf(out, "Gross withdrawal:  %s\n", output.FormatCurrency(gross))
		fmt.Fprintf(out, "Capital gains tax: %s\n", output.FormatCurrency(tax.Total))
		return nil
	},
}

func parseDollars(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimPrefix(raw, "$"), ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount cannot be negative: %s", raw)
	}
	return d, nil
}

func writeTaxResult(w io.Writer, tr domain.TaxResult) {
	fmt.Fprintf(w, "Income:          %s (%s)\n", output.FormatCurrency(tr.Income), tr.Mode)
	if tr.Mode == domain.TaxModeOrdinary.String() {
		fmt.Fprintf(w, "  Federal:       %s\n", output.FormatCurrency(tr.Federal))
		fmt.Fprintf(w, "  State:         %s\n", output.FormatCurrency(tr.State))
		fmt.Fprintf(w, "  Local:         %s\n", output.FormatCurrency(tr.Local))
		fmt.Fprintf(w, "  FICA:          %s\n", output.FormatCurrency(tr.FICA))
	}
	fmt.Fprintf(w, "Total tax:       %s\n", output.FormatCurrency(tr.Total))
	if tr.EffectiveRateDefined {
		fmt.Fprintf(w, "Effective rate:  %s\n", output.FormatRate(tr.EffectiveRate))
	} else {
		fmt.Fprintln(w, "Effective rate:  n/a")
	}
	fmt.Fprintf(w, "After tax:       %s\n", output.FormatCurrency(tr.AfterTax()))
}

func init() {
	taxesCmd.Flags().Bool("capital-gains", false, "Tax the amount as long-term capital gains")
	taxesCmd.Flags().String("tax-rules", "", "Path to a tax rules YAML snapshot (default: built-in 2024 NYC)")
	withdrawalCmd.Flags().String("tax-rules", "", "Path to a tax rules YAML snapshot (default: built-in 2024 NYC)")

	rootCmd.AddCommand(taxesCmd)
	rootCmd.AddCommand(withdrawalCmd)
}
