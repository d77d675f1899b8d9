package output

import (
	"fmt"

	"github.com/rgehrsitz/rpfire/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultAssumptions lists the modeling assumptions implied by a tax snapshot.
func DefaultAssumptions(rules domain.TaxRules) []string {
	snapshot := fmt.Sprintf("%d", rules.Year)
	if rules.Jurisdiction != "" {
		snapshot += " " + rules.Jurisdiction
	}

	lines := []string{
		fmt.Sprintf("Tax brackets: %s levels held constant (no inflation indexing)", snapshot),
		"Working income: federal, state and local brackets plus FICA on the same gross amount, no deductions",
		fmt.Sprintf("Social Security: %s up to %s; Medicare %s plus %s above %s",
			exactRate(rules.FICA.SocialSecurityRate),
			FormatCurrency(rules.FICA.SocialSecurityWageBase),
			exactRate(rules.FICA.MedicareRate),
			exactRate(rules.FICA.AdditionalMedicareRate),
			FormatCurrency(rules.FICA.AdditionalThreshold)),
		"Retirement withdrawals: long-term capital gains only (no state, local or FICA tax)",
	}
	if len(rules.CapitalGains) > 0 && !rules.CapitalGains[0].IsUnbounded() && rules.CapitalGains[0].Rate.IsZero() {
		lines = append(lines, fmt.Sprintf("Capital gains: 0%% bracket up to %s", FormatCurrency(*rules.CapitalGains[0].Threshold)))
	}
	if rules.RetirementLimits.Traditional401k.IsPositive() || rules.RetirementLimits.HSA.IsPositive() {
		lines = append(lines, fmt.Sprintf("Contribution limits (not modeled): 401(k) %s, HSA %s",
			FormatCurrency(rules.RetirementLimits.Traditional401k),
			FormatCurrency(rules.RetirementLimits.HSA)))
	}
	return lines
}

// Assumptions lists the input-driven assumptions of a run followed by the tax snapshot's.
func Assumptions(result *domain.SimulationResult) []string {
	in := result.Input
	lines := []string{
		fmt.Sprintf("Stock return: %s per year, first applied in the second year", FormatRate(in.StockReturnPct)),
		fmt.Sprintf("Compensation growth: %s per year; spend growth: %s per year (capped at the retirement spend)",
			FormatRate(in.CompensationGrowthPct), FormatRate(in.SpendGrowthPct)),
		fmt.Sprintf("Retirement is affordable once %s of net worth, after tax, covers %s",
			FormatRate(in.WithdrawalRatePct), FormatCurrency(in.RequiredRetirementSpend.Mul(domain.ThousandsMultiplier))),
	}
	if result.Rules != nil {
		lines = append(lines, DefaultAssumptions(*result.Rules)...)
	}
	return lines
}

// exactRate renders a fractional rate as a percentage without rounding.
func exactRate(rate decimal.Decimal) string {
	return rate.Mul(hundred).String() + "%"
}
