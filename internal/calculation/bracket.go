package calculation

import (
	"github.com/rgehrsitz/rpfire/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateBracketTax applies a progressive bracket table to income.
// Income exactly at a threshold is taxed entirely within that bracket.
// Zero or negative income owes nothing.
func CalculateBracketTax(income decimal.Decimal, brackets domain.BracketTable) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	tax := decimal.Zero
	previousThreshold := decimal.Zero
	for _, bracket := range brackets {
		if bracket.IsUnbounded() {
			tax = tax.Add(income.Sub(previousThreshold).Mul(bracket.Rate))
			break
		}

		threshold := *bracket.Threshold
		incomeInBracket := decimal.Min(income.Sub(previousThreshold), threshold.Sub(previousThreshold))
		if incomeInBracket.GreaterThan(decimal.Zero) {
			tax = tax.Add(incomeInBracket.Mul(bracket.Rate))
		}
		previousThreshold = threshold
		if income.LessThanOrEqual(threshold) {
			break
		}
	}
	return tax
}

// MarginalRate returns the rate of the bracket that taxes the last unit of income.
func MarginalRate(income decimal.Decimal, brackets domain.BracketTable) decimal.Decimal {
	if len(brackets) == 0 {
		return decimal.Zero
	}
	for _, bracket := range brackets {
		if bracket.IsUnbounded() || income.LessThanOrEqual(*bracket.Threshold) {
			return bracket.Rate
		}
	}
	return brackets[len(brackets)-1].Rate
}
