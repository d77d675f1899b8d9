package calculation

import (
	"github.com/rgehrsitz/rpfire/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. One tax-year snapshot (domain.TaxRules) is used for every projection year.
//    Brackets are not indexed for inflation.
//
// 2. Ordinary income: FICA plus progressive federal, state and local brackets,
//    all applied to the same gross amount (no deductions).
//
// 3. Portfolio withdrawals are taxed as long-term capital gains only; the state
//    and local components and FICA are zero.

var hundred = decimal.NewFromInt(100)

// FICACalculator handles FICA tax calculations
type FICACalculator struct {
	SSWageBase          decimal.Decimal
	SSRate              decimal.Decimal
	MedicareRate        decimal.Decimal
	AdditionalRate      decimal.Decimal
	HighIncomeThreshold decimal.Decimal
}

// NewFICACalculator creates a new FICA calculator from the snapshot rules
func NewFICACalculator(rules domain.FICARules) *FICACalculator {
	return &FICACalculator{
		SSWageBase:          rules.SocialSecurityWageBase,
		SSRate:              rules.SocialSecurityRate,
		MedicareRate:        rules.MedicareRate,
		AdditionalRate:      rules.AdditionalMedicareRate,
		HighIncomeThreshold: rules.AdditionalThreshold,
	}
}

// CalculateFICA calculates Social Security and Medicare tax on wages
func (fc *FICACalculator) CalculateFICA(wages decimal.Decimal) decimal.Decimal {
	if wages.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	// Social Security tax (capped at the wage base)
	ssTax := decimal.Min(wages, fc.SSWageBase).Mul(fc.SSRate)

	// Medicare tax (no cap)
	medicareTax := wages.Mul(fc.MedicareRate)

	// Additional Medicare tax applies to the excess only
	additionalMedicare := decimal.Zero
	if wages.GreaterThan(fc.HighIncomeThreshold) {
		additionalMedicare = wages.Sub(fc.HighIncomeThreshold).Mul(fc.AdditionalRate)
	}

	return ssTax.Add(medicareTax).Add(additionalMedicare)
}

// TaxCalculator combines the bracket tables and FICA of one snapshot.
// It holds no mutable state and is safe for concurrent use.
type TaxCalculator struct {
	Rules    domain.TaxRules
	FICACalc *FICACalculator
}

// NewTaxCalculator creates a new composite tax calculator
func NewTaxCalculator(rules domain.TaxRules) *TaxCalculator {
	return &TaxCalculator{
		Rules:    rules,
		FICACalc: NewFICACalculator(rules.FICA),
	}
}

// CalculateTaxes computes the full tax breakdown for income under the given mode
func (tc *TaxCalculator) CalculateTaxes(income decimal.Decimal, mode domain.TaxMode) domain.TaxResult {
	result := domain.TaxResult{Income: income, Mode: mode.String()}

	if mode == domain.TaxModeCapitalGains {
		result.Federal = CalculateBracketTax(income, tc.Rules.CapitalGains)
		result.State = decimal.Zero
		result.Local = decimal.Zero
		result.FICA = decimal.Zero
		result.Total = result.Federal
		setEffectiveRate(&result)
		return result
	}

	result.FICA = tc.FICACalc.CalculateFICA(income)
	result.Federal = CalculateBracketTax(income, tc.Rules.Federal)
	result.State = CalculateBracketTax(income, tc.Rules.State)
	result.Local = CalculateBracketTax(income, tc.Rules.Local)
	result.Total = result.Federal.Add(result.State).Add(result.Local).Add(result.FICA)
	setEffectiveRate(&result)
	return result
}

// AfterTax returns gross minus the total tax owed on it
func (tc *TaxCalculator) AfterTax(gross decimal.Decimal, mode domain.TaxMode) decimal.Decimal {
	return gross.Sub(tc.CalculateTaxes(gross, mode).Total)
}

// GrossWithdrawalFor finds the capital-gains withdrawal that nets targetAfterTax
func (tc *TaxCalculator) GrossWithdrawalFor(targetAfterTax decimal.Decimal, opts InversionOptions) (decimal.Decimal, error) {
	return InvertGrossWithdrawal(targetAfterTax, func(gross decimal.Decimal) decimal.Decimal {
		return tc.AfterTax(gross, domain.TaxModeCapitalGains)
	}, opts)
}

func setEffectiveRate(result *domain.TaxResult) {
	if result.Income.IsZero() {
		result.EffectiveRate = decimal.Zero
		result.EffectiveRateDefined = false
		return
	}
	result.EffectiveRate = result.Total.Div(result.Income).Mul(hundred)
	result.EffectiveRateDefined = true
}
