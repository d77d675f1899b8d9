package domain

import "github.com/shopspring/decimal"

// TaxMode selects which schedule the composite engine applies
type TaxMode int

const (
	// TaxModeOrdinary applies FICA plus federal, state and local brackets.
	TaxModeOrdinary TaxMode = iota
	// TaxModeCapitalGains applies only the capital-gains table. Used for portfolio withdrawals.
	TaxModeCapitalGains
)

func (m TaxMode) String() string {
	switch m {
	case TaxModeOrdinary:
		return "ordinary"
	case TaxModeCapitalGains:
		return "capital_gains"
	default:
		return "unknown"
	}
}

// TaxResult is the breakdown of one tax computation
type TaxResult struct {
	Income  decimal.Decimal `json:"income"`
	Mode    string          `json:"mode"`
	Federal decimal.Decimal `json:"federal"`
	State   decimal.Decimal `json:"state"`
	Local   decimal.Decimal `json:"local"`
	FICA    decimal.Decimal `json:"fica"`
	Total   decimal.Decimal `json:"total"`

	// EffectiveRate is 100*Total/Income. It is zero, with EffectiveRateDefined false,
	// when Income is zero.
	EffectiveRate        decimal.Decimal `json:"effectiveRate"`
	EffectiveRateDefined bool            `json:"effectiveRateDefined"`
}

// AfterTax returns the income left once Total is paid
func (tr TaxResult) AfterTax() decimal.Decimal {
	return tr.Income.Sub(tr.Total)
}
