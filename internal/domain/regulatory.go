package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxRules is a single-year snapshot of every table and constant the tax engine needs.
// It is loaded once (see config.DefaultTaxRules) and treated as read-only afterwards.
type TaxRules struct {
	Year             int              `yaml:"year" json:"year"`
	Jurisdiction     string           `yaml:"jurisdiction" json:"jurisdiction"`
	Federal          BracketTable     `yaml:"federal" json:"federal"`
	State            BracketTable     `yaml:"state" json:"state"`
	Local            BracketTable     `yaml:"local" json:"local"`
	CapitalGains     BracketTable     `yaml:"capital_gains" json:"capital_gains"`
	FICA             FICARules        `yaml:"fica" json:"fica"`
	RetirementLimits RetirementLimits `yaml:"retirement_limits" json:"retirement_limits"`
}

// TaxBracket is one marginal range. A nil Threshold marks the open-ended top bracket.
type TaxBracket struct {
	Threshold *decimal.Decimal `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	Rate      decimal.Decimal  `yaml:"rate" json:"rate"`
}

// IsUnbounded reports whether the bracket has no upper threshold.
func (b TaxBracket) IsUnbounded() bool {
	return b.Threshold == nil
}

// BracketTable is an ordered list of brackets with strictly increasing thresholds,
// starting implicitly at zero.
type BracketTable []TaxBracket

// Validate checks ordering, rate bounds and that only the last bracket is open-ended.
func (bt BracketTable) Validate() error {
	if len(bt) == 0 {
		return fmt.Errorf("bracket table is empty")
	}
	previous := decimal.Zero
	for i, b := range bt {
		if b.Rate.LessThan(decimal.Zero) || b.Rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("bracket %d: rate %s must be in [0, 1)", i, b.Rate.String())
		}
		last := i == len(bt)-1
		if b.IsUnbounded() {
			if !last {
				return fmt.Errorf("bracket %d: only the last bracket may omit its threshold", i)
			}
			continue
		}
		if !b.Threshold.GreaterThan(previous) {
			return fmt.Errorf("bracket %d: threshold %s must exceed %s", i, b.Threshold.String(), previous.String())
		}
		previous = *b.Threshold
		if last {
			return fmt.Errorf("bracket %d: last bracket must be open-ended", i)
		}
	}
	return nil
}

// FICARules contains the payroll tax constants
type FICARules struct {
	SocialSecurityRate     decimal.Decimal `yaml:"social_security_rate" json:"social_security_rate"`
	SocialSecurityWageBase decimal.Decimal `yaml:"social_security_wage_base" json:"social_security_wage_base"`
	MedicareRate           decimal.Decimal `yaml:"medicare_rate" json:"medicare_rate"`
	AdditionalMedicareRate decimal.Decimal `yaml:"additional_medicare_rate" json:"additional_medicare_rate"`
	AdditionalThreshold    decimal.Decimal `yaml:"additional_medicare_threshold" json:"additional_medicare_threshold"`
}

// Validate checks that every FICA value is usable
func (f FICARules) Validate() error {
	rates := map[string]decimal.Decimal{
		"social_security_rate":     f.SocialSecurityRate,
		"medicare_rate":            f.MedicareRate,
		"additional_medicare_rate": f.AdditionalMedicareRate,
	}
	for name, r := range rates {
		if r.LessThan(decimal.Zero) || r.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s must be in [0, 1)", name)
		}
	}
	if f.SocialSecurityWageBase.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("social_security_wage_base must be positive")
	}
	if f.AdditionalThreshold.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("additional_medicare_threshold must be positive")
	}
	return nil
}

// RetirementLimits are the annual contribution limits published with the snapshot.
// They are informational and rendered with the assumptions.
type RetirementLimits struct {
	Traditional401k decimal.Decimal `yaml:"401k" json:"401k"`
	HSA             decimal.Decimal `yaml:"hsa" json:"hsa"`
}

// Validate checks every table and constant in the snapshot
func (r *TaxRules) Validate() error {
	tables := []struct {
		name  string
		table BracketTable
	}{
		{"federal", r.Federal},
		{"state", r.State},
		{"local", r.Local},
		{"capital_gains", r.CapitalGains},
	}
	for _, t := range tables {
		if err := t.table.Validate(); err != nil {
			return fmt.Errorf("%s brackets: %w", t.name, err)
		}
	}
	if err := r.FICA.Validate(); err != nil {
		return fmt.Errorf("fica: %w", err)
	}
	if r.RetirementLimits.Traditional401k.LessThan(decimal.Zero) || r.RetirementLimits.HSA.LessThan(decimal.Zero) {
		return fmt.Errorf("retirement limits cannot be negative")
	}
	return nil
}
