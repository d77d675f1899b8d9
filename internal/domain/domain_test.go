package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threshold(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func validFICA() FICARules {
	return FICARules{
		SocialSecurityRate:     rate("0.062"),
		SocialSecurityWageBase: rate("168600"),
		MedicareRate:           rate("0.0145"),
		AdditionalMedicareRate: rate("0.009"),
		AdditionalThreshold:    rate("200000"),
	}
}

func simpleTable() BracketTable {
	return BracketTable{
		{Threshold: threshold("10000"), Rate: rate("0.1")},
		{Rate: rate("0.2")},
	}
}

func TestBracketTable_Validate(t *testing.T) {
	tests := []struct {
		name    string
		table   BracketTable
		wantErr string
	}{
		{"valid", simpleTable(), ""},
		{"single open bracket", BracketTable{{Rate: rate("0.15")}}, ""},
		{"empty", BracketTable{}, "bracket table is empty"},
		{
			"negative rate",
			BracketTable{{Threshold: threshold("100"), Rate: rate("-0.1")}, {Rate: rate("0.2")}},
			"rate -0.1 must be in [0, 1)",
		},
		{
			"rate of one",
			BracketTable{{Rate: rate("1")}},
			"must be in [0, 1)",
		},
		{
			"open bracket before the end",
			BracketTable{{Rate: rate("0.1")}, {Rate: rate("0.2")}},
			"only the last bracket may omit its threshold",
		},
		{
			"thresholds not increasing",
			BracketTable{
				{Threshold: threshold("100"), Rate: rate("0.1")},
				{Threshold: threshold("100"), Rate: rate("0.2")},
				{Rate: rate("0.3")},
			},
			"threshold 100 must exceed 100",
		},
		{
			"bounded last bracket",
			BracketTable{{Threshold: threshold("100"), Rate: rate("0.1")}},
			"last bracket must be open-ended",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFICARules_Validate(t *testing.T) {
	assert.NoError(t, validFICA().Validate())

	f := validFICA()
	f.MedicareRate = rate("1.5")
	assert.ErrorContains(t, f.Validate(), "medicare_rate must be in [0, 1)")

	f = validFICA()
	f.SocialSecurityWageBase = decimal.Zero
	assert.ErrorContains(t, f.Validate(), "social_security_wage_base must be positive")

	f = validFICA()
	f.AdditionalThreshold = rate("-1")
	assert.ErrorContains(t, f.Validate(), "additional_medicare_threshold must be positive")
}

func TestTaxRules_Validate(t *testing.T) {
	rules := TaxRules{
		Year:         2024,
		Federal:      simpleTable(),
		State:        simpleTable(),
		Local:        simpleTable(),
		CapitalGains: simpleTable(),
		FICA:         validFICA(),
	}
	require.NoError(t, rules.Validate())

	broken := rules
	broken.Local = BracketTable{}
	assert.ErrorContains(t, broken.Validate(), "local brackets: bracket table is empty")

	broken = rules
	broken.FICA.SocialSecurityRate = rate("2")
	assert.ErrorContains(t, broken.Validate(), "fica: social_security_rate")

	broken = rules
	broken.RetirementLimits.HSA = rate("-1")
	assert.ErrorContains(t, broken.Validate(), "retirement limits cannot be negative")
}

func TestTaxBracket_IsUnbounded(t *testing.T) {
	assert.True(t, TaxBracket{Rate: rate("0.37")}.IsUnbounded())
	assert.False(t, TaxBracket{Threshold: threshold("11600"), Rate: rate("0.1")}.IsUnbounded())
}

func TestTaxMode_String(t *testing.T) {
	assert.Equal(t, "ordinary", TaxModeOrdinary.String())
	assert.Equal(t, "capital_gains", TaxModeCapitalGains.String())
	assert.Equal(t, "unknown", TaxMode(7).String())
}

func TestTaxResult_AfterTax(t *testing.T) {
	tr := TaxResult{Income: rate("50000"), Total: rate("14402.52")}
	assert.True(t, tr.AfterTax().Equal(rate("35597.48")))
}

func TestYearRecordAndSummary(t *testing.T) {
	assert.True(t, YearRecord{Status: StatusRetired}.IsRetired())
	assert.False(t, YearRecord{Status: StatusWorking}.IsRetired())

	assert.False(t, SimulationSummary{}.CanRetire())
	assert.True(t, SimulationSummary{RetirementYear: 2031}.CanRetire())
}
