package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/rpfire/internal/domain"
)

// CSVFormatter writes one row per projected year with unformatted numbers.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Year", "Age", "Status", "AnnualIncome", "EffectiveTaxRate", "AfterTaxIncome", "AnnualSpend",
		"AnnualSavings", "NetWorth", "WithdrawalAmount", "PotentialRetirementSpend",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range result.Records {
		row := []string{
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Age),
			string(r.Status),
			r.AnnualIncome.StringFixed(0),
			r.EffectiveTaxRate.StringFixed(1),
			r.AfterTaxIncome.StringFixed(0),
			r.AnnualSpend.StringFixed(0),
			r.AnnualSavings.StringFixed(0),
			r.NetWorth.StringFixed(0),
			r.WithdrawalAmount.StringFixed(0),
			r.PotentialRetirementSpend.StringFixed(0),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
