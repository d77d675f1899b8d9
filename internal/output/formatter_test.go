package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/rpfire/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRules() *domain.TaxRules {
	threshold := decimal.NewFromInt(44625)
	return &domain.TaxRules{
		Year:         2024,
		Jurisdiction: "NYC",
		CapitalGains: domain.BracketTable{
			{Threshold: &threshold, Rate: decimal.Zero},
			{Rate: decimal.NewFromFloat(0.15)},
		},
		FICA: domain.FICARules{
			SocialSecurityRate:     decimal.NewFromFloat(0.062),
			SocialSecurityWageBase: decimal.NewFromInt(168600),
			MedicareRate:           decimal.NewFromFloat(0.0145),
			AdditionalMedicareRate: decimal.NewFromFloat(0.009),
			AdditionalThreshold:    decimal.NewFromInt(200000),
		},
		RetirementLimits: domain.RetirementLimits{
			Traditional401k: decimal.NewFromInt(23000),
			HSA:             decimal.NewFromInt(4150),
		},
	}
}

func buildTestResult() *domain.SimulationResult {
	rec := func(year int, status domain.WorkingStatus, netWorth, withdrawal int64) domain.YearRecord {
		return domain.YearRecord{
			Year:                     year,
			Age:                      year - 1985,
			Status:                   status,
			AnnualIncome:             decimal.NewFromInt(150000),
			EffectiveTaxRate:         decimal.NewFromFloat(33.4),
			AfterTaxIncome:           decimal.NewFromInt(99900),
			AnnualSpend:              decimal.NewFromInt(60000),
			AnnualSavings:            decimal.NewFromInt(39900),
			NetWorth:                 decimal.NewFromInt(netWorth),
			WithdrawalAmount:         decimal.NewFromInt(withdrawal),
			PotentialRetirementSpend: decimal.NewFromInt(74694),
		}
	}
	return &domain.SimulationResult{
		Input: domain.SimulationInput{
			StartYear:               2025,
			CurrentAge:              40,
			CompensationGrowthPct:   decimal.NewFromInt(3),
			SpendGrowthPct:          decimal.NewFromInt(2),
			WithdrawalRatePct:       decimal.NewFromInt(4),
			StockReturnPct:          decimal.NewFromInt(7),
			RequiredRetirementSpend: decimal.NewFromInt(80),
		},
		TaxYear: 2024,
		Records: []domain.YearRecord{
			rec(2025, domain.StatusWorking, 2065704, 0),
			rec(2026, domain.StatusRetired, 2210303, 86243),
		},
		Summary: domain.SimulationSummary{
			EligibleYear:   2026,
			EligibleAge:    41,
			RetirementYear: 2026,
			RetirementAge:  41,
			YearsSimulated: 2,
			FinalNetWorth:  decimal.NewFromInt(2210303),
			StopReason:     domain.StopHorizon,
		},
		Rules: testRules(),
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0"},
		{"999", "$999"},
		{"1234", "$1,234"},
		{"1234567.49", "$1,234,567"},
		{"1234567.5", "$1,234,568"},
		{"-5000", "-$5,000"},
		{"-0.4", "$0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)), "input %s", tt.in)
	}
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "12.3%", FormatRate(decimal.NewFromFloat(12.34)))
	assert.Equal(t, "0.0%", FormatRate(decimal.Zero))
	assert.Equal(t, "37.1%", FormatRate(decimal.RequireFromString("37.14822")))
}

func TestGetFormatterByName(t *testing.T) {
	tests := map[string]string{
		"console":     "console",
		"Table":       "console",
		" text ":      "console",
		"csv":         "csv",
		"html-report": "html",
		"json-pretty": "json",
		"JSON":        "json",
	}
	for in, want := range tests {
		f := GetFormatterByName(in)
		require.NotNil(t, f, "formatter for %q", in)
		assert.Equal(t, want, f.Name())
	}
	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "html", "json"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "table")
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestResult())
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "RETIREMENT PROJECTION (2024 tax rules)")
	for _, col := range recordColumns {
		assert.Contains(t, content, col)
	}
	assert.Contains(t, content, "$2,065,704")
	assert.Contains(t, content, "$86,243")
	assert.Contains(t, content, "33.4%")
	assert.Contains(t, content, "Retired")
	assert.Contains(t, content, "2026 (age 41)")
	assert.Contains(t, content, "projection horizon reached after 2 years")
	assert.Contains(t, content, "Contribution limits (not modeled): 401(k) $23,000, HSA $4,150")
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestResult())
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per year")
	assert.Len(t, rows[0], 11)
	assert.Equal(t, []string{"2026", "41", "Retired", "150000", "33.4", "99900", "60000", "39900", "2210303", "86243", "74694"}, rows[2])
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestResult())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "records")
	assert.Contains(t, decoded, "summary")
	assert.NotContains(t, decoded, "Rules", "rules stay out of the JSON payload")
	assert.Contains(t, string(out), `"netWorth": "2065704"`)
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestResult())
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "<title>Retirement Projection</title>")
	assert.Contains(t, content, `<tr class="retired">`)
	assert.Contains(t, content, "$2,210,303")
	assert.Contains(t, content, "Assumptions")
	assert.NotContains(t, content, "<form", "standalone report has no form")
}

func TestRenderHTMLPage_FormAndError(t *testing.T) {
	var b strings.Builder
	err := RenderHTMLPage(&b, HTMLPage{
		Title:    "rpfire",
		ShowForm: true,
		Action:   "/",
		Fields:   []HTMLField{{Key: "current_age", Label: "Current age", Value: "35"}},
		Error:    "current_age must be a whole number: \"<x>\"",
	})
	require.NoError(t, err)
	content := b.String()

	assert.Contains(t, content, `<form method="post" action="/">`)
	assert.Contains(t, content, `name="current_age" value="35"`)
	assert.Contains(t, content, "&lt;x&gt;", "errors are escaped")
	assert.NotContains(t, content, "<h2>Summary</h2>")
}

func TestWriteFormatted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, WriteFormatted(CSVFormatter{}, buildTestResult(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Year,Age,Status"))

	failing := FormatterFunc{ID: "broken", F: func(*domain.SimulationResult) ([]byte, error) {
		return nil, assert.AnError
	}}
	err = WriteFormatted(failing, buildTestResult(), path)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "broken formatter")
}

func TestAssumptions(t *testing.T) {
	result := buildTestResult()
	lines := Assumptions(result)

	assert.Contains(t, lines[0], "7.0%")
	assert.Contains(t, strings.Join(lines, "\n"), "Social Security: 6.2% up to $168,600; Medicare 1.45% plus 0.9% above $200,000")
	assert.Contains(t, strings.Join(lines, "\n"), "Capital gains: 0% bracket up to $44,625")

	result.Rules = nil
	assert.Len(t, Assumptions(result), 3, "only input assumptions without a snapshot")
}

func TestRecordRowMatchesColumns(t *testing.T) {
	result := buildTestResult()
	columns := RecordColumns()

	require.Len(t, columns, 11)
	for _, r := range result.Records {
		assert.Len(t, RecordRow(r), len(columns))
	}

	columns[0] = "changed"
	assert.Equal(t, "Year", RecordColumns()[0], "RecordColumns should return a copy")
}

func TestSummaryLines(t *testing.T) {
	lines := SummaryLines(domain.SimulationSummary{
		EligibleYear:   2027,
		EligibleAge:    42,
		YearsSimulated: 40,
		FinalNetWorth:  decimal.NewFromInt(-5000),
		Depleted:       true,
		StopReason:     domain.StopDepleted,
	})

	require.Len(t, lines, 5)
	assert.Equal(t, "2027 (age 42)", lines[0].Value)
	assert.Equal(t, "never", lines[1].Value)
	assert.Equal(t, "40", lines[2].Value)
	assert.Equal(t, "-$5,000", lines[3].Value)
	assert.Equal(t, "net worth went negative", lines[4].Value)
}
