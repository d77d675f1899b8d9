package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/rpfire/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	maxAge       = 120
	minStartYear = 1900
	maxStartYear = 3000
)

var (
	minusHundred = decimal.NewFromInt(-100)
	hundred      = decimal.NewFromInt(100)
)

// InputParser handles parsing of simulation inputs from files and forms
type InputParser struct {
	// Now supplies the calendar year used when an input omits start_year.
	Now func() time.Time
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Now: time.Now}
}

// LoadFromFile loads a simulation input from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.SimulationInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes a YAML (or JSON) simulation input, fills defaults and validates it
func (ip *InputParser) Parse(data []byte) (*domain.SimulationInput, error) {
	var input domain.SimulationInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.Prepare(&input); err != nil {
		return nil, err
	}
	return &input, nil
}

// FormField is one input of the interactive forms
type FormField struct {
	Key   string
	Label string
}

var formFields = []FormField{
	{"current_age", "Current age"},
	{"current_net_worth", "Current net worth ($k)"},
	{"current_compensation", "Current compensation ($k)"},
	{"tax_exempt_income", "Tax-exempt income ($k)"},
	{"compensation_growth_pct", "Compensation growth (%)"},
	{"current_spend", "Current spend ($k)"},
	{"required_retirement_spend", "Required retirement spend ($k)"},
	{"spend_growth_pct", "Spend growth (%)"},
	{"withdrawal_rate_pct", "Withdrawal rate (%)"},
	{"stock_return_pct", "Stock return (%)"},
}

// FormFields returns the form inputs in display order
func FormFields() []FormField {
	return append([]FormField(nil), formFields...)
}

// ParseForm builds a simulation input from raw form values keyed by FormFields keys.
// start_year is optional and defaults to the current year.
func (ip *InputParser) ParseForm(values map[string]string) (*domain.SimulationInput, error) {
	var input domain.SimulationInput
	var err error

	if input.CurrentAge, err = formInt(values, "current_age"); err != nil {
		return nil, err
	}
	if raw := strings.TrimSpace(values["start_year"]); raw != "" {
		if input.StartYear, err = formInt(values, "start_year"); err != nil {
			return nil, err
		}
	}

	decimals := []struct {
		key string
		dst *decimal.Decimal
	}{
		{"current_net_worth", &input.CurrentNetWorth},
		{"current_compensation", &input.CurrentCompensation},
		{"tax_exempt_income", &input.TaxExemptIncome},
		{"compensation_growth_pct", &input.CompensationGrowthPct},
		{"current_spend", &input.CurrentSpend},
		{"required_retirement_spend", &input.RequiredRetirementSpend},
		{"spend_growth_pct", &input.SpendGrowthPct},
		{"withdrawal_rate_pct", &input.WithdrawalRatePct},
		{"stock_return_pct", &input.StockReturnPct},
	}
	for _, d := range decimals {
		if *d.dst, err = formDecimal(values, d.key); err != nil {
			return nil, err
		}
	}

	if err := ip.Prepare(&input); err != nil {
		return nil, err
	}
	return &input, nil
}

// Prepare fills defaults on a decoded input and validates it
func (ip *InputParser) Prepare(input *domain.SimulationInput) error {
	ip.applyDefaults(input)
	if err := ip.ValidateInput(input); err != nil {
		return fmt.Errorf("input validation failed: %w", err)
	}
	return nil
}

// ValidateInput rejects inputs the simulator cannot meaningfully project
func (ip *InputParser) ValidateInput(input *domain.SimulationInput) error {
	if input.CurrentAge < 0 || input.CurrentAge > maxAge {
		return fmt.Errorf("current age must be between 0 and %d", maxAge)
	}
	if input.StartYear < minStartYear || input.StartYear > maxStartYear {
		return fmt.Errorf("start year must be between %d and %d", minStartYear, maxStartYear)
	}

	if input.CurrentCompensation.LessThan(decimal.Zero) {
		return fmt.Errorf("current compensation cannot be negative")
	}
	if input.TaxExemptIncome.LessThan(decimal.Zero) {
		return fmt.Errorf("tax-exempt income cannot be negative")
	}
	if input.CurrentSpend.LessThan(decimal.Zero) {
		return fmt.Errorf("current spend cannot be negative")
	}
	if input.RequiredRetirementSpend.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("required retirement spend must be positive")
	}

	growth := map[string]decimal.Decimal{
		"compensation growth": input.CompensationGrowthPct,
		"spend growth":        input.SpendGrowthPct,
		"stock return":        input.StockReturnPct,
	}
	for name, pct := range growth {
		if pct.LessThanOrEqual(minusHundred) {
			return fmt.Errorf("%s must be greater than -100%%", name)
		}
	}
	if input.WithdrawalRatePct.LessThanOrEqual(decimal.Zero) || input.WithdrawalRatePct.GreaterThan(hundred) {
		return fmt.Errorf("withdrawal rate must be greater than 0%% and at most 100%%")
	}
	return nil
}

func (ip *InputParser) applyDefaults(input *domain.SimulationInput) {
	if input.StartYear == 0 {
		now := time.Now
		if ip.Now != nil {
			now = ip.Now
		}
		input.StartYear = now().Year()
	}
}

func formInt(values map[string]string, key string) (int, error) {
	raw := strings.TrimSpace(values[key])
	if raw == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number: %q", key, raw)
	}
	return n, nil
}

func formDecimal(values map[string]string, key string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(values[key])
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%s is required", key)
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be a number: %q", key, raw)
	}
	return d, nil
}

// ExampleInput returns a starter input for a mid-career saver
func ExampleInput() domain.SimulationInput {
	return domain.SimulationInput{
		CurrentAge:              35,
		CurrentNetWorth:         decimal.NewFromInt(250),
		CurrentCompensation:     decimal.NewFromInt(150),
		TaxExemptIncome:         decimal.Zero,
		CompensationGrowthPct:   decimal.NewFromInt(3),
		CurrentSpend:            decimal.NewFromInt(60),
		RequiredRetirementSpend: decimal.NewFromInt(80),
		SpendGrowthPct:          decimal.NewFromInt(2),
		WithdrawalRatePct:       decimal.NewFromInt(4),
		StockReturnPct:          decimal.NewFromInt(7),
	}
}

// FormValues renders an input as raw form strings, the inverse of ParseForm
func FormValues(input domain.SimulationInput) map[string]string {
	return map[string]string{
		"start_year":                strconv.Itoa(input.StartYear),
		"current_age":               strconv.Itoa(input.CurrentAge),
		"current_net_worth":         input.CurrentNetWorth.String(),
		"current_compensation":      input.CurrentCompensation.String(),
		"tax_exempt_income":         input.TaxExemptIncome.String(),
		"compensation_growth_pct":   input.CompensationGrowthPct.String(),
		"current_spend":             input.CurrentSpend.String(),
		"required_retirement_spend": input.RequiredRetirementSpend.String(),
		"spend_growth_pct":          input.SpendGrowthPct.String(),
		"withdrawal_rate_pct":       input.WithdrawalRatePct.String(),
		"stock_return_pct":          input.StockReturnPct.String(),
	}
}

const exampleTemplate = `# rpfire simulation input
# Money is in thousands of dollars; rates are percentages (7 means 7%%).
# start_year defaults to the current year when omitted.
current_age: %d
current_net_worth: %s
current_compensation: %s
tax_exempt_income: %s
compensation_growth_pct: %s
current_spend: %s
required_retirement_spend: %s
spend_growth_pct: %s
withdrawal_rate_pct: %s
stock_return_pct: %s
`

// ExampleYAML renders ExampleInput as a commented YAML file
func ExampleYAML() []byte {
	in := ExampleInput()
	return []byte(fmt.Sprintf(exampleTemplate,
		in.CurrentAge,
		in.CurrentNetWorth.String(),
		in.CurrentCompensation.String(),
		in.TaxExemptIncome.String(),
		in.CompensationGrowthPct.String(),
		in.CurrentSpend.String(),
		in.RequiredRetirementSpend.String(),
		in.SpendGrowthPct.String(),
		in.WithdrawalRatePct.String(),
		in.StockReturnPct.String(),
	))
}
