package output

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rgehrsitz/rpfire/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(result *domain.SimulationResult) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.SimulationResult) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.SimulationResult) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                      { return ff.ID }

// WriteFormatted runs a formatter and writes its output to filename.
func WriteFormatted(f Formatter, result *domain.SimulationResult, filename string) error {
	data, err := f.Format(result)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVFormatter{},
	HTMLFormatter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter, or nil if none matches.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"table":       "console",
	"text":        "console",
	"html-report": "html",
	"json-pretty": "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// recordColumns are the year-record headers shared by the tabular formatters.
var recordColumns = []string{
	"Year", "Age", "Status", "Income", "Tax Rate", "After Tax", "Spend",
	"Savings", "Net Worth", "Withdrawal", "Potential Spend",
}

func displayRow(r domain.YearRecord) []string {
	return []string{
		fmt.Sprintf("%d", r.Year),
		fmt.Sprintf("%d", r.Age),
		string(r.Status),
		FormatCurrency(r.AnnualIncome),
		FormatRate(r.EffectiveTaxRate),
		FormatCurrency(r.AfterTaxIncome),
		FormatCurrency(r.AnnualSpend),
		FormatCurrency(r.AnnualSavings),
		FormatCurrency(r.NetWorth),
		FormatCurrency(r.WithdrawalAmount),
		FormatCurrency(r.PotentialRetirementSpend),
	}
}

// describeStop explains why a projection ended.
func describeStop(s domain.SimulationSummary) string {
	switch s.StopReason {
	case domain.StopDepleted:
		return "net worth went negative"
	case domain.StopRetirementHorizon:
		return "retirement horizon reached"
	default:
		return fmt.Sprintf("projection horizon reached after %d years", s.YearsSimulated)
	}
}

// describeMilestone renders "2031 (age 42)" or "never" for an unset year.
func describeMilestone(year, age int) string {
	if year == 0 {
		return "never"
	}
	return fmt.Sprintf("%d (age %d)", year, age)
}

// RecordColumns returns the year-record headers in display order
func RecordColumns() []string {
	return append([]string(nil), recordColumns...)
}

// RecordRow renders one year record as display cells matching RecordColumns
func RecordRow(r domain.YearRecord) []string {
	return displayRow(r)
}

// SummaryLine is one labelled headline of a projection
type SummaryLine struct {
	Label string
	Value string
}

// SummaryLines returns the headline answers in display order
func SummaryLines(s domain.SimulationSummary) []SummaryLine {
	return []SummaryLine{
		{"Retirement affordable:", describeMilestone(s.EligibleYear, s.EligibleAge)},
		{"Retired:", describeMilestone(s.RetirementYear, s.RetirementAge)},
		{"Years simulated:", fmt.Sprintf("%d", s.YearsSimulated)},
		{"Final net worth:", FormatCurrency(s.FinalNetWorth)},
		{"Stopped:", describeStop(s)},
	}
}
