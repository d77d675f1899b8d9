package domain

import (
	"github.com/shopspring/decimal"
)

// ThousandsMultiplier converts input money (entered in thousands) to whole units
var ThousandsMultiplier = decimal.NewFromInt(1000)

// SimulationInput is the validated record handed to the simulator.
// Money is in thousands; rates are percentages (7 means 7%).
type SimulationInput struct {
	StartYear               int             `yaml:"start_year" json:"start_year"`
	CurrentAge              int             `yaml:"current_age" json:"current_age"`
	CurrentNetWorth         decimal.Decimal `yaml:"current_net_worth" json:"current_net_worth"`
	CurrentCompensation     decimal.Decimal `yaml:"current_compensation" json:"current_compensation"`
	TaxExemptIncome         decimal.Decimal `yaml:"tax_exempt_income" json:"tax_exempt_income"`
	CompensationGrowthPct   decimal.Decimal `yaml:"compensation_growth_pct" json:"compensation_growth_pct"`
	CurrentSpend            decimal.Decimal `yaml:"current_spend" json:"current_spend"`
	RequiredRetirementSpend decimal.Decimal `yaml:"required_retirement_spend" json:"required_retirement_spend"`
	SpendGrowthPct          decimal.Decimal `yaml:"spend_growth_pct" json:"spend_growth_pct"`
	WithdrawalRatePct       decimal.Decimal `yaml:"withdrawal_rate_pct" json:"withdrawal_rate_pct"`
	StockReturnPct          decimal.Decimal `yaml:"stock_return_pct" json:"stock_return_pct"`
}

// WorkingStatus is the status reported on a year record
type WorkingStatus string

const (
	StatusWorking WorkingStatus = "Working"
	StatusRetired WorkingStatus = "Retired"
)

// YearRecord is one row of the projection. Money is rounded to whole units and
// EffectiveTaxRate to one decimal place.
type YearRecord struct {
	Year                     int             `json:"year"`
	Age                      int             `json:"age"`
	Status                   WorkingStatus   `json:"status"`
	AnnualIncome             decimal.Decimal `json:"annualIncome"`
	EffectiveTaxRate         decimal.Decimal `json:"effectiveTaxRate"`
	AfterTaxIncome           decimal.Decimal `json:"afterTaxIncome"`
	AnnualSpend              decimal.Decimal `json:"annualSpend"`
	AnnualSavings            decimal.Decimal `json:"annualSavings"`
	NetWorth                 decimal.Decimal `json:"netWorth"`
	WithdrawalAmount         decimal.Decimal `json:"withdrawalAmount"`
	PotentialRetirementSpend decimal.Decimal `json:"potentialRetirementSpend"`
}

// IsRetired reports whether the record was produced in the Retired state
func (yr YearRecord) IsRetired() bool {
	return yr.Status == StatusRetired
}

// StopReason explains why the projection ended
type StopReason string

const (
	StopHorizon           StopReason = "horizon"
	StopDepleted          StopReason = "depleted"
	StopRetirementHorizon StopReason = "retirement_horizon"
)

// SimulationSummary condenses the projection into the headline answers
type SimulationSummary struct {
	// EligibleYear is the first year the portfolio could fund the required spend; zero if never.
	EligibleYear   int             `json:"eligibleYear,omitempty"`
	EligibleAge    int             `json:"eligibleAge,omitempty"`
	RetirementYear int             `json:"retirementYear,omitempty"`
	RetirementAge  int             `json:"retirementAge,omitempty"`
	YearsSimulated int             `json:"yearsSimulated"`
	FinalNetWorth  decimal.Decimal `json:"finalNetWorth"`
	Depleted       bool            `json:"depleted"`
	StopReason     StopReason      `json:"stopReason"`
}

// CanRetire reports whether the projection ever reached retirement
func (s SimulationSummary) CanRetire() bool {
	return s.RetirementYear != 0
}

// SimulationResult is everything a renderer needs for one run
type SimulationResult struct {
	Input   SimulationInput   `json:"input"`
	TaxYear int               `json:"taxYear"`
	Records []YearRecord      `json:"records"`
	Summary SimulationSummary `json:"summary"`

	// Rules is the snapshot the run was taxed under; renderers list its assumptions.
	Rules *TaxRules `json:"-" yaml:"-"`
}
