package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/rpfire/internal/config"
	"github.com/rgehrsitz/rpfire/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates the tax engine and the retirement simulator
type CalculationEngine struct {
	TaxCalc   *TaxCalculator
	Simulator *Simulator
	Logger    Logger
	Debug     bool // Enable debug output for detailed calculations
}

// NewCalculationEngine creates a new calculation engine using the embedded tax snapshot
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRules(config.DefaultTaxRules())
}

// NewCalculationEngineWithRules creates a new calculation engine for an explicit tax snapshot
func NewCalculationEngineWithRules(rules domain.TaxRules) *CalculationEngine {
	taxCalc := NewTaxCalculator(rules)
	return &CalculationEngine{
		TaxCalc:   taxCalc,
		Simulator: NewSimulator(taxCalc),
		Logger:    NopLogger{},
	}
}

// SetLogger sets the engine logger; nil selects the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.Simulator.Logger = l
}

// TaxYear returns the year of the active tax snapshot
func (ce *CalculationEngine) TaxYear() int {
	return ce.TaxCalc.Rules.Year
}

// CalculateTaxes computes a tax breakdown for a single income amount
func (ce *CalculationEngine) CalculateTaxes(income decimal.Decimal, mode domain.TaxMode) domain.TaxResult {
	return ce.TaxCalc.CalculateTaxes(income, mode)
}

// GrossWithdrawal returns the capital-gains withdrawal that nets afterTaxSpend
func (ce *CalculationEngine) GrossWithdrawal(afterTaxSpend decimal.Decimal) (decimal.Decimal, error) {
	return ce.TaxCalc.GrossWithdrawalFor(afterTaxSpend, ce.Simulator.Inversion)
}

// RunSimulation projects one input and summarizes the outcome
func (ce *CalculationEngine) RunSimulation(ctx context.Context, input domain.SimulationInput) (*domain.SimulationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ce.Logger.Debugf("simulating from %d at age %d with %s tax rules", input.StartYear, input.CurrentAge, ce.describeRules())
	trajectory, err := ce.Simulator.Simulate(input)
	if err != nil {
		ce.Logger.Errorf("simulation failed: %v", err)
		return nil, fmt.Errorf("simulation failed: %w", err)
	}

	result := &domain.SimulationResult{
		Input:   input,
		TaxYear: ce.TaxYear(),
		Records: trajectory.Records,
		Summary: Summarize(trajectory),
		Rules:   &ce.TaxCalc.Rules,
	}
	ce.Logger.Infof("simulated %d years, stop reason %s", result.Summary.YearsSimulated, result.Summary.StopReason)
	return result, nil
}

// Summarize derives the headline answers from a trajectory
func Summarize(t *Trajectory) domain.SimulationSummary {
	summary := domain.SimulationSummary{
		YearsSimulated: len(t.Records),
		FinalNetWorth:  t.FinalNetWorth.Round(0),
		Depleted:       t.StopReason == domain.StopDepleted,
		StopReason:     t.StopReason,
	}
	if t.EligibleIndex >= 0 && t.EligibleIndex < len(t.Records) {
		summary.EligibleYear = t.Records[t.EligibleIndex].Year
		summary.EligibleAge = t.Records[t.EligibleIndex].Age
	}
	for _, r := range t.Records {
		if r.IsRetired() {
			summary.RetirementYear = r.Year
			summary.RetirementAge = r.Age
			break
		}
	}
	return summary
}

func (ce *CalculationEngine) describeRules() string {
	if ce.TaxCalc.Rules.Jurisdiction == "" {
		return fmt.Sprintf("%d", ce.TaxCalc.Rules.Year)
	}
	return fmt.Sprintf("%d %s", ce.TaxCalc.Rules.Year, ce.TaxCalc.Rules.Jurisdiction)
}
