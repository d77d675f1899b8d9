package calculation

import (
	"fmt"

	"github.com/rgehrsitz/rpfire/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultMaxYears is the projection horizon in years
	DefaultMaxYears = 40
	// DefaultRetirementHorizonYears is how long retirement is projected before stopping
	DefaultRetirementHorizonYears = 10
)

// phase is the simulator's working/retired state.
//
//	phaseWorking  -> phaseEligible  (portfolio can fund the required spend)
//	phaseEligible -> phaseRetired   (any year after the first)
//
// There is no path back to an earlier phase.
type phase int

const (
	phaseWorking phase = iota
	phaseEligible
	phaseRetired
)

func (p phase) status() domain.WorkingStatus {
	if p == phaseRetired {
		return domain.StatusRetired
	}
	return domain.StatusWorking
}

// simulationState is the mutable state of one run
type simulationState struct {
	yearIndex         int
	phase             phase
	netWorth          decimal.Decimal
	compensation      decimal.Decimal
	annualSpend       decimal.Decimal
	yearsInRetirement int
}

func (s simulationState) isFirstYear() bool {
	return s.yearIndex == 0
}

// yearParameters are the per-run constants derived once from the input
type yearParameters struct {
	startYear       int
	startAge        int
	taxExemptIncome decimal.Decimal
	requiredSpend   decimal.Decimal
	compGrowth      decimal.Decimal // 1 + growth
	spendGrowth     decimal.Decimal // 1 + growth
	stockReturn     decimal.Decimal // 1 + return
	withdrawalRate  decimal.Decimal // fraction
	requiredGross   decimal.Decimal // withdrawal that nets requiredSpend
}

// Trajectory is the raw output of a run plus the facts needed to summarize it
type Trajectory struct {
	Records []domain.YearRecord
	// EligibleIndex is the year index where eligibility was detected, or -1.
	EligibleIndex int
	// FinalNetWorth is the unrounded closing net worth of the last year
	FinalNetWorth decimal.Decimal
	StopReason    domain.StopReason
}

// Simulator projects net worth year by year through working and retired phases
type Simulator struct {
	TaxCalc                *TaxCalculator
	Inversion              InversionOptions
	MaxYears               int
	RetirementHorizonYears int
	Logger                 Logger
}

// NewSimulator creates a simulator with the default horizons
func NewSimulator(taxCalc *TaxCalculator) *Simulator {
	return &Simulator{
		TaxCalc:                taxCalc,
		Inversion:              DefaultInversionOptions(),
		MaxYears:               DefaultMaxYears,
		RetirementHorizonYears: DefaultRetirementHorizonYears,
		Logger:                 NopLogger{},
	}
}

// Run simulates the input and returns the year records
func (s *Simulator) Run(input domain.SimulationInput) ([]domain.YearRecord, error) {
	trajectory, err := s.Simulate(input)
	if err != nil {
		return nil, err
	}
	return trajectory.Records, nil
}

// Simulate runs the projection. Every call allocates its own state.
func (s *Simulator) Simulate(input domain.SimulationInput) (*Trajectory, error) {
	params, err := s.newYearParameters(input)
	if err != nil {
		return nil, err
	}
	state := simulationState{
		phase:        phaseWorking,
		netWorth:     input.CurrentNetWorth.Mul(domain.ThousandsMultiplier),
		compensation: input.CurrentCompensation.Mul(domain.ThousandsMultiplier),
		annualSpend:  input.CurrentSpend.Mul(domain.ThousandsMultiplier),
	}

	trajectory := &Trajectory{
		Records:       make([]domain.YearRecord, 0, s.maxYears()),
		EligibleIndex: -1,
		StopReason:    domain.StopHorizon,
	}

	for state.yearIndex < s.maxYears() {
		before := state.phase
		next, record := s.step(state, params)
		trajectory.Records = append(trajectory.Records, record)
		trajectory.FinalNetWorth = next.netWorth

		if before == phaseWorking && next.phase != phaseWorking {
			trajectory.EligibleIndex = state.yearIndex
			s.logger().Infof("retirement affordable in %d (age %d)", record.Year, record.Age)
		}
		if before != phaseRetired && next.phase == phaseRetired {
			s.logger().Infof("retiring in %d (age %d)", record.Year, record.Age)
		}

		if next.netWorth.LessThan(decimal.Zero) {
			trajectory.StopReason = domain.StopDepleted
			s.logger().Warnf("net worth depleted in %d", record.Year)
			break
		}
		if next.phase == phaseRetired && next.yearsInRetirement > s.retirementHorizon() {
			trajectory.StopReason = domain.StopRetirementHorizon
			break
		}

		next.yearIndex++
		state = next
	}
	return trajectory, nil
}

// step advances the state by one year and returns the record for that year
func (s *Simulator) step(state simulationState, p yearParameters) (simulationState, domain.YearRecord) {
	first := state.isFirstYear()

	// What the portfolio could fund today, reported regardless of status.
	potentialGross := state.netWorth.Mul(p.withdrawalRate)
	potentialAfterTax := s.TaxCalc.AfterTax(potentialGross, domain.TaxModeCapitalGains)

	if state.phase != phaseRetired && !first {
		state.annualSpend = decimal.Min(state.annualSpend.Mul(p.spendGrowth), p.requiredSpend)
	}

	if state.phase == phaseWorking && potentialGross.GreaterThanOrEqual(p.requiredGross) {
		state.phase = phaseEligible
	}

	if state.phase == phaseEligible && !first {
		state.phase = phaseRetired
		state.annualSpend = p.requiredSpend
	}

	var (
		annualIncome   decimal.Decimal
		taxes          domain.TaxResult
		afterTaxIncome decimal.Decimal
		annualSavings  decimal.Decimal
		withdrawal     = decimal.Zero
	)

	if state.phase != phaseRetired {
		if first {
			annualIncome = state.compensation.Add(p.taxExemptIncome)
		} else {
			annualIncome = state.compensation.Mul(p.compGrowth).Add(p.taxExemptIncome)
		}
		taxable := annualIncome.Sub(p.taxExemptIncome)
		taxes = s.TaxCalc.CalculateTaxes(taxable, domain.TaxModeOrdinary)
		afterTaxIncome = taxable.Sub(taxes.Total).Add(p.taxExemptIncome)
		annualSavings = afterTaxIncome.Sub(state.annualSpend)

		if first {
			state.netWorth = state.netWorth.Add(annualSavings)
		} else {
			state.netWorth = state.netWorth.Mul(p.stockReturn).Add(annualSavings)
			state.compensation = state.compensation.Mul(p.compGrowth)
		}
	} else {
		state.yearsInRetirement++
		withdrawal = p.requiredGross
		annualIncome = p.requiredGross
		taxes = s.TaxCalc.CalculateTaxes(annualIncome, domain.TaxModeCapitalGains)
		afterTaxIncome = annualIncome.Sub(taxes.Total)
		state.annualSpend = p.requiredSpend
		annualSavings = afterTaxIncome.Sub(state.annualSpend)

		if first {
			state.netWorth = state.netWorth.Add(annualSavings)
		} else {
			state.netWorth = state.netWorth.Mul(p.stockReturn).Add(annualSavings)
		}
	}

	record := domain.YearRecord{
		Year:                     p.startYear + state.yearIndex,
		Age:                      p.startAge + state.yearIndex,
		Status:                   state.phase.status(),
		AnnualIncome:             annualIncome.Round(0),
		EffectiveTaxRate:         taxes.EffectiveRate.Round(1),
		AfterTaxIncome:           afterTaxIncome.Round(0),
		AnnualSpend:              state.annualSpend.Round(0),
		AnnualSavings:            annualSavings.Round(0),
		NetWorth:                 state.netWorth.Round(0),
		WithdrawalAmount:         withdrawal.Round(0),
		PotentialRetirementSpend: potentialAfterTax.Round(0),
	}

	s.logger().Debugf("%d age=%d status=%s income=%s tax=%s%% spend=%s networth=%s",
		record.Year, record.Age, record.Status, record.AnnualIncome.String(),
		record.EffectiveTaxRate.StringFixed(1), record.AnnualSpend.String(), record.NetWorth.String())

	return state, record
}

func (s *Simulator) newYearParameters(input domain.SimulationInput) (yearParameters, error) {
	one := decimal.NewFromInt(1)
	p := yearParameters{
		startYear:       input.StartYear,
		startAge:        input.CurrentAge,
		taxExemptIncome: input.TaxExemptIncome.Mul(domain.ThousandsMultiplier),
		requiredSpend:   input.RequiredRetirementSpend.Mul(domain.ThousandsMultiplier),
		compGrowth:      one.Add(input.CompensationGrowthPct.Div(hundred)),
		spendGrowth:     one.Add(input.SpendGrowthPct.Div(hundred)),
		stockReturn:     one.Add(input.StockReturnPct.Div(hundred)),
		withdrawalRate:  input.WithdrawalRatePct.Div(hundred),
	}

	// The required spend is fixed for the run, so one inversion serves every year.
	requiredGross, err := s.TaxCalc.GrossWithdrawalFor(p.requiredSpend, s.Inversion)
	if err != nil {
		return p, fmt.Errorf("required retirement withdrawal: %w", err)
	}
	p.requiredGross = requiredGross
	return p, nil
}

func (s *Simulator) maxYears() int {
	if s.MaxYears <= 0 {
		return DefaultMaxYears
	}
	return s.MaxYears
}

func (s *Simulator) retirementHorizon() int {
	if s.RetirementHorizonYears <= 0 {
		return DefaultRetirementHorizonYears
	}
	return s.RetirementHorizonYears
}

func (s *Simulator) logger() Logger {
	if s.Logger == nil {
		return NopLogger{}
	}
	return s.Logger
}
