package calculation

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rgehrsitz/rpfire/internal/config"
	"github.com/rgehrsitz/rpfire/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.TaxCalc, "Should initialize tax calculator")
	assert.NotNil(t, engine.Simulator, "Should initialize simulator")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.Same(t, engine.TaxCalc, engine.Simulator.TaxCalc, "Simulator should share the tax calculator")
	assert.Equal(t, 2024, engine.TaxYear())
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)

	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")
	assert.Equal(t, customLogger, engine.Simulator.Logger, "Should pass logger to the simulator")

	engine.SetLogger(nil)

	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
	assert.IsType(t, NopLogger{}, engine.Simulator.Logger)
}

func TestCalculationEngine_RunSimulation(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	result, err := engine.RunSimulation(context.Background(), baseInput())
	require.NoError(t, err)

	assert.Equal(t, 2024, result.TaxYear)
	assert.Equal(t, baseInput().StartYear, result.Input.StartYear)
	assert.Len(t, result.Records, 13, "two working years then eleven retired years")

	summary := result.Summary
	assert.True(t, summary.CanRetire())
	assert.Equal(t, 2027, summary.EligibleYear)
	assert.Equal(t, 42, summary.EligibleAge)
	assert.Equal(t, 2027, summary.RetirementYear)
	assert.Equal(t, 42, summary.RetirementAge)
	assert.Equal(t, 13, summary.YearsSimulated)
	assert.False(t, summary.Depleted)
	assert.Equal(t, domain.StopRetirementHorizon, summary.StopReason)
	assert.True(t, summary.FinalNetWorth.Equal(result.Records[12].NetWorth))

	assert.True(t, logger.contains("INFO: retiring in"), "Should log the retirement transition")
	assert.True(t, logger.contains("DEBUG: simulating from"), "Should log the run parameters")
}

func TestCalculationEngine_RunSimulation_EligibilityLag(t *testing.T) {
	input := baseInput()
	input.CurrentNetWorth = dec("10000")

	result, err := NewCalculationEngine().RunSimulation(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 2025, result.Summary.EligibleYear)
	assert.Equal(t, 2026, result.Summary.RetirementYear)
	assert.Equal(t, 41, result.Summary.RetirementAge)
}

func TestCalculationEngine_RunSimulation_Depleted(t *testing.T) {
	input := baseInput()
	input.CurrentNetWorth = dec("10")
	input.CurrentCompensation = dec("0")
	input.CurrentSpend = dec("50")

	logger := &TestLogger{}
	engine := NewCalculationEngine()
	engine.SetLogger(logger)

	result, err := engine.RunSimulation(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, result.Summary.Depleted)
	assert.False(t, result.Summary.CanRetire())
	assert.Zero(t, result.Summary.EligibleYear)
	assert.Equal(t, 1, result.Summary.YearsSimulated)
	assert.True(t, result.Summary.FinalNetWorth.Equal(dec("-40000")))
	assert.True(t, logger.contains("WARN: net worth depleted"))
}

func TestCalculationEngine_RunSimulation_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewCalculationEngine().RunSimulation(ctx, baseInput())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestCalculationEngine_RunSimulation_InversionError(t *testing.T) {
	engine := NewCalculationEngine()
	engine.Simulator.Inversion = InversionOptions{Precision: cent, MaxIterations: 1}
	logger := &TestLogger{}
	engine.SetLogger(logger)

	result, err := engine.RunSimulation(context.Background(), baseInput())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInversion)
	assert.Contains(t, err.Error(), "simulation failed")
	assert.True(t, logger.contains("ERROR: simulation failed"))
}

func TestCalculationEngine_CustomRules(t *testing.T) {
	rules := config.DefaultTaxRules()
	rules.Year = 2031
	rules.Jurisdiction = ""

	engine := NewCalculationEngineWithRules(rules)
	assert.Equal(t, 2031, engine.TaxYear())
	assert.Equal(t, "2031", engine.describeRules())

	result := engine.CalculateTaxes(dec("50000"), domain.TaxModeOrdinary)
	assert.True(t, result.Total.Equal(dec("14402.52")))
}

func TestCalculationEngine_GrossWithdrawal(t *testing.T) {
	engine := NewCalculationEngine()

	gross, err := engine.GrossWithdrawal(dec("40000"))
	require.NoError(t, err)
	assert.True(t, gross.Sub(dec("40000")).Abs().LessThanOrEqual(cent), "no tax inside the zero bracket")

	_, err = engine.GrossWithdrawal(dec("-1"))
	assert.ErrorIs(t, err, ErrInversion)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(&Trajectory{EligibleIndex: -1, StopReason: domain.StopHorizon})

	assert.Zero(t, summary.YearsSimulated)
	assert.False(t, summary.CanRetire())
	assert.Zero(t, summary.EligibleYear)
}

// TestLogger records formatted messages for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+fmt.Sprintf(format, args...))
}

func (tl *TestLogger) contains(prefix string) bool {
	for _, m := range tl.messages {
		if strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}
