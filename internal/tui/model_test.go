package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/rpfire/internal/calculation"
	"github.com/rgehrsitz/rpfire/internal/config"
)

func newTestModel() Model {
	parser := &config.InputParser{Now: func() time.Time {
		return time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	}}
	return NewModelWith("", calculation.NewCalculationEngine(), parser)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func typeRunes(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func submit(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	done, ok := msg.(CalculationCompleteMsg)
	require.True(t, ok, "expected CalculationCompleteMsg, got %T", msg)
	next, _ := m.Update(done)
	return next.(Model)
}

func TestNewModel(t *testing.T) {
	m := newTestModel()

	assert.Equal(t, SceneForm, m.currentScene)
	require.Len(t, m.inputs, len(config.FormFields()))
	assert.Equal(t, "35", m.inputs[0].Value())
	assert.True(t, m.inputs[0].Focused())
	assert.NotNil(t, m.Init())
}

func TestFormNavigation(t *testing.T) {
	m := newTestModel()

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.focus)
	assert.True(t, m.inputs[1].Focused())
	assert.False(t, m.inputs[0].Focused())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, len(m.inputs)-1, m.focus, "shift+tab wraps to the last field")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.focus, "tab wraps to the first field")
}

func TestSubmitShowsProjection(t *testing.T) {
	m := submit(t, newTestModel())

	require.NoError(t, m.err)
	require.NotNil(t, m.result)
	assert.Equal(t, SceneResults, m.currentScene)
	assert.Equal(t, 2025, m.result.Records[0].Year)
	assert.Len(t, m.results.Rows(), len(m.result.Records))

	view := m.View()
	assert.Contains(t, view, "Projection")
	assert.Contains(t, view, "Retirement affordable:")
	assert.Contains(t, view, "Net Worth")
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel()

	// q is text input on the form
	m = typeRunes(t, m, "q")
	assert.Equal(t, "35q", m.inputs[0].Value())

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestResultsSceneKeys(t *testing.T) {
	m := submit(t, newTestModel())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneForm, m.currentScene)
	assert.NotNil(t, m.result, "going back keeps the last projection")

	m = submit(t, m)
	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestInvalidFormShowsError(t *testing.T) {
	m := newTestModel()
	m = typeRunes(t, m, "x")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	require.Error(t, m.err)
	assert.Contains(t, m.err.Error(), "current_age must be a whole number")
	assert.Equal(t, SceneForm, m.currentScene)
	assert.Contains(t, m.View(), "current_age must be a whole number")
}

func TestInputLoadedPrefillsForm(t *testing.T) {
	m := newTestModel()
	input := config.ExampleInput()
	input.StartYear = 2030
	input.CurrentAge = 50

	next, _ := m.Update(InputLoadedMsg{Input: &input})
	m = next.(Model)

	assert.Equal(t, "50", m.inputs[0].Value())
	assert.Equal(t, "2030", m.formValues()["start_year"])

	m = submit(t, m)
	assert.Equal(t, 2030, m.result.Records[0].Year)
	assert.Equal(t, 50, m.result.Records[0].Age)
}

func TestLoadInputCmd(t *testing.T) {
	parser := config.NewInputParser()

	msg := loadInputCmd(parser, "does-not-exist.yaml")()
	errMsg, ok := msg.(ErrorMsg)
	require.True(t, ok)
	assert.Contains(t, errMsg.Err.Error(), "failed to read file")

	m := newTestModel()
	next, _ := m.Update(errMsg)
	assert.Contains(t, next.(Model).View(), "failed to read file")
}

func TestCalculationErrorStaysOnForm(t *testing.T) {
	m := newTestModel()
	m.loading = true

	next, _ := m.Update(CalculationCompleteMsg{Err: assert.AnError})
	m = next.(Model)

	assert.False(t, m.loading)
	assert.Equal(t, assert.AnError, m.err)
	assert.Equal(t, SceneForm, m.currentScene)
}

func TestWindowResize(t *testing.T) {
	m := newTestModel()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	m = next.(Model)

	assert.Equal(t, 160, m.width)
	assert.Equal(t, 50, m.height)
}

func TestSceneString(t *testing.T) {
	assert.Equal(t, "Inputs", SceneForm.String())
	assert.Equal(t, "Projection", SceneResults.String())
	assert.Equal(t, "Unknown", Scene(9).String())
}

var _ tea.Model = Model{}
