package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/rpfire/internal/calculation"
	"github.com/rgehrsitz/rpfire/internal/config"
	"github.com/rgehrsitz/rpfire/internal/domain"
	"github.com/rgehrsitz/rpfire/internal/output"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene Scene

	// Terminal dimensions
	width  int
	height int

	inputPath string
	engine    *calculation.CalculationEngine
	parser    *config.InputParser

	// Form scene
	fields    []config.FormField
	inputs    []textinput.Model
	focus     int
	startYear int // carried from a loaded file; zero defers to the parser clock

	// Results scene
	results table.Model
	result  *domain.SimulationResult

	err     error
	loading bool
}

// NewModel creates a new application model, prefilled from inputPath when it is set
func NewModel(inputPath string) Model {
	return NewModelWith(inputPath, calculation.NewCalculationEngine(), config.NewInputParser())
}

// NewModelWith creates a model around an explicit engine and parser
func NewModelWith(inputPath string, engine *calculation.CalculationEngine, parser *config.InputParser) Model {
	fields := config.FormFields()
	defaults := config.FormValues(config.ExampleInput())

	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 12
		ti.Width = 14
		ti.SetValue(defaults[f.Key])
		ti.CursorEnd()
		inputs[i] = ti
	}
	inputs[0].Focus()

	return Model{
		currentScene: SceneForm,
		width:        80,
		height:       24,
		inputPath:    inputPath,
		engine:       engine,
		parser:       parser,
		fields:       fields,
		inputs:       inputs,
		results:      newResultsTable(),
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.inputPath == "" {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, loadInputCmd(m.parser, m.inputPath))
}

func newResultsTable() table.Model {
	widths := []int{6, 5, 9, 12, 9, 12, 12, 12, 14, 12, 15}
	titles := output.RecordColumns()
	columns := make([]table.Column, len(titles))
	for i, title := range titles {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(ColorPrimary)
	t.SetStyles(s)
	return t
}

func resultRows(result *domain.SimulationResult) []table.Row {
	rows := make([]table.Row, 0, len(result.Records))
	for _, r := range result.Records {
		rows = append(rows, output.RecordRow(r))
	}
	return rows
}

// formValues collects the raw text of every field, keyed for config.ParseForm
func (m Model) formValues() map[string]string {
	values := make(map[string]string, len(m.fields)+1)
	for i, f := range m.fields {
		values[f.Key] = m.inputs[i].Value()
	}
	if m.startYear != 0 {
		values["start_year"] = strconv.Itoa(m.startYear)
	}
	return values
}

func (m *Model) setInput(input *domain.SimulationInput) {
	values := config.FormValues(*input)
	for i, f := range m.fields {
		m.inputs[i].SetValue(values[f.Key])
		m.inputs[i].CursorEnd()
	}
	m.startYear = input.StartYear
}

func (m *Model) focusField(i int) tea.Cmd {
	n := len(m.inputs)
	i = ((i % n) + n) % n
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

// Commands

func loadInputCmd(parser *config.InputParser, path string) tea.Cmd {
	return func() tea.Msg {
		input, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return InputLoadedMsg{Input: input}
	}
}

func runSimulationCmd(engine *calculation.CalculationEngine, input domain.SimulationInput) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.RunSimulation(context.Background(), input)
		return CalculationCompleteMsg{Result: result, Err: err}
	}
}
