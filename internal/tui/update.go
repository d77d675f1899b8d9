package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Submit    key.Binding
	Back      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

var keys = keyMap{
	Next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next")),
	Prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "calculate")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "edit inputs")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.results.SetHeight(max(5, msg.Height-12))
		return m, nil

	case InputLoadedMsg:
		m.setInput(msg.Input)
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.result = msg.Result
		m.results.SetRows(resultRows(msg.Result))
		m.results.GotoTop()
		m.currentScene = SceneResults
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		return m, tea.Quit
	}

	switch m.currentScene {
	case SceneResults:
		return m.updateResults(msg)
	default:
		return m.updateForm(msg)
	}
}

// updateForm handles field navigation, editing and submission. Plain letters
// are typed into the focused field, so q does not quit here.
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Next):
		cmd := m.focusField(m.focus + 1)
		return m, cmd

	case key.Matches(msg, keys.Prev):
		cmd := m.focusField(m.focus - 1)
		return m, cmd

	case key.Matches(msg, keys.Submit):
		if m.loading {
			return m, nil
		}
		input, err := m.parser.ParseForm(m.formValues())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.loading = true
		return m, runSimulationCmd(m.engine, *input)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Back):
		m.currentScene = SceneForm
		cmd := m.inputs[m.focus].Focus()
		return m, cmd
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

// updateCurrentScene delegates non-key messages such as cursor blinks
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneForm:
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	case SceneResults:
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}
