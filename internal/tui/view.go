package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/rpfire/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneForm:
		content = m.renderForm()
	case SceneResults:
		content = m.renderResults()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	contentHeight := m.height - 4 // Title (2) + status (1) + padding (1)

	contentContainer := lipgloss.NewStyle().
		Height(max(0, contentHeight)).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("RPFIRE - Retirement Projection")

	breadcrumb := m.currentScene.String()
	if m.result != nil && m.currentScene == SceneResults {
		breadcrumb = fmt.Sprintf("%s / %d tax rules", breadcrumb, m.result.TaxYear)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(breadcrumb),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	var bindings []string
	switch m.currentScene {
	case SceneForm:
		bindings = []string{
			formatShortcut(keys.Next),
			formatShortcut(keys.Prev),
			formatShortcut(keys.Submit),
			formatShortcut(keys.ForceQuit),
		}
	case SceneResults:
		bindings = []string{
			formatShortcut(keys.Back),
			formatShortcut(keys.Quit),
		}
	}

	return StatusBarStyle.Width(m.width).Render(strings.Join(bindings, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(b key.Binding) string {
	help := b.Help()
	return StatusKeyStyle.Render(help.Key) + " " + help.Desc
}

func (m Model) renderForm() string {
	var b strings.Builder
	for i, f := range m.fields {
		label := ParameterLabelStyle.Render(f.Label)
		if i == m.focus {
			label = FocusedLabelStyle.Render(f.Label)
		}
		b.WriteString(label)
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.loading:
		b.WriteString(InfoStyle.Render("Calculating..."))
	case m.err != nil:
		b.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
	default:
		b.WriteString(InfoStyle.Render("Money in thousands, rates in percent."))
	}
	return b.String()
}

func (m Model) renderResults() string {
	if m.result == nil {
		return InfoStyle.Render("No projection yet.")
	}

	var b strings.Builder
	b.WriteString(m.results.View())
	b.WriteString("\n\n")

	for _, line := range output.SummaryLines(m.result.Summary) {
		b.WriteString(MetricLabelStyle.Render(line.Label))
		b.WriteString(m.summaryValueStyle(line.Label).Render(line.Value))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) summaryValueStyle(label string) lipgloss.Style {
	s := m.result.Summary
	switch {
	case label == "Stopped:" && s.Depleted:
		return MetricNegativeStyle
	case label == "Retired:" && s.CanRetire():
		return MetricPositiveStyle
	case label == "Retired:":
		return MetricNegativeStyle
	default:
		return MetricValueStyle
	}
}
