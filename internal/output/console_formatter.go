package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/rpfire/internal/domain"
)

var (
	consoleTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	consoleHeaderStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1).Align(lipgloss.Center)
	consoleCellStyle    = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	consoleRetiredStyle = consoleCellStyle.Foreground(lipgloss.Color("#04B575"))
	consoleBorderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	consoleLabelStyle   = lipgloss.NewStyle().Width(24)
)

// ConsoleFormatter renders the year-by-year table, a summary and the assumptions.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var b strings.Builder

	b.WriteString(consoleTitleStyle.Render(fmt.Sprintf("RETIREMENT PROJECTION (%d tax rules)", result.TaxYear)))
	b.WriteString("\n")

	rows := make([][]string, 0, len(result.Records))
	for _, r := range result.Records {
		rows = append(rows, displayRow(r))
	}
	records := result.Records
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(consoleBorderStyle).
		Headers(recordColumns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return consoleHeaderStyle
			}
			if row >= 0 && row < len(records) && records[row].IsRetired() {
				return consoleRetiredStyle
			}
			return consoleCellStyle
		})
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	b.WriteString(consoleTitleStyle.Render("SUMMARY"))
	b.WriteString("\n")
	for _, line := range SummaryLines(result.Summary) {
		writeSummaryLine(&b, line.Label, line.Value)
	}
	b.WriteString("\n")

	b.WriteString(consoleTitleStyle.Render("ASSUMPTIONS"))
	b.WriteString("\n")
	for _, a := range Assumptions(result) {
		b.WriteString("  - ")
		b.WriteString(a)
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

func writeSummaryLine(b *strings.Builder, label, value string) {
	b.WriteString("  ")
	b.WriteString(consoleLabelStyle.Render(label))
	b.WriteString(value)
	b.WriteString("\n")
}
