package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type SummaryRow struct {
	Label string
	Value string
	Warn  bool
}

// RenderSummary draws a bordered label/value table for the end-of-run report.
func RenderSummary(title string, rows []SummaryRow) string {
	labelWidth := 0
	for _, row := range rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		style := summaryValueStyle
		if row.Warn {
			style = summaryWarnStyle
		}
		lines = append(lines, fmt.Sprintf("%s  %s",
			summaryLabelStyle.Render(padRight(row.Label, labelWidth)),
			style.Render(row.Value)))
	}

	body := strings.Join(lines, "\n")
	return summaryTitleStyle.Render(title) + "\n" + summaryBoxStyle.Render(body)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	summaryLabelStyle = lipgloss.NewStyle().Foreground(ColorDim)
	summaryValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorInk)
	summaryWarnStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorWarn)
	summaryBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Padding(0, 1)
)
