package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/diagnostics"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	posStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func severityLabel(s diagnostics.Severity) string {
	switch s {
	case diagnostics.SeverityError:
		return errorStyle.Render("error")
	case diagnostics.SeverityWarning:
		return warningStyle.Render("warning")
	default:
		return infoStyle.Render(s.String())
	}
}

// printDiagnostics renders the collector's contents in source order.
func printDiagnostics(w io.Writer, collector *diagnostics.Collector) {
	collector.Sort()
	for _, d := range collector.Items() {
		fmt.Fprintf(w, "%s %s: %s [%s]\n",
			posStyle.Render(d.Span.Start.String()),
			severityLabel(d.Severity),
			d.Message,
			d.Code)
	}
}
