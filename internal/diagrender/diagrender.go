// Package diagrender formats diag.Error values for terminal output using
// lipgloss, the same styling library the teacher's ui package already
// depends on for its tree browser. Errors render in red, warnings in
// yellow; the position suffix is omitted whenever Line and Column are
// both zero (the Evaluator never tracks position, only Source).
package diagrender

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/adijmbt/queryjson/internal/diag"
)

var (
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5555"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F1FA8C"))
	sourceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
)

// Render formats a single diagnostic as a one-line, colored string.
func Render(e diag.Error) string {
	style := errorStyle
	label := "error"
	if e.IsWarning {
		style = warningStyle
		label = "warning"
	}

	prefix := style.Render(label + ":")
	source := sourceStyle.Render("[" + e.Source + "]")

	if e.Line == 0 && e.Column == 0 {
		return fmt.Sprintf("%s %s %s", prefix, source, e.Message)
	}
	return fmt.Sprintf("%s %s %s (line %d, col %d)", prefix, source, e.Message, e.Line, e.Column)
}

// Fprint writes every diagnostic in errs to w, one per line.
func Fprint(w io.Writer, errs []diag.Error) {
	for _, e := range errs {
		fmt.Fprintln(w, Render(e))
	}
}
