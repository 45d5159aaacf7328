// Package render draws a formstate snapshot for the terminal using lipgloss label styles.
package render

import (
	"fmt"
	"strings"

	"github.com/Azhovan/formstate"
	"github.com/charmbracelet/lipgloss"
)

// Theme maps label variants to styles.
type Theme struct {
	Labels  map[formstate.LabelVariant]lipgloss.Style
	Value   lipgloss.Style
	Message lipgloss.Style
	Footer  lipgloss.Style
}

// DefaultTheme styles the built-in label variants of both modes.
func DefaultTheme() Theme {
	success := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failure := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	normal := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	signup := lipgloss.NewStyle().Underline(true)

	return Theme{
		Labels: map[formstate.LabelVariant]lipgloss.Style{
			"signin-label-success": success,
			"signin-label-error":   failure,
			"signin-label":         normal,
			"signup-label-success": success.Inherit(signup),
			"signup-label-error":   failure.Inherit(signup),
			"signup-label":         normal.Inherit(signup),
		},
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Message: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Italic(true).PaddingLeft(2),
		Footer:  lipgloss.NewStyle().Faint(true),
	}
}

// Options controls what Form prints besides labels.
type Options struct {
	// Masked lists fields whose values are replaced by asterisks.
	Masked []string
}

// Form renders one line per field (status marker, styled label, value) plus
// the visible error messages and a submit-readiness footer.
func Form(snap formstate.Snapshot, values formstate.Values, theme Theme, opts Options) string {
	masked := make(map[string]bool, len(opts.Masked))
	for _, m := range opts.Masked {
		masked[m] = true
	}

	width := 0
	for _, f := range snap.Fields {
		if w := lipgloss.Width(f.Name); w > width {
			width = w
		}
	}

	var b strings.Builder
	for _, f := range snap.Fields {
		label := fmt.Sprintf("%-*s", width, f.Name)
		if style, ok := theme.Labels[f.Label]; ok {
			label = style.Render(label)
		}

		value := ""
		if values != nil {
			value = values.Value(f.Name)
			if masked[f.Name] {
				value = strings.Repeat("*", len(value))
			}
		}

		fmt.Fprintf(&b, "%s %s %s\n", marker(f.Display), label, theme.Value.Render(value))
		if f.ShowError && f.SchemaError != nil {
			b.WriteString(theme.Message.Render(f.SchemaError.Message))
			b.WriteString("\n")
		}
	}

	status := "not ready to submit"
	if snap.AllValid {
		status = "ready to submit"
	}
	b.WriteString(theme.Footer.Render(fmt.Sprintf("[%s] %s", snap.Mode, status)))
	b.WriteString("\n")
	return b.String()
}

func marker(d formstate.Display) string {
	switch d {
	case formstate.DisplaySuccess:
		return "✓"
	case formstate.DisplayError:
		return "✗"
	default:
		return "·"
	}
}
