package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// styles used by the status table, bound to one output renderer
type styles struct {
	title   lipgloss.Style
	role    lipgloss.Style
	good    lipgloss.Style
	pending lipgloss.Style
	bad     lipgloss.Style
	subtle  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00D4AA")).
			MarginBottom(1),
		role: r.NewStyle().
			Bold(true).
			Width(12),
		good: r.NewStyle().
			Foreground(lipgloss.Color("#00D4AA")).
			Width(14),
		pending: r.NewStyle().
			Foreground(lipgloss.Color("#E5C07B")).
			Width(14),
		bad: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Width(14),
		subtle: r.NewStyle().
			Foreground(lipgloss.Color("#888888")),
	}
}

// newRenderer returns a renderer for out, forced to plain text unless color is set.
func newRenderer(out io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(out)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}
