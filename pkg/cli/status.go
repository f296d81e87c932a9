package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DeBrosOfficial/giab/pkg/lifecycle"
	"github.com/DeBrosOfficial/giab/pkg/nodedir"
)

// renderStatus writes one row per node: role, provisioning, configuration,
// process state and directory.
func renderStatus(w io.Writer, base string, nodes []lifecycle.NodeStatus, color bool) error {
	s := newStyles(newRenderer(w, color))

	var b strings.Builder
	b.WriteString(s.title.Render("Grid " + base))
	b.WriteString("\n")

	for _, n := range nodes {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			s.role.Render(string(n.Role)),
			provisionedCell(s, n),
			configuredCell(s, n),
			runningCell(s, n),
			s.subtle.Render(n.Dir),
		)
		b.WriteString(row)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func provisionedCell(s styles, n lifecycle.NodeStatus) string {
	if n.Provisioned {
		return s.good.Render("provisioned")
	}
	return s.bad.Render("absent")
}

func configuredCell(s styles, n lifecycle.NodeStatus) string {
	switch {
	case !n.Provisioned:
		return s.pending.Render("-")
	case n.Configured && n.Role == nodedir.RoleIntroducer:
		return s.good.Render("furl published")
	case n.Configured:
		return s.good.Render("configured")
	case n.Role == nodedir.RoleIntroducer:
		return s.pending.Render("no furl yet")
	default:
		return s.pending.Render("unconfigured")
	}
}

func runningCell(s styles, n lifecycle.NodeStatus) string {
	if n.Running {
		return s.good.Render(fmt.Sprintf("running %d", n.PID))
	}
	return s.bad.Render("stopped")
}
