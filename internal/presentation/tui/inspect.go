package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/marionette/internal/runtime"
)

type commander interface {
	Command() string
}

// InspectMarkdown describes the macros of each script as a markdown document.
func InspectMarkdown(scripts []*runtime.Script) string {
	var sb strings.Builder
	for i, s := range scripts {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "# %s\n\n", s.Location().String())

		macros := s.Macros()
		if len(macros) == 0 {
			sb.WriteString("_No macros._\n")
			continue
		}

		sb.WriteString("| # | Macro | Gestures | Commands |\n")
		sb.WriteString("|---|-------|----------|----------|\n")
		for j, m := range macros {
			name := m.Name()
			if name == "" {
				name = "_(unnamed)_"
			}
			fmt.Fprintf(&sb, "| %d | %s | %d | %s |\n", j+1, name, len(m.Gestures()), commandSummary(m))
		}
	}
	return sb.String()
}

// commandSummary lists distinct commands in first-use order.
func commandSummary(m *runtime.Macro) string {
	var out []string
	seen := make(map[string]bool)
	for _, g := range m.Gestures() {
		c, ok := g.(commander)
		if !ok || seen[c.Command()] {
			continue
		}
		seen[c.Command()] = true
		out = append(out, "`"+c.Command()+"`")
	}
	return strings.Join(out, ", ")
}
