package graph

import (
	"fmt"
	"path"
	"strings"

	"github.com/aretw0/marionette/internal/runtime"
)

// Overlay highlights scripts on the rendered graph.
type Overlay struct {
	Failed []string
	Root   string
}

// commander is implemented by loaded gestures that know their instruction keyword.
type commander interface {
	Command() string
}

// GenerateMermaid produces a Mermaid flowchart of the scripts and the
// cross-script references between them.
// Shapes:
// - Root: ((Circle))
// - Script with named macros: [[Subroutine]] listing them
// - Default: [Rectangle]
// References that leave the caller's directory are drawn dotted.
func GenerateMermaid(scripts []*runtime.Script, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for i, s := range scripts {
		id := s.Location().String()
		safeID := sanitizeMermaidID(id)

		opener, closer := "[", "]"
		label := id
		switch {
		case i == 0 || (overlay != nil && overlay.Root == id):
			opener, closer = "((", "))"
		case len(s.MacroNames()) > 0:
			opener, closer = "[[", "]]"
		}
		if names := s.MacroNames(); len(names) > 0 {
			label = fmt.Sprintf("%s <br/> %s", id, strings.Join(names, ", "))
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		seen := make(map[string]bool)
		for _, m := range s.Macros() {
			for _, g := range m.Gestures() {
				r, ok := g.(runtime.Referrer)
				if !ok {
					continue
				}
				command := "play"
				if c, ok := g.(commander); ok {
					command = c.Command()
				}
				for _, ref := range r.References() {
					to := s.Location().Refer(ref).String()
					edge := command + "|" + to
					if seen[edge] {
						continue
					}
					seen[edge] = true

					arrow := fmt.Sprintf("-- %s -->", command)
					if path.Dir(id) != path.Dir(to) {
						arrow = fmt.Sprintf("-. %s .->", command)
					}
					sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, sanitizeMermaidID(to)))
				}
			}
		}
	}

	if overlay != nil && len(overlay.Failed) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef failed fill:#ffebee,stroke:#c62828,stroke-width:2px,color:#000;\n")
		for _, id := range overlay.Failed {
			sb.WriteString(fmt.Sprintf("    class %s failed;\n", sanitizeMermaidID(id)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
