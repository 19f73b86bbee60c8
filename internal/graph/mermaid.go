package graph

import (
	"fmt"
	"strings"

	"menuflow/pkg/domain"
	"menuflow/pkg/manifest"
)

// Overlay contains session state to visualize on the graph.
type Overlay struct {
	VisitedScreens []string
	CurrentScreen  string
}

// GenerateMermaid produces a Mermaid flowchart (graph TD) from a manifest.
// Screen shapes follow the screen kind:
// - static: [Rectangle]
// - dynamic: [[Subroutine]]
// - paginated: [/Parallelogram/]
// - chat_input: ((Circle))
// Solid arrows are button targets; dotted arrows are back edges. An overlay,
// if provided, highlights visited and current screens.
func GenerateMermaid(m *manifest.Manifest, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, id := range m.ScreenIDs() {
		screen, _ := m.Screen(id)
		safeID := sanitizeMermaidID(id)

		opener, closer := "[", "]"
		switch screen.Kind {
		case domain.KindDynamic:
			opener, closer = "[[", "]]"
		case domain.KindPaginated:
			opener, closer = "[/", "/]"
		case domain.KindChatInput:
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeMermaidLabel(id), closer))

		for _, btn := range screen.Buttons {
			if btn.Target == "" {
				continue
			}
			safeTo := sanitizeMermaidID(btn.Target)
			arrow := fmt.Sprintf("-- \"%s\" -->", escapeMermaidLabel(btn.Label))
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, safeTo))
		}
		if screen.Template != nil && screen.Template.TargetScreen != "" {
			safeTo := sanitizeMermaidID(screen.Template.TargetScreen)
			sb.WriteString(fmt.Sprintf("    %s -- \"*\" --> %s\n", safeID, safeTo))
		}
		if screen.Kind == domain.KindPaginated && screen.Target != "" {
			safeTo := sanitizeMermaidID(screen.Target)
			sb.WriteString(fmt.Sprintf("    %s -- \"*\" --> %s\n", safeID, safeTo))
		}

		// Back edges. Contextual backs have no static target to draw.
		if screen.BackPath != "" && screen.BackPath != domain.BackContextual {
			safeTo := sanitizeMermaidID(screen.BackPath)
			sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", safeID, safeTo))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for high-contrast on light backgrounds, regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedScreens {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}
		if overlay.CurrentScreen != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentScreen)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

func escapeMermaidLabel(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}
