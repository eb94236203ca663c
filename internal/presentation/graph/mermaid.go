package graph

import (
	"fmt"
	"strings"

	"github.com/espalier-dev/espalier/pkg/domain"
	enginegraph "github.com/espalier-dev/espalier/pkg/graph"
)

// Overlay contains dynamic editor state to visualize on the diagram.
type Overlay struct {
	SelectedNode string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a
// workflow graph. It applies semantic styling:
// - Trigger: ((Circle))
// - IfElse: {Diamond}
// - SplitFlow: {{Hexagon}}
// - Control: [[Subroutine]]
// - Default: [Rectangle]
// Branch edges carry their label on the arrow; default edges are plain.
func GenerateMermaid(g *enginegraph.Graph, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range g.Nodes() {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch node.Type {
		case domain.NodeTypeTrigger:
			opener, closer = "((", "))"
		case domain.NodeTypeIfElse:
			opener, closer = "{", "}"
		case domain.NodeTypeSplitFlow:
			opener, closer = "{{", "}}"
		case domain.NodeTypeControl:
			opener, closer = "[[", "]]"
		}

		label := node.Title
		if label == "" {
			label = node.ID
		}
		label = strings.ReplaceAll(label, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))
	}

	for _, e := range g.Edges() {
		from := sanitizeMermaidID(e.SourceID)
		to := sanitizeMermaidID(e.TargetID)
		arrow := "-->"
		if e.Type == domain.EdgeBranch {
			safeLabel := strings.ReplaceAll(e.Label, "\"", "'")
			arrow = fmt.Sprintf("-- \"%s\" -->", safeLabel)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", from, arrow, to))
	}

	if overlay != nil && overlay.SelectedNode != "" {
		safeSelected := sanitizeMermaidID(overlay.SelectedNode)
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for high contrast regardless of theme.
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s selected;\n", safeSelected))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
