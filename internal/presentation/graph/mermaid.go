package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/tree"
)

// Overlay contains module information to visualize on the graph.
type Overlay struct {
	// UnknownModules lists processes whose module has no registered template.
	UnknownModules []string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a process
// tree. It applies semantic styling:
// - Root: ((Circle))
// - Process with a module: [[Subroutine]]
// - Bare process: [Rectangle]
// It also flags unknown modules if an overlay is provided.
func GenerateMermaid(root *domain.Node, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for node := range tree.LevelOrder(root) {
		// Sanitize ID for Mermaid
		safeID := sanitizeMermaidID(node.Name)

		// Node Shape based on role
		opener, closer := "[", "]"
		switch {
		case node.IsRoot():
			opener, closer = "((", "))" // Circle
		case node.Module != "":
			opener, closer = "[[", "]]" // Subroutine
		}

		label := fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, node.Name, closer)
		if node.Module != "" {
			// Annotate node with its module template
			label = fmt.Sprintf("    %s%s\"%s <br/> 📦 %s\"%s\n", safeID, opener, node.Name, node.Module, closer)
		}
		sb.WriteString(label)

		// Edges to children, labeled with the child's display label when it
		// differs from the bare name
		for _, child := range node.Children {
			safeTo := sanitizeMermaidID(child.Name)

			arrow := "-->"
			if child.Label != "" && child.Label != child.Name {
				// Escape double quotes in the label for Mermaid
				safeLabel := strings.ReplaceAll(child.Label, "\"", "'")
				arrow = fmt.Sprintf("-- \"%s\" -->", safeLabel)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, safeTo))
		}
	}

	// Apply Overlay Styles
	if overlay != nil && len(overlay.UnknownModules) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef unknown fill:#ffebee,stroke:#b71c1c,stroke-width:2px,color:#000;\n")

		// Deduplicate flagged nodes (using safeIDs)
		flagged := make(map[string]bool)
		for _, name := range overlay.UnknownModules {
			safeID := sanitizeMermaidID(name)
			if !flagged[safeID] && safeID != "" {
				flagged[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s unknown;\n", safeID))
			}
		}
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
