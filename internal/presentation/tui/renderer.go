package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/espalier-dev/espalier/pkg/graph"
)

// NewRenderer returns a function that renders markdown for the terminal
// using glamour, auto-detecting light and dark backgrounds.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// ValidationReport builds a markdown summary of a structural validation
// run, suitable for NewRenderer.
func ValidationReport(name string, nodeCount, edgeCount int, issues []graph.Issue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Workflow check: %s\n\n", name)
	fmt.Fprintf(&b, "%d nodes, %d edges\n\n", nodeCount, edgeCount)

	if len(issues) == 0 {
		b.WriteString("**OK**: no structural issues found.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "**%d issue(s) found:**\n\n", len(issues))
	b.WriteString("| Code | Message |\n|------|---------|\n")
	for _, issue := range issues {
		fmt.Fprintf(&b, "| `%s` | %s |\n", issue.Code, issue.Message)
	}
	return b.String()
}
