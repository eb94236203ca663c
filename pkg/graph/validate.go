package graph

import (
	"fmt"

	"github.com/espalier-dev/espalier/pkg/domain"
)

// Issue describes one structural integrity problem found by Validate.
type Issue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (i Issue) String() string { return i.Code + ": " + i.Message }

// Issue codes reported by Validate.
const (
	IssueDanglingEdge     = "dangling_edge"
	IssueDuplicateDefault = "duplicate_default_edge"
	IssueDuplicateBranch  = "duplicate_branch_label"
	IssueCycle            = "cycle"
)

// Validate checks the structural and topological integrity of the graph:
// edge endpoints resolve, at most one default edge per source, branch
// labels unique per source, and the edge set is acyclic. It does not
// inspect node properties; business-rule validation belongs to plugins.
func (g *Graph) Validate() []Issue {
	var issues []Issue

	defaults := make(map[string]int)
	branchLabels := make(map[string]map[string]int)
	for _, e := range g.Edges() {
		if _, ok := g.nodes[e.SourceID]; !ok {
			issues = append(issues, Issue{IssueDanglingEdge,
				fmt.Sprintf("edge %s references missing source %s", e.ID, e.SourceID)})
		}
		if _, ok := g.nodes[e.TargetID]; !ok {
			issues = append(issues, Issue{IssueDanglingEdge,
				fmt.Sprintf("edge %s references missing target %s", e.ID, e.TargetID)})
		}
		switch e.Type {
		case domain.EdgeDefault:
			defaults[e.SourceID]++
		case domain.EdgeBranch:
			if branchLabels[e.SourceID] == nil {
				branchLabels[e.SourceID] = make(map[string]int)
			}
			branchLabels[e.SourceID][e.Label]++
		}
	}
	for _, n := range g.Nodes() {
		if defaults[n.ID] > 1 {
			issues = append(issues, Issue{IssueDuplicateDefault,
				fmt.Sprintf("node %s has %d default edges", n.ID, defaults[n.ID])})
		}
		for label, count := range branchLabels[n.ID] {
			if count > 1 {
				issues = append(issues, Issue{IssueDuplicateBranch,
					fmt.Sprintf("node %s has %d branch edges labeled %q", n.ID, count, label)})
			}
		}
	}
	for _, n := range g.Nodes() {
		if g.Reachable(n.ID)[n.ID] {
			issues = append(issues, Issue{IssueCycle,
				fmt.Sprintf("node %s is part of a cycle", n.ID)})
		}
	}
	return issues
}
