package graph

import (
	"sort"

	"github.com/espalier-dev/espalier/pkg/domain"
)

// FromSteps hydrates a graph from the flat persisted step list.
// Connections referencing a target id not present among the steps are
// silently dropped; the import is lossy-safe by design.
func FromSteps(steps []domain.Step) *Graph {
	g := New()
	for _, s := range steps {
		g.AddNode(&domain.Node{
			ID:         s.ID,
			Type:       s.Type,
			Position:   s.Position,
			Height:     s.Height,
			Title:      s.Title,
			Subtitle:   s.Subtitle,
			Properties: domain.CopyProperties(s.Properties),
		})
	}
	for _, s := range steps {
		if d := s.OutgoingConnections.Default; d != nil {
			if _, ok := g.Node(d.TargetNodeID); ok {
				g.Connect(s.ID, d.TargetNodeID, domain.EdgeDefault, "")
			}
		}
		for label, c := range s.BranchConnections {
			if _, ok := g.Node(c.TargetNodeID); ok {
				g.Connect(s.ID, c.TargetNodeID, domain.EdgeBranch, label)
			}
		}
	}
	return g
}

// ToSteps flattens the graph back into the persisted step list, ordered
// by node id for stable output.
func (g *Graph) ToSteps() []domain.Step {
	nodes := g.Nodes()
	steps := make([]domain.Step, 0, len(nodes))
	for _, n := range nodes {
		s := domain.Step{
			ID:         n.ID,
			Type:       n.Type,
			Position:   n.Position,
			Height:     n.Height,
			Title:      n.Title,
			Subtitle:   n.Subtitle,
			Properties: domain.CopyProperties(n.Properties),
		}
		if d := g.DefaultOutgoingEdge(n.ID); d != nil {
			s.OutgoingConnections.Default = &domain.Connection{TargetNodeID: d.TargetID}
		}
		branches := g.BranchOutgoingEdges(n.ID)
		if len(branches) > 0 {
			s.BranchConnections = make(map[string]domain.Connection, len(branches))
			for _, b := range branches {
				s.BranchConnections[b.Label] = domain.Connection{TargetNodeID: b.TargetID}
			}
		}
		steps = append(steps, s)
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].ID < steps[j].ID })
	return steps
}
