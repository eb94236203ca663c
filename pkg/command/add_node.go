package command

import (
	"fmt"

	"github.com/espalier-dev/espalier/pkg/domain"
	"github.com/espalier-dev/espalier/pkg/graph"
	"github.com/espalier-dev/espalier/pkg/registry"
	"github.com/espalier-dev/espalier/pkg/topology"
)

// AddNode inserts a new node, optionally splicing it into an existing
// connection from a source node, and shifts downstream nodes to make
// room.
//
// The shift set is branch-path-only: when a source connection is being
// replaced, only nodes reachable forward from that connection's old
// target may move, so sibling branches of the same parent stay put. With
// no source node, everything at or below the insertion y moves.
//
// If the source node vanished between construction and execution, the
// connection sub-step is skipped but insertion and shifting still
// proceed; callers must not assume atomicity across the connection step.
type AddNode struct {
	g      *graph.Graph
	reg    *registry.Registry
	picker topology.Picker
	layout topology.Layout

	node     *domain.Node
	sourceID string
	connType domain.EdgeType
	branchID string

	shifted      map[string]float64
	replaced     *domain.Edge
	createdEdges []string
}

// NewAddNode builds the command. The node is deep-copied so later
// mutation of the caller's copy cannot alias into the command. branchID
// is the branch label when connType is EdgeBranch and ignored otherwise.
func NewAddNode(g *graph.Graph, reg *registry.Registry, picker topology.Picker, layout topology.Layout,
	node *domain.Node, sourceID string, connType domain.EdgeType, branchID string) *AddNode {
	return &AddNode{
		g:        g,
		reg:      reg,
		picker:   picker,
		layout:   layout,
		node:     node.Clone(),
		sourceID: sourceID,
		connType: connType,
		branchID: branchID,
	}
}

func (c *AddNode) Name() string { return "add_node" }

func (c *AddNode) Execute() error {
	c.shifted = make(map[string]float64)
	c.replaced = nil
	c.createdEdges = nil

	// Pre-computation on the unmutated graph: which edge gets replaced,
	// and which nodes must shift down.
	var replaced *domain.Edge
	sourceExists := false
	if c.sourceID != "" {
		if _, ok := c.g.Node(c.sourceID); ok {
			sourceExists = true
			if c.connType == domain.EdgeBranch {
				replaced = c.g.BranchOutgoingEdge(c.sourceID, c.branchID)
			} else {
				replaced = c.g.DefaultOutgoingEdge(c.sourceID)
			}
		}
	}
	candidates := c.shiftCandidates(replaced)

	node := c.node.Clone()
	c.g.AddNode(node)

	if sourceExists {
		var oldTargetID string
		if replaced != nil {
			oldTargetID = replaced.TargetID
			c.replaced = replaced.Clone()
			c.g.RemoveEdge(replaced.ID)
		}
		in := c.g.Connect(c.sourceID, node.ID, c.connType, c.branchLabel())
		c.createdEdges = append(c.createdEdges, in.ID)

		// Rewire the displaced old target behind the new node.
		if oldTargetID != "" {
			if oldTarget, ok := c.g.Node(oldTargetID); ok {
				choice := c.picker.Pick(node, oldTarget, c.reg, c.g)
				var out *domain.Edge
				if choice.IsBranch {
					out = c.g.Connect(node.ID, oldTargetID, domain.EdgeBranch, choice.BranchID)
				} else {
					out = c.g.Connect(node.ID, oldTargetID, domain.EdgeDefault, "")
				}
				c.createdEdges = append(c.createdEdges, out.ID)
			}
		}
	}

	for id, oldY := range candidates {
		n, ok := c.g.Node(id)
		if !ok {
			continue
		}
		c.shifted[id] = oldY
		n.Position.Y = oldY + c.layout.VerticalSpacing
	}
	return nil
}

func (c *AddNode) Undo() error {
	for id, oldY := range c.shifted {
		if n, ok := c.g.Node(id); ok {
			n.Position.Y = oldY
		}
	}
	for _, id := range c.createdEdges {
		c.g.RemoveEdge(id)
	}
	if c.replaced != nil {
		c.g.AddEdge(c.replaced.Clone())
	}
	if !c.g.RemoveNode(c.node.ID) {
		return fmt.Errorf("add_node undo: %w: %s", domain.ErrNodeNotFound, c.node.ID)
	}
	return nil
}

// shiftCandidates records the original y of every node that must move
// down, evaluated before any mutation. The new node itself never shifts.
func (c *AddNode) shiftCandidates(replaced *domain.Edge) map[string]float64 {
	out := make(map[string]float64)
	y := c.node.Position.Y

	if c.sourceID != "" {
		if replaced == nil {
			// Appending at the end of a path: nothing is displaced.
			return out
		}
		set := c.g.Reachable(replaced.TargetID)
		set[replaced.TargetID] = true
		for id := range set {
			if id == c.sourceID {
				continue
			}
			if n, ok := c.g.Node(id); ok && n.Position.Y >= y {
				out[id] = n.Position.Y
			}
		}
		return out
	}

	for _, n := range c.g.Nodes() {
		if n.Position.Y >= y {
			out[n.ID] = n.Position.Y
		}
	}
	return out
}

func (c *AddNode) branchLabel() string {
	if c.connType == domain.EdgeBranch {
		return c.branchID
	}
	return ""
}
